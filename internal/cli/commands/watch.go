package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/omnipathdb/resctl/internal/cli/ui"
	"github.com/omnipathdb/resctl/runtime/resources"
)

func newWatchCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload resource information whenever the file changes",
		Long: `Load the resource information file and re-read it every time it changes
on disk, reporting each reload. Reloads merge into the registry, so
resources removed from the file stay loaded until resctl restarts.

Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			banner := color.New(color.FgCyan, color.Bold)
			banner.Fprintf(s.out.w, "Watching %s\n", s.ctrl.Path())
			fmt.Fprintf(s.out.w, "   %d resources loaded, debounce %s\n", len(s.ctrl.Names()), s.cfg.Watch.Debounce)

			if err := s.ctrl.Watch(ctx, func(event resources.LoadEvent, err error) {
				reportReload(s, event, err)
			}); err != nil {
				return fmt.Errorf("failed to watch %s: %w", s.ctrl.Path(), err)
			}

			color.New(color.FgGreen).Fprintln(s.out.w, "Stopped watching")
			return nil
		},
	}
}

func reportReload(s *session, event resources.LoadEvent, err error) {
	var merr *resources.MalformedSourceError
	switch {
	case errors.As(err, &merr):
		ui.MalformedSource(merr.Path, merr.Err, color.NoColor).Write(s.errOut)
	case err != nil:
		ui.Warning(err.Error(), color.NoColor).Write(s.errOut)
	case event.Status == resources.StatusLoaded:
		msg := fmt.Sprintf("Reloaded %s: %d read, %d total (%s)", event.Path, event.Loaded, event.Total, event.ID)
		ui.WriteSuccess(s.out.w, msg, color.NoColor)
	}
}
