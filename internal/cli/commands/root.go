package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omnipathdb/resctl/internal/cli/config"
	"github.com/omnipathdb/resctl/internal/cli/ui"
	"github.com/omnipathdb/resctl/internal/logging"
	"github.com/omnipathdb/resctl/internal/utils"
	"github.com/omnipathdb/resctl/runtime/resources"

	// built-in descriptor kinds
	_ "github.com/omnipathdb/resctl/runtime/resources/descriptors"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configFile  string
	registry    string
	packagePath bool
	noColor     bool
	format      string

	// kinds overrides resources.DefaultKinds; nil in production.
	kinds *resources.KindTable
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&globalOptions{})
}

func newRootCommand(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "resctl",
		Short: "Inspect resource information and build resource descriptors",
		Long: color.CyanString(`resctl - resource information controller

resctl loads the resource information file, a JSON or YAML object mapping
each data resource to its metadata, and builds typed descriptors for the
resources that provide a given category of data.

Sources:
  • A default file, resources/data/resources.json unless configured
  • Extra files from registry.extra_paths, merged in order
  • Settings from resctl.yml and RESCTL_* environment variables`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			if _, err := newPrinter(opts.format, cmd.OutOrStdout()); err != nil {
				return err
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: ./resctl.yml)")
	flags.StringVar(&opts.registry, "registry", "", "Resource information file, overrides registry.path")
	flags.BoolVar(&opts.packagePath, "package-path", false, "Resolve a relative registry path against the executable directory")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&opts.format, "format", "table", "Output format: table or json")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newResourcesCommand(opts))
	rootCmd.AddCommand(newResourceCommand(opts))
	rootCmd.AddCommand(newKindsCommand(opts))
	rootCmd.AddCommand(newCollectCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the resctl version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			kv := ui.NewKeyValueTable(out, color.NoColor)
			kv.AddRow("resctl version", Version)
			kv.AddRow("Git commit", GitCommit)
			kv.AddRow("Build date", BuildDate)
			kv.AddRow("Go version", goVer)
			kv.Render()
		},
	}
}

// session is the state a subcommand works with once flags and config
// have been resolved.
type session struct {
	cfg    *config.Config
	ctrl   *resources.Controller
	logger *zap.Logger
	out    *printer
	errOut io.Writer
}

// open resolves configuration, builds the logger and loads the default
// resource information file followed by every configured extra file.
func (o *globalOptions) open(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadFile(o.configFile)
	if err != nil {
		return nil, &cliError{msg: ui.ConfigError(err.Error(), color.NoColor), err: err}
	}
	if o.registry != "" {
		cfg.Registry.Path = o.registry
	}
	if cmd.Flags().Changed("package-path") {
		cfg.Registry.UsePackagePath = o.packagePath
	}

	logger := logging.NewOrNop(cfg.Log.Level, cfg.Log.Development)
	if cfg.File != "" {
		logger.Debug("using config file", zap.String("file", cfg.File))
	}

	out, err := newPrinter(o.format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	kinds := o.kinds
	if kinds == nil {
		kinds = resources.DefaultKinds
	}

	ctrl, err := resources.New(
		resources.WithPath(cfg.PathElements()...),
		resources.WithPackagePath(cfg.Registry.UsePackagePath),
		resources.WithLogger(logger),
		resources.WithConsole(cmd.ErrOrStderr()),
		resources.WithKinds(kinds),
		resources.WithDebounce(cfg.Watch.Debounce),
	)
	if err != nil {
		return nil, reportLoadError(err)
	}

	extras, err := utils.ExpandSources(cfg.Registry.ExtraPaths)
	if err != nil {
		return nil, err
	}
	for _, extra := range extras {
		if err := ctrl.Update(resources.UpdateOptions{Path: extra}); err != nil {
			return nil, reportLoadError(err)
		}
	}

	return &session{
		cfg:    cfg,
		ctrl:   ctrl,
		logger: logger,
		out:    out,
		errOut: cmd.ErrOrStderr(),
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// cliError carries the formatted message Execute prints for err.
type cliError struct {
	msg ui.Message
	err error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func reportLoadError(err error) error {
	var merr *resources.MalformedSourceError
	if errors.As(err, &merr) {
		return &cliError{msg: ui.MalformedSource(merr.Path, merr.Err, color.NoColor), err: err}
	}
	return fmt.Errorf("failed to load resource information: %w", err)
}

// Execute runs the root command
func Execute() error {
	return execute(NewRootCommand())
}

func execute(rootCmd *cobra.Command) error {
	if err := rootCmd.Execute(); err != nil {
		writeError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

func writeError(w io.Writer, err error) {
	var cerr *cliError
	if errors.As(err, &cerr) {
		cerr.msg.Write(w)
		return
	}
	errorColor := color.New(color.FgRed, color.Bold)
	errorColor.Fprintf(w, "Error: %v\n", err)
}
