package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/omnipathdb/resctl/internal/cli/ui"
	strutil "github.com/omnipathdb/resctl/internal/util/strings"
	"github.com/omnipathdb/resctl/runtime/resources"
)

func newKindsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the registered descriptor kinds",
		Long: `List the descriptor kinds 'resctl collect' can build, with the category
each one serves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := opts.kinds
			if kinds == nil {
				kinds = resources.DefaultKinds
			}
			out, err := newPrinter(opts.format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runKinds(out, kinds)
		},
	}
}

type kindSummary struct {
	TypeName string `json:"type_name"`
	Category string `json:"category"`
}

func runKinds(out *printer, kinds *resources.KindTable) error {
	names := kinds.Names()
	summaries := make([]kindSummary, len(names))
	for i, name := range names {
		summaries[i] = kindSummary{
			TypeName: name,
			Category: strutil.ToSnakeCase(strings.TrimSuffix(name, resources.KindSuffix)),
		}
	}

	if out.json() {
		return out.encode(summaries)
	}

	table := ui.NewTable(out.w, color.NoColor, "CATEGORY", "KIND")
	for _, s := range summaries {
		table.AddRow(s.Category, s.TypeName)
	}
	table.Render()
	return nil
}

func newCollectCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "collect <category>",
		Short: "Build descriptors for every resource providing a category",
		Long: `Build a descriptor for every resource whose record declares the given
category under "inputs". The descriptor kind is chosen from the category
name: enzyme_substrate is built by EnzymeSubstrateResource.`,
		Example: `  resctl collect enzyme_substrate
  resctl collect complex --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			return runCollect(s, args[0])
		},
	}
}

// methodDescriptor is implemented by descriptors that know their loader.
type methodDescriptor interface {
	Method() string
}

func runCollect(s *session, category string) error {
	descriptors, err := s.ctrl.Collect(category)
	if err != nil {
		return collectError(s, err)
	}

	if s.out.json() {
		return s.out.encode(descriptors)
	}

	if len(descriptors) == 0 {
		ui.Info(fmt.Sprintf("No resource provides %s data", category), color.NoColor).Write(s.out.w)
		return nil
	}

	table := ui.NewTable(s.out.w, color.NoColor, "NAME", "CATEGORY", "INPUT METHOD")
	for _, d := range descriptors {
		method := ""
		if m, ok := d.(methodDescriptor); ok {
			method = m.Method()
		}
		table.AddRow(d.Name(), d.Category(), method)
	}
	table.Render()
	return nil
}

func collectError(s *session, err error) error {
	var uerr *resources.UnknownCategoryError
	if errors.As(err, &uerr) {
		suggestions := ui.FindSimilar(uerr.Category, s.ctrl.Kinds().Categories(), nil)
		return &cliError{msg: ui.UnknownCategory(uerr.Category, uerr.TypeName, suggestions, color.NoColor), err: err}
	}

	var cerr *resources.ConstructionError
	if errors.As(err, &cerr) {
		return &cliError{msg: ui.ConstructionFailed(cerr.Resource, cerr.Category, cerr.Err, color.NoColor), err: err}
	}

	return err
}
