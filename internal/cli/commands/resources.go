package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/omnipathdb/resctl/internal/cli/ui"
	"github.com/omnipathdb/resctl/runtime/resources"
)

type resourceSummary struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

func newResourcesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the loaded resources",
		Long: `List every resource in the registry, in load order, together with the
categories of data it provides.`,
		Example: `  # List resources from the configured file
  resctl resources

  # List resources from a specific file as JSON
  resctl resources --registry data/resources.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			return runResources(s)
		},
	}
}

func runResources(s *session) error {
	entries := s.ctrl.Store().Snapshot()

	summaries := make([]resourceSummary, 0, len(entries))
	for _, entry := range entries {
		categories := entry.Record.Categories()
		sort.Strings(categories)
		summaries = append(summaries, resourceSummary{Name: entry.Name, Categories: categories})
	}

	if s.out.json() {
		return s.out.encode(struct {
			Path       string            `json:"path"`
			TotalCount int               `json:"total_count"`
			Resources  []resourceSummary `json:"resources"`
		}{s.ctrl.Path(), len(summaries), summaries})
	}

	if len(summaries) == 0 {
		ui.Warning(fmt.Sprintf("No resource information loaded from %s", s.ctrl.Path()), color.NoColor).Write(s.out.w)
		return nil
	}

	table := ui.NewTable(s.out.w, color.NoColor, "NAME", "CATEGORIES")
	for _, summary := range summaries {
		table.AddRow(summary.Name, strings.Join(summary.Categories, ", "))
	}
	table.Render()
	fmt.Fprintf(s.out.w, "\n%d resources\n", len(summaries))
	return nil
}

func newResourceCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resource <name>",
		Short: "Show the record of one resource",
		Example: `  resctl resource SIGNOR
  resctl resource SIGNOR --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			return runResource(s, args[0])
		},
	}
}

func runResource(s *session, name string) error {
	record, ok := s.ctrl.Record(name)
	if !ok {
		suggestions := ui.FindSimilar(name, s.ctrl.Names(), nil)
		return &cliError{
			msg: ui.ResourceNotFound(name, suggestions, color.NoColor),
			err: fmt.Errorf("resource %q not found", name),
		}
	}

	if s.out.json() {
		return s.out.encode(record)
	}

	ui.Header(s.out.w, name, color.NoColor)

	keys := make([]string, 0, len(record))
	for key := range record {
		if key != resources.InputsKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	kv := ui.NewKeyValueTable(s.out.w, color.NoColor)
	for _, key := range keys {
		kv.AddRow(key, compact(record[key]))
	}
	kv.Render()

	categories := record.Categories()
	if len(categories) == 0 {
		return nil
	}
	sort.Strings(categories)

	fmt.Fprintln(s.out.w)
	table := ui.NewTable(s.out.w, color.NoColor, "CATEGORY", "ARGUMENTS")
	for _, category := range categories {
		spec, _ := record.Input(category)
		table.AddRow(category, compact(spec))
	}
	table.Render()
	return nil
}
