package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newScenariosCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tNAME\tSTEPS\tTITLE")
			for _, s := range e.scenarios.List() {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", s.Index, s.Name, s.Steps, s.Title)
			}
			return tw.Flush()
		},
	}
}
