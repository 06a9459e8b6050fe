package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/domain"
)

func newPlayCmd(e *env) *cobra.Command {
	var (
		index   int
		showLog bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Print a scenario's precomputed transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("scenario") {
				index = e.cfg.DefaultScenario
			}

			ctrl, err := conversation.NewController("democtl-play", e.scenarios, conversation.Config{
				ScenarioIndex: index,
				Mode:          domain.ModePlayback,
			}, conversation.Options{})
			if err != nil {
				return err
			}
			defer ctrl.Close()

			snap := ctrl.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", snap.Title)
			r := &renderer{out: out}
			r.messages(snap)
			if showLog {
				fmt.Fprintln(out)
				r.log(snap.Log)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&index, "scenario", 0, "Scenario index (see 'democtl scenarios')")
	f.BoolVar(&showLog, "log", false, "Also print the activity log")
	return cmd
}
