// democtl drives the scripted demo conversations from a terminal.
//
// Usage:
//
//	democtl scenarios
//	democtl play --scenario=<index>
//	democtl chat --scenario=<index> [--latency=<duration>]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-demo/internal/config"
	"github.com/PabloGalante/farum-demo/internal/observability"
	"github.com/PabloGalante/farum-demo/internal/scenario"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootFlags struct {
	scenarioFile string
	logLevel     string
}

// env carries what every subcommand needs once flags are parsed.
type env struct {
	cfg       *config.Config
	scenarios *scenario.Store
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	e := &env{}

	root := &cobra.Command{
		Use:   "democtl",
		Short: "Play scripted agent conversations in the terminal",
		Long:  "democtl lists the demo scenarios, replays their precomputed transcripts\nand runs them interactively against the conversation engine.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("scenarios") {
				cfg.ScenarioFile = flags.scenarioFile
			}

			observability.SetOutput(cmd.ErrOrStderr())
			observability.SetLevel(flags.logLevel)

			store, err := scenario.Load(cfg.ScenarioFile)
			if err != nil {
				return fmt.Errorf("load scenarios: %w", err)
			}
			e.cfg = cfg
			e.scenarios = store
			return nil
		},
	}
	root.Version = version

	pf := root.PersistentFlags()
	pf.StringVar(&flags.scenarioFile, "scenarios", "", "Scenario YAML file (default: built-in catalog)")
	pf.StringVar(&flags.logLevel, "log-level", "warn", "Log level written to stderr")

	root.AddCommand(newScenariosCmd(e))
	root.AddCommand(newPlayCmd(e))
	root.AddCommand(newChatCmd(e))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
