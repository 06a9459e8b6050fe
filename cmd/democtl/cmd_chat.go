package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PabloGalante/farum-demo/internal/adapters/llm"
	"github.com/PabloGalante/farum-demo/internal/app/conversation"
	"github.com/PabloGalante/farum-demo/internal/clock"
	"github.com/PabloGalante/farum-demo/internal/domain"
	"github.com/PabloGalante/farum-demo/internal/observability"
)

const chatHelp = `Type an option number or its text to choose it, or free text once the script ends.
Commands: /reset, /scenario <index>, /log, /help, /quit`

func newChatCmd(e *env) *cobra.Command {
	var (
		index   int
		latency time.Duration
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Run a scenario interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("scenario") {
				index = e.cfg.DefaultScenario
			}

			gen, err := llm.New(cmd.Context(), string(e.cfg.Generator), llm.GeminiConfig{
				APIKey:    e.cfg.GeminiAPIKey,
				Project:   e.cfg.GCPProjectID,
				Location:  e.cfg.GCPLocation,
				ModelName: e.cfg.ModelName,
			})
			if err != nil {
				return fmt.Errorf("init generator: %w", err)
			}

			opts := conversation.Options{
				Scheduler:       clock.Real{},
				Generator:       gen,
				OptionLatency:   e.cfg.OptionLatency,
				FreeTextLatency: e.cfg.FreeTextLatency,
				GenerateTimeout: e.cfg.GenerateTimeout,
				Logger:          observability.WithFields("component", "democtl"),
			}
			if cmd.Flags().Changed("latency") {
				opts.OptionLatency = latency
				opts.FreeTextLatency = latency
			}

			ctrl, err := conversation.NewController("democtl-chat", e.scenarios, conversation.Config{
				ScenarioIndex: index,
				Mode:          domain.ModeInteractive,
			}, opts)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			c := &chat{
				ctrl:    ctrl,
				out:     cmd.OutOrStdout(),
				r:       &renderer{out: cmd.OutOrStdout()},
				timeout: opts.OptionLatency + opts.FreeTextLatency + e.cfg.GenerateTimeout + 5*time.Second,
			}
			return c.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	f := cmd.Flags()
	f.IntVar(&index, "scenario", 0, "Scenario index (see 'democtl scenarios')")
	f.DurationVar(&latency, "latency", time.Second, "Simulated agent response delay")
	return cmd
}

type chat struct {
	ctrl    *conversation.Controller
	out     io.Writer
	r       *renderer
	timeout time.Duration

	updates <-chan conversation.Snapshot
}

func (c *chat) run(ctx context.Context, in io.Reader) error {
	updates, cancel := c.ctrl.Subscribe()
	defer cancel()
	c.updates = updates

	fmt.Fprintf(c.out, "%s\n%s\n\n", c.ctrl.Snapshot().Title, chatHelp)
	c.drain()
	c.r.messages(c.ctrl.Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			quit, err := c.command(line)
			if err != nil {
				fmt.Fprintf(c.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		logLen := len(c.ctrl.Snapshot().Log)
		if !c.act(line) {
			fmt.Fprintln(c.out, "(not accepted right now)")
			continue
		}
		// an accepted action logs once when taken and once when answered
		if err := c.wait(ctx, logLen+2); err != nil {
			return err
		}
	}
}

func (c *chat) command(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		fmt.Fprintln(c.out, chatHelp)
	case "/log":
		c.r.log(c.ctrl.Snapshot().Log)
	case "/reset":
		c.ctrl.Reset()
		c.restart()
	case "/scenario":
		if len(fields) != 2 {
			return false, fmt.Errorf("usage: /scenario <index>")
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			return false, fmt.Errorf("scenario index %q: %w", fields[1], domain.ErrInvalidArgument)
		}
		if err := c.ctrl.SelectScenario(idx); err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "\n%s\n", c.ctrl.Snapshot().Title)
		c.restart()
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
	return false, nil
}

func (c *chat) restart() {
	c.drain()
	c.r.printed = 0
	c.r.messages(c.ctrl.Snapshot())
}

// act picks one of the offered options, by number or text, while the
// agent is waiting on them, and submits free text otherwise.
func (c *chat) act(line string) bool {
	snap := c.ctrl.Snapshot()
	if snap.State != domain.StateAwaitingOption {
		return c.ctrl.SubmitFreeText(line)
	}

	opts := snap.Transcript[len(snap.Transcript)-1].Options
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(opts) {
		return c.ctrl.SelectOption(opts[n-1].Text)
	}
	for _, o := range opts {
		if strings.EqualFold(o.Text, line) {
			return c.ctrl.SelectOption(o.Text)
		}
	}
	return false
}

// wait prints updates until the agent has answered, that is until the
// log holds at least logLen entries and nothing is pending.
func (c *chat) wait(ctx context.Context, logLen int) error {
	deadline := time.NewTimer(c.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("no response from the agent after %s", c.timeout)
		case snap, ok := <-c.updates:
			if !ok {
				return nil
			}
			c.r.messages(snap)
			if !snap.Responding && len(snap.Log) >= logLen {
				return nil
			}
		}
	}
}

func (c *chat) drain() {
	for {
		select {
		case <-c.updates:
		default:
			return
		}
	}
}
