package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezrec/robox/cpu"
	"github.com/ezrec/robox/event"
	"github.com/ezrec/robox/game"
	"github.com/ezrec/robox/level"
)

// loadProgram finds a level and assembles either its own program or the
// one in path.
func loadProgram(a *app, name string, path string) (lvl *level.Level, listing *cpu.Program, err error) {
	lvl, err = level.Find(name, a.cfg.Levels.Dir)
	if err != nil {
		return
	}

	if len(path) == 0 {
		listing, err = lvl.Assemble(nil)
		if err != nil {
			err = fmt.Errorf("%v: %w", lvl.Path, err)
		}
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	listing, err = lvl.Assemble(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

func newRunCmd(a *app) *cobra.Command {
	var programPath string
	var until int

	cmd := &cobra.Command{
		Use:   "run LEVEL",
		Short: "Run a program against a level",
		Long:  "Run a program against a level, by path or by name in the levels directory, and report the outbox and outcome.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			lvl, listing, err := loadProgram(a, args[0], programPath)
			if err != nil {
				return
			}

			ses := game.NewSession()
			ses.Sink = a.sink
			ses.Gap = a.cfg.Run.Gap

			err = lvl.StartWith(ses, listing)
			if err != nil {
				return
			}

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt)
			defer signal.Stop(interrupt)

			var stopped error
			steps := 1
			ses.Pace = func(gap time.Duration) {
				select {
				case <-interrupt:
					stopped = ErrPaused
					ses.Pause()
				default:
				}
				if a.cfg.Run.MaxSteps > 0 && steps >= a.cfg.Run.MaxSteps {
					stopped = ErrStepBudget
					ses.Pause()
				}
				steps++
				if gap > 0 {
					time.Sleep(gap)
				}
			}

			a.emit(event.SEVERITY_INFO, f("run %v (%v)", lvl.Name, ses.Id), nil)

			var outcome game.Outcome
			if until > 0 {
				outcome, err = ses.RunUntil(until)
			} else {
				outcome, err = ses.RunToCompletion()
			}

			out := cmd.OutOrStdout()
			snap := ses.Snapshot()
			fmt.Fprintf(out, "outbox: %v\n", snap.Outbox)
			if err != nil {
				return
			}

			if stopped != nil {
				a.emit(event.SEVERITY_ERROR, f("stopped at ip %d", snap.Ip), stopped)
				return fmt.Errorf("ip %d: %w", snap.Ip, stopped)
			}

			if ses.Cpu.State == cpu.STATE_RUNNING {
				fmt.Fprintf(out, "stopped: ip %d\n", snap.Ip)
			}
			fmt.Fprintln(out, outcome)

			return
		},
	}

	cmd.Flags().StringVarP(&programPath, "program", "p", "", "assembly file to run instead of the level's program")
	cmd.Flags().IntVar(&until, "until", 0, "stop once the ip reaches this instruction")
	cmd.Flags().Duration("gap", 0, "pause between steps")
	cmd.Flags().Int("max-steps", 100000, "fail after this many steps, 0 for no limit")

	return cmd
}
