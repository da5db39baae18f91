package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/robox/cpu"
	"github.com/ezrec/robox/level"
)

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the robot instruction set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			out := cmd.OutOrStdout()
			for _, op := range cpu.Ops() {
				if op.Operand() {
					_, err = fmt.Fprintf(out, "%v N\n", op)
				} else {
					_, err = fmt.Fprintf(out, "%v\n", op)
				}
				if err != nil {
					return
				}
			}
			return
		},
	}
}

func newLevelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the levels in the levels directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			names, err := level.Names(a.cfg.Levels.Dir)
			if err != nil {
				return
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				lvl, lerr := level.Find(name, a.cfg.Levels.Dir)
				if lerr != nil {
					fmt.Fprintf(out, "%-16v (%v)\n", name, lerr)
					continue
				}
				fmt.Fprintf(out, "%-16v %v\n", name, lvl.Description)
			}
			return
		},
	}
}
