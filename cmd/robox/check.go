package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/robox/game"
)

func newCheckCmd(a *app) *cobra.Command {
	var programPath string

	cmd := &cobra.Command{
		Use:   "check LEVEL",
		Short: "Validate a program against a level and print its listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			lvl, listing, err := loadProgram(a, args[0], programPath)
			if err != nil {
				return
			}

			ses := game.NewSession()
			ses.Sink = a.sink

			err = lvl.StartWith(ses, listing)
			if err != nil {
				return
			}

			out := cmd.OutOrStdout()
			for _, op := range listing.Opcodes {
				fmt.Fprintf(out, "%3d %4d  %v\n", op.Ip, op.LineNo, op.Command)
			}
			fmt.Fprintf(out, "%v: %d instructions ok\n", lvl.Name, ses.Cpu.Program.Len())

			return
		},
	}

	cmd.Flags().StringVarP(&programPath, "program", "p", "", "assembly file to check instead of the level's program")

	return cmd
}
