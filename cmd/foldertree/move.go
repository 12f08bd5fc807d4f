package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <source> <target>",
		Short: "Move a folder, and its whole subtree, to a new path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.tr.Move(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
