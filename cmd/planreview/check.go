package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fandolabs/planreview/internal/invoker"
)

func newCheckCmd() *cobra.Command {
	var reviewerCmd string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the reviewer command is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := invoker.NewCommand(reviewerCmd)
			if err != nil {
				return err
			}
			if err := inv.IsAvailable(); err != nil {
				return err
			}
			fmt.Printf("✓ %s found\n", inv.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&reviewerCmd, "reviewer-cmd", invoker.DefaultCommand, "reviewer command line to check")

	return cmd
}
