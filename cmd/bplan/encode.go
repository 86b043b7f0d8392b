package main

import (
	"fmt"
	"strings"

	"github.com/lagvtt/backend/internal/bplan"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var dialect string

	cmd := &cobra.Command{
		Use:   "encode <plan-file>",
		Short: "Render a plan as a chat script",
		Long: `Render a plan file as a chat script. The uvar dialect prints one
"!uvar Battles" line; the bplan dialect prints one "!bplan" command per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bplan.GetGlobalRegistry().GetDialectByName(dialect)
			if err != nil {
				return err
			}
			plan, err := readPlan(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(d.Encode(plan), "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dialect, "dialect", "d", "uvar", "script dialect (uvar|bplan)")
	return cmd
}
