package main

import (
	"fmt"

	"github.com/lagvtt/backend/internal/bplan"
	"github.com/spf13/cobra"
)

func newURLCmd() *cobra.Command {
	var scale float64

	cmd := &cobra.Command{
		Use:   "url <plan-file>",
		Short: "Render a plan as an otfbm.io map image URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), bplan.OTFBMURL(plan, bplan.URLOptions{Scale: scale}))
			return nil
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 5, "feet per grid cell used to size overlays")
	return cmd
}
