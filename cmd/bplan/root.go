package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lagvtt/backend/internal/bplan"
	"github.com/lagvtt/backend/internal/models"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bplan",
		Short: "Convert battle plans to chat scripts and map URLs",
		Long: `bplan reads battle plans (JSON or YAML) and renders them as
!uvar or !bplan chat scripts or as otfbm.io map image URLs. It can also
decode a pasted script back into a plan.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newURLCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of bplan",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bplan %s\n", Version)
		},
	}
}

// readPlan loads and normalizes a plan file.
func readPlan(path string) (*models.BattlePlan, error) {
	plan, err := bplan.ParsePlanFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	return plan, nil
}

// readInput returns the contents of path, or of stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
