package main

import (
	"encoding/json"
	"fmt"

	"github.com/lagvtt/backend/internal/bplan"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDecodeCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "decode <script-file|->",
		Short: "Decode a uvar or bplan script into a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			plan, err := bplan.Decode(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(plan)
			}

			data, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding plan: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the plan as YAML instead of JSON")
	return cmd
}
