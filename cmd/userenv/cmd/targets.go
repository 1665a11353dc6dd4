package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List tools and where their configs are linked",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newReadOnlyClient()
		if err != nil {
			return err
		}
		targets, err := client.Targets()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, t := range targets {
			note := ""
			switch {
			case t.Custom:
				note = " (custom)"
			case t.Overridden:
				note = " (overridden)"
			}
			artifact := t.Artifact
			if artifact == "" {
				artifact = "-"
			}
			fmt.Fprintf(out, "  %-18s %-28s → %s%s\n", t.Tool, artifact, t.Destination, note)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
