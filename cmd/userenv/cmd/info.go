package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/bianoble/userenv/internal/store"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about userenv configuration and the artifact store",
	Long: `Displays the userenv version, the config layers and whether each was
loaded, the manifest path and the number of artifacts in the local store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newReadOnlyClient()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "userenv %s\n", version)

		// Missing or invalid configs are reported through the layers.
		_, layers, cfgErr := client.Config()
		fmt.Fprintln(out, "  config chain:")
		for _, l := range layers {
			status := "not found"
			switch {
			case l.Err != nil:
				status = "error: " + l.Err.Error()
			case l.Loaded:
				status = "loaded"
			}
			fmt.Fprintf(out, "    %-10s %s (%s)\n", string(l.Level)+":", l.Path, status)
		}
		if cfgErr != nil {
			fmt.Fprintf(out, "  config error:  %v\n", cfgErr)
		}

		fmt.Fprintf(out, "  manifest:      %s", client.ManifestPath())
		if m, err := client.Manifest(); err == nil {
			fmt.Fprintf(out, " (%d artifacts)", len(m.Artifacts))
		}
		fmt.Fprintln(out)

		dir := storeDir
		if dir == "" {
			dir = store.DefaultDir()
		}
		s, err := store.Open(dir, "")
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(out, "  store:         %s (not created)\n", dir)
		case err != nil:
			fmt.Fprintf(out, "  store:         %s (error: %v)\n", dir, err)
		default:
			fmt.Fprintf(out, "  store:         %s\n", dir)
			if ids, err := s.List(); err == nil {
				fmt.Fprintf(out, "  stored:        %d artifacts\n", len(ids))
			}
			fmt.Fprintf(out, "  output root:   %s\n", s.OutputRoot())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
