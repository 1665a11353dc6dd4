package cmd

import (
	"errors"
	"fmt"

	"github.com/bianoble/userenv/internal/config"
	"github.com/bianoble/userenv/pkg/userenv"
	"github.com/spf13/cobra"
)

var (
	buildProject bool
	buildDryRun  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build every artifact and compose the environment",
	Long: `Builds every generated tool config as an artifact, links each one to its
tool destination and composes the environment. The resulting environment and
artifact ids are written to the manifest, and artifacts that changed since the
last build are listed.

With --project only the pinned tools and environment variables are composed;
nothing is linked into the home directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.Build(cmd.Context(), userenv.BuildOptions{
			Project: buildProject,
			DryRun:  buildDryRun,
		})
		if err != nil {
			var verr *config.ValidationError
			if errors.As(err, &verr) {
				for _, e := range verr.Errors {
					errorf("%s", e)
				}
				return fmt.Errorf("config is invalid")
			}
			return err
		}

		for _, l := range result.Layers {
			if l.Loaded {
				detail("config  %-8s %s", l.Level, l.Path)
			}
		}

		if buildDryRun {
			info("Dry run, manifest not written.")
		}

		for _, ch := range result.Changes {
			switch {
			case ch.Before == "":
				info("  added    %s  %s", ch.Name, short(ch.After))
			case ch.After == "":
				info("  removed  %s", ch.Name)
			default:
				info("  rebuilt  %s  %s -> %s", ch.Name, short(ch.Before), short(ch.After))
			}
		}

		d := result.Manifest.Environment
		for _, s := range d.Symlinks {
			detail("%s -> %s", s.Target, s.Source)
		}

		info("")
		info("Environment %s: %d artifacts, %d links, %d changed.",
			d.Name, len(d.Artifacts), len(d.Symlinks), len(result.Changes))
		if result.Written {
			detail("wrote %s", client.ManifestPath())
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildProject, "project", false, "compose a project environment without linked configs")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "build without writing the manifest")
	rootCmd.AddCommand(buildCmd)
}
