package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default userenv.yaml scaffold.
const initTemplate = `# userenv configuration
# Docs: https://github.com/bianoble/userenv
version: 1
name: user

# namespace: library
# theme: tokyonight
# systems: [aarch64-darwin, x86_64-linux]

# terminal:
#   font_family: GeistMono NFM
#   font_size: 18
#   background_opacity: 0.95

# palette:
#   purple: "#bb9af7"

# Prebuilt tool artifacts added to the environment.
# tools:
#   - name: neovim
#     artifact: <artifact id>

# Local directories copied into artifacts and linked to a tool destination.
# directories:
#   - name: agents
#     path: ./agents
#     tool: claude-agents

environments:
  - EDITOR=nvim

# symlinks:
#   - source: $HOME/src/vorpal/target/debug/vorpal
#     target: $HOME/.vorpal/bin/vorpal

# tool_definitions:
#   - name: ghostty
#     destination: $HOME/.config/ghostty/config
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter userenv.yaml configuration",
	Long: `Creates a userenv.yaml file in the current directory with a commented
template of every config section.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if outPath == "" {
			outPath = "userenv.yaml"
		}
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Edit the file to pin your tools and directories")
		info("  2. Run 'userenv render ghostty' to preview a generated config")
		info("  3. Run 'userenv build' to build the environment")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
