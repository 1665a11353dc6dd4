package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <tool>",
	Short: "Print the generated config for a tool",
	Long: `Renders the config generated for a tool and prints it without building
anything. Use 'userenv targets' to list the tools.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newReadOnlyClient()
		if err != nil {
			return err
		}
		content, err := client.Render(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
