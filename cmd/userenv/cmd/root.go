package cmd

import (
	"fmt"
	"os"

	"github.com/bianoble/userenv/internal/logging"
	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath   string
	manifestPath string
	storeDir     string
	verbose      bool
	quiet        bool
	noColor      bool
	noInherit    bool
	logLevelName string
)

var rootCmd = &cobra.Command{
	Use:   "userenv",
	Short: "Typed tool configs composed into a user environment",
	Long: `userenv generates configuration files for ghostty, k9s, bat, Claude Code
and opencode from typed builders, stores each one as a build artifact and
composes a user environment that links every generated file into place.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.Config{
			Level:  logLevel(),
			Output: os.Stderr,
			Pretty: !noColor,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("userenv %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to project config (default: userenv.{yaml,toml,json} in the current directory)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "path to manifest (default: userenv.lock next to the config)")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", "", "artifact store directory (default: ~/.cache/userenv)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().StringVar(&logLevelName, "log-level", "", "log level: debug, info, warn, error or off (overrides --quiet and --verbose)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noInherit, "no-inherit", false, "ignore system and user config layers")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
