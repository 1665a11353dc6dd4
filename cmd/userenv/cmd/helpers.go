package cmd

import (
	"fmt"
	"os"

	"github.com/bianoble/userenv/internal/config"
	"github.com/bianoble/userenv/internal/logging"
	"github.com/bianoble/userenv/pkg/userenv"
)

// newClient creates a library client from the global flags.
func newClient() (*userenv.Client, error) {
	return userenv.New(clientOptions())
}

// newReadOnlyClient creates a client that never creates the store, for
// commands that only read config and manifests.
func newReadOnlyClient() (*userenv.Client, error) {
	opts := clientOptions()
	opts.ReadOnly = true
	return userenv.New(opts)
}

func clientOptions() userenv.Options {
	return userenv.Options{
		ConfigPath:   configPath,
		ManifestPath: manifestPath,
		StoreDir:     storeDir,
		NoInherit:    noInherit || config.EnvNoInherit(),
	}
}

// logLevel maps the output flags to a log level. An explicit --log-level
// wins over --quiet and --verbose.
func logLevel() logging.Level {
	switch {
	case logLevelName != "":
		return logging.ParseLevel(logLevelName)
	case quiet:
		return logging.ErrorLevel
	case verbose:
		return logging.DebugLevel
	default:
		return logging.WarnLevel
	}
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// short abbreviates an artifact id for display.
func short(id userenv.ID) string {
	s := string(id)
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
