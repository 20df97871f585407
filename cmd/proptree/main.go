package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/proptree/proptree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(errors.FromError(err, "P041"))
		os.Exit(1)
	}
}

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "proptree",
		Short: "Compose property-driven component trees",
		Long: `proptree composes component trees from property bundles and mounts
the result: as HTML on stdout, as files, in an S3 bucket, in a snapshot
store, in the terminal or on a live HTTP server.

The built-in examples are pages from a React course rewritten as
proptree components. Run "proptree list" to see them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "Path to proptree.json (default: nearest above the working directory)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		listCmd(flags),
		renderCmd(flags),
		treeCmd(flags),
		serveCmd(flags),
		publishCmd(flags),
		snapshotCmd(flags),
		tuiCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styles.Success.Render("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
