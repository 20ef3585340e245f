package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hxmount",
		Short: "Inspect and stamp component mount points in HTML documents",
		Long: `hxmount reads HTML documents the way the hxmount library does when it
mounts components: it resolves a CSS selector and derives each matching
element's props from its data-* attributes and embedded JSON carriers.

Configuration is read from flags, from HXMOUNT_* environment variables
(HXMOUNT_KEY, HXMOUNT_FORMAT, HXMOUNT_SENSITIVE) and from an optional YAML
file given with --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML config file")
	flags.String("key", "", "stamp signing/encryption key")
	flags.Bool("sensitive", false, "encrypt stamps instead of signing them")
	flags.StringP("format", "f", "json", "output format: json or yaml")
	flags.BoolP("verbose", "v", false, "log skipped elements to stderr")

	rootCmd.AddCommand(
		propsCmd(),
		stampCmd(),
		verifyCmd(),
		versionCmd(),
	)

	return rootCmd
}
