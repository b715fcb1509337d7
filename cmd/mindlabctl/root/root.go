// Package root holds the mindlabctl commands.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is printed by --version.
const Version = "0.1.0"

// storeFlags override the configured store when set.
type storeFlags struct {
	backend string
	path    string
}

func newRootCmd() *cobra.Command {
	var sf storeFlags

	cmd := &cobra.Command{
		Use:           "mindlabctl",
		Short:         "Mind Lab journal on the command line",
		Long:          "mindlabctl logs journal entries and summarises them straight from the configured store.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&sf.backend, "backend", "", "Store backend (memory|csv|sqlite), overrides MINDLAB_STORE_BACKEND")
	cmd.PersistentFlags().StringVar(&sf.path, "path", "", "Store path, overrides MINDLAB_STORE_PATH")

	cmd.AddCommand(
		newAddCmd(&sf),
		newSummaryCmd(&sf),
		newExportCmd(&sf),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}
