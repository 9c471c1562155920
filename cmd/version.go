package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by the linker at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:              "version",
	Short:            "Print the version",
	Args:             cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "rzork %s\n", Version)
		return err
	},
}
