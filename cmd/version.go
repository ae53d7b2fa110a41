package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacedmonkey/blockpress/internal/version"
)

var versionDetailed bool

// versionCmd prints the binary's version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if versionDetailed {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetDetailedVersion())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersion())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionDetailed, "detailed", false, "print full build information")
	rootCmd.AddCommand(versionCmd)
}
