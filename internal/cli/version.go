package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"altscore/internal/scoring"
	"altscore/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and model version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("altscore %s (commit %s, built %s, model %s)\n",
			version.Version, version.Commit, version.BuildDate, scoring.ModelVersion)
	},
}
