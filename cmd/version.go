package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildTime    = "unknown"
)

// SetVersion records the version and build time stamped in at link time
func SetVersion(version, built string) {
	buildVersion = version
	buildTime = built
	rootCmd.Version = versionString()
}

// versionString normalizes release versions such as "1.2.0" or "v1.2.0";
// anything that is not a semantic version is reported as is
func versionString() string {
	if v, err := semver.ParseTolerant(buildVersion); err == nil {
		return "v" + v.String()
	}
	return buildVersion
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "outsidein %s (built %s)\n", versionString(), buildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
