package cmd

import (
	"runtime"
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/huangsam/doralens/schema"
	"github.com/spf13/cobra"
)

// versionCmd prints build details and the GitHub defaults this binary falls back to.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the doralens version and GitHub defaults",
	Long: `Print the release, commit and build date, followed by the repository
and API root used when no --owner, --repo or --api-url is given, and the
environment variables searched for a token.

Include this output when reporting a bug.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("doralens %s (%s, built %s, %s)\n", version, commit, date, runtime.Version())
		cmd.Printf("  Default repo: %s\n", schema.RepoRef{Owner: schema.DefaultOwner, Name: schema.DefaultRepo})
		cmd.Printf("  API root:     %s\n", github.NewClient(nil).BaseURL)
		cmd.Printf("  Token from:   %s\n", strings.Join(tokenEnvVars, ", "))
		cmd.Printf("  Metrics:      %d\n", len(schema.AllMetricKeys))
	},
}
