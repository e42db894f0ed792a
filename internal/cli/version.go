package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Display version information",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return writeJSON(w, CLIResponse{Status: "ok", Data: map[string]string{
					"version":   Version,
					"sha":       Sha,
					"buildtime": Buildtime,
				}})
			}
			fmt.Fprintf(w, "Version: %s\nSha: %s\nBuilt at: %s\n", Version, Sha, Buildtime)
			return nil
		},
	}
}
