package commands

import (
	"github.com/spf13/cobra"
)

// VersionInfo describes the CLI build.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Built   string `json:"built"   yaml:"built"`
}

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the Giant Swarm CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer := &OutputRenderer[VersionInfo]{
				Header: []string{"Property", "Value"},
				Rows: func(info VersionInfo) [][]string {
					return [][]string{
						{"Version", info.Version},
						{"Commit", info.Commit},
						{"Built", info.Built},
					}
				},
			}

			return renderer.Render(cmd.OutOrStdout(), VersionInfo{Version: version, Commit: commit, Built: date})
		},
	}
}
