package commands

import (
	"strconv"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/spf13/cobra"
)

const percentPrecision = 2

// NewInstancesCommand creates the instances command group.
func NewInstancesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instances",
		Aliases: []string{"instance"},
		Short:   "Inspect component instances",
	}

	cmd.AddCommand(newInstancesStatsCommand())

	return cmd
}

func newInstancesStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats COMPANY INSTANCE_ID",
		Short: "Show resource usage of an instance",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			stats := client.GetInstanceStatistics(cmd.Context(), args[0], args[1])

			renderer := &OutputRenderer[giantswarm.InstanceStatistics]{
				Header: []string{"Property", "Value"},
				Rows: func(stats giantswarm.InstanceStatistics) [][]string {
					return [][]string{
						{"Component", orNotAvailable(stats.Component)},
						{"Memory Usage (MB)", formatFloat(stats.MemoryUsageMB)},
						{"Memory Capacity (MB)", formatFloat(stats.MemoryCapacityMB)},
						{"Memory Usage (%)", formatFloat(stats.MemoryUsagePercent)},
						{"CPU Usage (%)", formatFloat(stats.CPUUsagePercent)},
					}
				},
			}

			return renderer.Render(cmd.OutOrStdout(), stats)
		},
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', percentPrecision, 64)
}
