package commands

import (
	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.Ping(cmd.Context()) {
				return ErrPingFailed
			}

			printSuccess(cmd, "OK")

			return nil
		},
	}
}
