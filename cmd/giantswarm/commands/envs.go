package commands

import (
	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/spf13/cobra"
)

// NewEnvsCommand creates the envs command group. Environments live in the
// local store only; none of these commands call the API.
func NewEnvsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "envs",
		Aliases: []string{"env", "environments"},
		Short:   "Manage remembered environments",
		Long: `List, create and delete the environments remembered for each company.

The API offers no environment listing, so "apps list" without arguments
walks the environments remembered here.`,
	}

	cmd.AddCommand(newEnvsListCommand())
	cmd.AddCommand(newEnvsCreateCommand())
	cmd.AddCommand(newEnvsDeleteCommand())

	return cmd
}

func newEnvsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List remembered environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			renderer := &OutputRenderer[[]giantswarm.Environment]{
				Header: []string{"Company", "Environment"},
				Rows: func(environments []giantswarm.Environment) [][]string {
					rows := make([][]string, 0, len(environments))
					for _, environment := range environments {
						rows = append(rows, []string{environment.CompanyName, environment.Name})
					}

					return rows
				},
			}

			return renderer.Render(cmd.OutOrStdout(), client.GetEnvironments(cmd.Context()))
		},
	}
}

func newEnvsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create COMPANY ENVIRONMENT",
		Short: "Remember an environment",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.CreateEnvironment(cmd.Context(), args[0], args[1]) {
				return operationFailed("create environment " + args[1])
			}

			printSuccess(cmd, "Created environment %s/%s", args[0], args[1])

			return nil
		},
	}
}

func newEnvsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COMPANY ENVIRONMENT",
		Short: "Forget an environment",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.DeleteEnvironment(cmd.Context(), args[0], args[1]) {
				return operationFailed("delete environment " + args[1])
			}

			printSuccess(cmd, "Deleted environment %s/%s", args[0], args[1])

			return nil
		},
	}
}
