package commands

import (
	"context"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/spf13/cobra"
)

// NewMembersCommand creates the members command group.
func NewMembersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Manage company members",
	}

	cmd.AddCommand(newMembersListCommand())
	cmd.AddCommand(newMembersChangeCommand("add", "Add a user to a company", "Added",
		giantswarm.Client.AddUserToCompany))
	cmd.AddCommand(newMembersChangeCommand("remove", "Remove a user from a company", "Removed",
		giantswarm.Client.RemoveUserFromCompany))

	return cmd
}

func newMembersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list COMPANY",
		Aliases: []string{"ls"},
		Short:   "List the members of a company",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			renderer := &OutputRenderer[[]string]{
				Header: []string{"Username"},
				Rows:   singleColumn,
			}

			return renderer.Render(cmd.OutOrStdout(), client.GetCompanyUsers(cmd.Context(), args[0]))
		},
	}
}

type memberChange func(client giantswarm.Client, ctx context.Context, companyName, username string) bool

func newMembersChangeCommand(use, short, done string, change memberChange) *cobra.Command {
	return &cobra.Command{
		Use:   use + " COMPANY USERNAME",
		Short: short,
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			companyName, username := args[0], args[1]

			if !change(client, cmd.Context(), companyName, username) {
				return operationFailed(use + " member " + username)
			}

			printSuccess(cmd, "%s %s in %s", done, username, companyName)

			return nil
		},
	}
}
