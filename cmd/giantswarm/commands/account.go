package commands

import (
	"bufio"

	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/spf13/cobra"
)

// NewAccountCommand creates the account command group.
func NewAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your account",
	}

	cmd.AddCommand(newAccountShowCommand())
	cmd.AddCommand(newAccountUpdateEmailCommand())
	cmd.AddCommand(newAccountUpdatePasswordCommand())

	return cmd
}

func newAccountShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			user := client.GetUser(cmd.Context())
			if user.Name == "" {
				return operationFailed("show account")
			}

			renderer := &OutputRenderer[giantswarm.User]{
				Header: []string{"Property", "Value"},
				Rows: func(user giantswarm.User) [][]string {
					return [][]string{
						{"Username", user.Name},
						{"Email", orNotAvailable(user.Email)},
					}
				},
			}

			return renderer.Render(cmd.OutOrStdout(), user)
		},
	}
}

func newAccountUpdateEmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update-email EMAIL",
		Short: "Change your email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.UpdateEmail(cmd.Context(), args[0]) {
				return operationFailed("update email")
			}

			printSuccess(cmd, "Email changed to %s", args[0])

			return nil
		},
	}
}

func newAccountUpdatePasswordCommand() *cobra.Command {
	var (
		oldPassword string
		newPassword string
	)

	cmd := &cobra.Command{
		Use:   "update-password",
		Short: "Change your password",
		Long:  "Change your password. Passwords not given as flags are prompted for.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			prompts := map[*string]string{&oldPassword: "Current password", &newPassword: "New password"}

			for _, password := range []*string{&oldPassword, &newPassword} {
				if *password != "" {
					continue
				}

				read, err := readPassword(cmd, reader, prompts[password])
				if err != nil {
					return err
				}

				if read == "" {
					return ErrEmptyPassword
				}

				*password = read
			}

			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.UpdatePassword(cmd.Context(), oldPassword, newPassword) {
				return operationFailed("update password")
			}

			printSuccess(cmd, "Password changed")

			return nil
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old", "", "current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password")

	return cmd
}
