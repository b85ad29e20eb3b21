package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Giant Swarm",
		Long: `Exchange email and password for a session token.

The token is stored in the configuration file and used by later commands
until you log out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			if email == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Email: ")

				line, err := reader.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read email: %w", err)
				}

				email = strings.TrimSpace(line)
			}

			if password == "" {
				read, err := readPassword(cmd, reader, "Password")
				if err != nil {
					return err
				}

				password = read
			}

			if password == "" {
				return ErrEmptyPassword
			}

			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.Login(cmd.Context(), email, password) {
				return operationFailed("login")
			}

			printSuccess(cmd, "Logged in as %s", email)

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "u", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

// readPassword prompts without echo on a terminal and reads a plain line
// otherwise.
func readPassword(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt+": ")

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		bytePassword, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(cmd.OutOrStdout())

		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		return string(bytePassword), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Giant Swarm",
		Long:  "Revoke the stored session token and remove it from the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.Logout(cmd.Context()) {
				return operationFailed("logout")
			}

			printSuccess(cmd, "Logged out")

			return nil
		},
	}
}
