package commands

import (
	"github.com/spf13/cobra"
)

// NewCompaniesCommand creates the companies command group.
func NewCompaniesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "companies",
		Aliases: []string{"company"},
		Short:   "Manage companies",
		Long:    "List, create and delete the companies you are a member of",
	}

	cmd.AddCommand(newCompaniesListCommand())
	cmd.AddCommand(newCompaniesCreateCommand())
	cmd.AddCommand(newCompaniesDeleteCommand())

	return cmd
}

func newCompaniesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			renderer := &OutputRenderer[[]string]{
				Header: []string{"Company"},
				Rows:   singleColumn,
			}

			return renderer.Render(cmd.OutOrStdout(), client.GetCompanies(cmd.Context()))
		},
	}
}

func newCompaniesCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create COMPANY",
		Short: "Create a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.CreateCompany(cmd.Context(), args[0]) {
				return operationFailed("create company " + args[0])
			}

			printSuccess(cmd, "Created company %s", args[0])

			return nil
		},
	}
}

func newCompaniesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete COMPANY",
		Short: "Delete a company",
		Long:  "Delete a company and forget its locally remembered environments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !client.DeleteCompany(cmd.Context(), args[0]) {
				return operationFailed("delete company " + args[0])
			}

			printSuccess(cmd, "Deleted company %s", args[0])

			return nil
		},
	}
}

func singleColumn(values []string) [][]string {
	rows := make([][]string, 0, len(values))
	for _, value := range values {
		rows = append(rows, []string{value})
	}

	return rows
}
