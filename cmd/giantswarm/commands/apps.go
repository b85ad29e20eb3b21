package commands

import (
	"context"
	"strconv"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/spf13/cobra"
)

const (
	appArgCount   = 3
	scaleArgCount = 5
)

// NewAppsCommand creates the apps command group.
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app", "applications"},
		Short:   "Manage applications",
		Long:    "List, inspect, start, stop and scale applications",
	}

	cmd.AddCommand(newAppsListCommand())
	cmd.AddCommand(newAppsStatusCommand())
	cmd.AddCommand(newAppsLifecycleCommand("start", "Start an application", "Started",
		giantswarm.Client.StartApplication))
	cmd.AddCommand(newAppsLifecycleCommand("stop", "Stop an application", "Stopped",
		giantswarm.Client.StopApplication))
	cmd.AddCommand(newAppsScaleCommand("scale-up", "Add instances to a component", "Scaled up",
		giantswarm.Client.ScaleApplicationUpBy))
	cmd.AddCommand(newAppsScaleCommand("scale-down", "Remove instances from a component", "Scaled down",
		giantswarm.Client.ScaleApplicationDownBy))

	return cmd
}

func newAppsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list [COMPANY ENVIRONMENT]",
		Aliases: []string{"ls"},
		Short:   "List applications",
		Long: `List the applications of one environment, or of every remembered
environment of every company when no arguments are given.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}

			return cobra.ExactArgs(constants.MinimumArgumentCount)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			var applications []giantswarm.Application
			if len(args) == 0 {
				applications = client.GetAllApplications(cmd.Context())
			} else {
				applications = client.GetApplications(cmd.Context(), args[0], args[1])
			}

			renderer := &OutputRenderer[[]giantswarm.Application]{
				Header: []string{"Company", "Environment", "Application", "Created"},
				Rows: func(applications []giantswarm.Application) [][]string {
					rows := make([][]string, 0, len(applications))
					for _, app := range applications {
						rows = append(rows, []string{app.Company, app.Environment, app.Application, orNotAvailable(app.CreatedAt)})
					}

					return rows
				},
			}

			return renderer.Render(cmd.OutOrStdout(), applications)
		},
	}
}

func newAppsStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status COMPANY ENVIRONMENT APPLICATION",
		Short: "Show the status of an application",
		Long:  "Show the status of an application down to its component instances",
		Args:  cobra.ExactArgs(appArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			status := client.GetApplicationStatus(cmd.Context(), args[0], args[1], args[2])
			if status.Name == "" {
				return operationFailed("status of application " + args[2])
			}

			renderer := &OutputRenderer[giantswarm.ApplicationStatus]{
				Header: []string{"Service", "Component", "Instance", "Status", "Image", "Scale"},
				Rows:   applicationStatusRows,
			}

			return renderer.Render(cmd.OutOrStdout(), status)
		},
	}
}

// applicationStatusRows flattens the status tree to one row per
// instance, with service and component rows for empty levels.
func applicationStatusRows(status giantswarm.ApplicationStatus) [][]string {
	var rows [][]string

	for _, service := range status.Services {
		if len(service.Components) == 0 {
			rows = append(rows, []string{service.Name, constants.NotAvailable, constants.NotAvailable,
				service.Status, constants.NotAvailable, scaleRange(service.Minimum, service.Maximum)})
		}

		for _, component := range service.Components {
			scale := scaleRange(component.Minimum, component.Maximum)

			if len(component.Instances) == 0 {
				rows = append(rows, []string{service.Name, component.Name, constants.NotAvailable,
					component.Status, constants.NotAvailable, scale})
			}

			for _, instance := range component.Instances {
				rows = append(rows, []string{service.Name, component.Name, instance.ID,
					instance.Status, orNotAvailable(instance.Image), scale})
			}
		}
	}

	return rows
}

func scaleRange(minimum, maximum int) string {
	return strconv.Itoa(minimum) + "-" + strconv.Itoa(maximum)
}

type appLifecycle func(client giantswarm.Client, ctx context.Context, companyName, environmentName, applicationName string) bool

func newAppsLifecycleCommand(use, short, done string, action appLifecycle) *cobra.Command {
	return &cobra.Command{
		Use:   use + " COMPANY ENVIRONMENT APPLICATION",
		Short: short,
		Args:  cobra.ExactArgs(appArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if !action(client, cmd.Context(), args[0], args[1], args[2]) {
				return operationFailed(use + " application " + args[2])
			}

			printSuccess(cmd, "%s %s", done, args[2])

			return nil
		},
	}
}

type appScale func(client giantswarm.Client, ctx context.Context, target giantswarm.ComponentRef, count int) bool

func newAppsScaleCommand(use, short, done string, scale appScale) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   use + " COMPANY ENVIRONMENT APPLICATION SERVICE COMPONENT",
		Short: short,
		Args:  cobra.ExactArgs(scaleArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return constants.ErrInvalidCount
			}

			client, release, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			target := giantswarm.ComponentRef{
				Company:     args[0],
				Environment: args[1],
				Application: args[2],
				Service:     args[3],
				Component:   args[4],
			}

			if !scale(client, cmd.Context(), target, count) {
				return operationFailed(use + " component " + target.Component)
			}

			printSuccess(cmd, "%s %s by %d", done, target.Component, count)

			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", constants.DefaultScaleInstanceCount, "number of instances")

	return cmd
}
