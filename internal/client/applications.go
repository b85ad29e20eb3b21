package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/tidwall/gjson"
)

// ApplicationsClient manages applications and their components.
type ApplicationsClient struct {
	core         *core
	companies    *CompaniesClient
	environments *EnvironmentsClient
}

func newApplicationsClient(shared *core, companies *CompaniesClient, environments *EnvironmentsClient) *ApplicationsClient {
	return &ApplicationsClient{core: shared, companies: companies, environments: environments}
}

// List returns the applications of one environment.
func (c *ApplicationsClient) List(ctx context.Context, companyName, environmentName string) ([]giantswarm.Application, error) {
	data, err := c.core.read(ctx,
		cacheKey(constants.CacheKeyApplications, companyName, environmentName),
		resourcePath("company", companyName, "env", environmentName, "app")+"/")
	if err != nil {
		return nil, err
	}

	items := data.Array()
	applications := make([]giantswarm.Application, 0, len(items))

	for _, item := range items {
		applications = append(applications, giantswarm.Application{
			Company:     item.Get("company").String(),
			Environment: item.Get("env").String(),
			Application: item.Get("app").String(),
			CreatedAt:   item.Get("created").String(),
		})
	}

	return applications, nil
}

// ListAll walks every company and that company's remembered environments.
// Applications of the environments that could be listed are returned
// together with the joined errors of those that could not.
func (c *ApplicationsClient) ListAll(ctx context.Context) ([]giantswarm.Application, error) {
	companies, err := c.companies.List(ctx)
	if err != nil {
		return nil, err
	}

	var (
		applications = []giantswarm.Application{}
		errs         []error
	)

	for _, companyName := range companies {
		environments, err := c.environments.ListForCompany(ctx, companyName)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		for _, environmentName := range environments {
			apps, err := c.List(ctx, companyName, environmentName)
			if err != nil {
				errs = append(errs, fmt.Errorf("listing applications of %s/%s: %w", companyName, environmentName, err))

				continue
			}

			applications = append(applications, apps...)
		}
	}

	return applications, errors.Join(errs...)
}

// Status returns the live status tree of an application.
func (c *ApplicationsClient) Status(ctx context.Context, companyName, environmentName, applicationName string) (giantswarm.ApplicationStatus, error) {
	data, err := c.core.call(ctx, http.MethodGet,
		resourcePath("company", companyName, "env", environmentName, "app", applicationName, "status"),
		nil, giantswarm.StatusSuccess)
	if err != nil {
		return giantswarm.ApplicationStatus{}, err
	}

	return parseApplicationStatus(data), nil
}

// Start starts an application.
func (c *ApplicationsClient) Start(ctx context.Context, companyName, environmentName, applicationName string) error {
	_, err := c.core.call(ctx, http.MethodPost,
		resourcePath("company", companyName, "env", environmentName, "app", applicationName, "start"),
		nil, giantswarm.StatusStarted)

	return err
}

// Stop stops an application.
func (c *ApplicationsClient) Stop(ctx context.Context, companyName, environmentName, applicationName string) error {
	_, err := c.core.call(ctx, http.MethodPost,
		resourcePath("company", companyName, "env", environmentName, "app", applicationName, "stop"),
		nil, giantswarm.StatusStopped)

	return err
}

// ScaleUp adds count instances to a component.
func (c *ApplicationsClient) ScaleUp(ctx context.Context, target giantswarm.ComponentRef, count int) error {
	return c.scale(ctx, target, "scaleup", count, giantswarm.StatusUpdated)
}

// ScaleDown removes count instances from a component.
func (c *ApplicationsClient) ScaleDown(ctx context.Context, target giantswarm.ComponentRef, count int) error {
	return c.scale(ctx, target, "scaledown", count, giantswarm.StatusDeleted)
}

func (c *ApplicationsClient) scale(
	ctx context.Context,
	target giantswarm.ComponentRef,
	action string,
	count int,
	expected giantswarm.EnvelopeStatus,
) error {
	if count < 1 {
		return fmt.Errorf("%w: %d", constants.ErrInvalidCount, count)
	}

	path := resourcePath(
		"company", target.Company,
		"env", target.Environment,
		"app", target.Application,
		"service", target.Service,
		"component", target.Component,
		action, strconv.Itoa(count),
	)

	_, err := c.core.call(ctx, http.MethodPost, path, nil, expected)

	return err
}

func parseApplicationStatus(data gjson.Result) giantswarm.ApplicationStatus {
	services := data.Get("services").Array()

	status := giantswarm.ApplicationStatus{
		Name:     data.Get("name").String(),
		Status:   data.Get("status").String(),
		Services: make([]giantswarm.ServiceStatus, 0, len(services)),
	}

	for _, service := range services {
		components := service.Get("components").Array()

		serviceStatus := giantswarm.ServiceStatus{
			Name:       service.Get("name").String(),
			Status:     service.Get("status").String(),
			Maximum:    int(service.Get("max").Int()),
			Minimum:    int(service.Get("min").Int()),
			Components: make([]giantswarm.ComponentStatus, 0, len(components)),
		}

		for _, component := range components {
			instances := component.Get("instances").Array()

			componentStatus := giantswarm.ComponentStatus{
				Name:      component.Get("name").String(),
				Status:    component.Get("status").String(),
				Maximum:   int(component.Get("max").Int()),
				Minimum:   int(component.Get("min").Int()),
				Instances: make([]giantswarm.InstanceStatus, 0, len(instances)),
			}

			for _, instance := range instances {
				componentStatus.Instances = append(componentStatus.Instances, giantswarm.InstanceStatus{
					ID:        instance.Get("id").String(),
					Status:    instance.Get("status").String(),
					Image:     instance.Get("image").String(),
					CreatedAt: instance.Get("create_date").String(),
				})
			}

			serviceStatus.Components = append(serviceStatus.Components, componentStatus)
		}

		status.Services = append(status.Services, serviceStatus)
	}

	return status
}
