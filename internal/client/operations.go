package client

import (
	"context"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// Login implements giantswarm.AuthClient.Login.
func (c *Client) Login(ctx context.Context, email, password string) bool {
	return c.settle("login", c.auth.Login(ctx, email, password))
}

// Logout implements giantswarm.AuthClient.Logout.
func (c *Client) Logout(ctx context.Context) bool {
	return c.settle("logout", c.auth.Logout(ctx))
}

// IsLoggedIn implements giantswarm.AuthClient.IsLoggedIn.
func (c *Client) IsLoggedIn() bool {
	return c.core.session.IsAuthenticated()
}

// SetToken implements giantswarm.AuthClient.SetToken.
func (c *Client) SetToken(token string) {
	c.core.session.SetToken(token)
}

// GetCompanies implements giantswarm.CompaniesClient.GetCompanies.
func (c *Client) GetCompanies(ctx context.Context) []string {
	companies, err := c.companies.List(ctx)

	return settleValue(c, "get_companies", companies, err, []string{})
}

// HasCompanies implements giantswarm.CompaniesClient.HasCompanies.
func (c *Client) HasCompanies(ctx context.Context) bool {
	return len(c.GetCompanies(ctx)) > 0
}

// CreateCompany implements giantswarm.CompaniesClient.CreateCompany.
func (c *Client) CreateCompany(ctx context.Context, companyName string) bool {
	return c.settle("create_company", c.companies.Create(ctx, companyName))
}

// DeleteCompany implements giantswarm.CompaniesClient.DeleteCompany.
func (c *Client) DeleteCompany(ctx context.Context, companyName string) bool {
	return c.settle("delete_company", c.companies.Delete(ctx, companyName))
}

// GetCompanyUsers implements giantswarm.CompaniesClient.GetCompanyUsers.
func (c *Client) GetCompanyUsers(ctx context.Context, companyName string) []string {
	users, err := c.companies.Members(ctx, companyName)

	return settleValue(c, "get_company_users", users, err, []string{})
}

// AddUserToCompany implements giantswarm.CompaniesClient.AddUserToCompany.
func (c *Client) AddUserToCompany(ctx context.Context, companyName, username string) bool {
	return c.settle("add_user_to_company", c.companies.AddMember(ctx, companyName, username))
}

// RemoveUserFromCompany implements giantswarm.CompaniesClient.RemoveUserFromCompany.
func (c *Client) RemoveUserFromCompany(ctx context.Context, companyName, username string) bool {
	return c.settle("remove_user_from_company", c.companies.RemoveMember(ctx, companyName, username))
}

// GetEnvironments implements giantswarm.EnvironmentsClient.GetEnvironments.
func (c *Client) GetEnvironments(ctx context.Context) []giantswarm.Environment {
	environments, err := c.environments.List(ctx)

	return settleValue(c, "get_environments", environments, err, []giantswarm.Environment{})
}

// HasEnvironments implements giantswarm.EnvironmentsClient.HasEnvironments.
func (c *Client) HasEnvironments(ctx context.Context) bool {
	return len(c.GetEnvironments(ctx)) > 0
}

// HasEnvironment implements giantswarm.EnvironmentsClient.HasEnvironment.
func (c *Client) HasEnvironment(ctx context.Context, companyName, environmentName string) bool {
	exists, err := c.environments.Has(ctx, companyName, environmentName)

	return settleValue(c, "has_environment", exists, err, false)
}

// CreateEnvironment implements giantswarm.EnvironmentsClient.CreateEnvironment.
func (c *Client) CreateEnvironment(ctx context.Context, companyName, environmentName string) bool {
	return c.settle("create_environment", c.environments.Create(ctx, companyName, environmentName))
}

// DeleteEnvironment implements giantswarm.EnvironmentsClient.DeleteEnvironment.
func (c *Client) DeleteEnvironment(ctx context.Context, companyName, environmentName string) bool {
	return c.settle("delete_environment", c.environments.Delete(ctx, companyName, environmentName))
}

// GetAllApplications implements giantswarm.ApplicationsClient.GetAllApplications.
// Environments that fail are logged and skipped.
func (c *Client) GetAllApplications(ctx context.Context) []giantswarm.Application {
	applications, err := c.applications.ListAll(ctx)
	c.settle("get_all_applications", err)

	if applications == nil {
		return []giantswarm.Application{}
	}

	return applications
}

// GetApplications implements giantswarm.ApplicationsClient.GetApplications.
func (c *Client) GetApplications(ctx context.Context, companyName, environmentName string) []giantswarm.Application {
	applications, err := c.applications.List(ctx, companyName, environmentName)

	return settleValue(c, "get_applications", applications, err, []giantswarm.Application{})
}

// GetApplicationStatus implements giantswarm.ApplicationsClient.GetApplicationStatus.
func (c *Client) GetApplicationStatus(ctx context.Context, companyName, environmentName, applicationName string) giantswarm.ApplicationStatus {
	status, err := c.applications.Status(ctx, companyName, environmentName, applicationName)

	return settleValue(c, "get_application_status", status, err, giantswarm.ApplicationStatus{})
}

// StartApplication implements giantswarm.ApplicationsClient.StartApplication.
func (c *Client) StartApplication(ctx context.Context, companyName, environmentName, applicationName string) bool {
	return c.settle("start_application", c.applications.Start(ctx, companyName, environmentName, applicationName))
}

// StopApplication implements giantswarm.ApplicationsClient.StopApplication.
func (c *Client) StopApplication(ctx context.Context, companyName, environmentName, applicationName string) bool {
	return c.settle("stop_application", c.applications.Stop(ctx, companyName, environmentName, applicationName))
}

// ScaleApplicationUp implements giantswarm.ApplicationsClient.ScaleApplicationUp.
func (c *Client) ScaleApplicationUp(ctx context.Context, target giantswarm.ComponentRef) bool {
	return c.ScaleApplicationUpBy(ctx, target, constants.DefaultScaleInstanceCount)
}

// ScaleApplicationUpBy implements giantswarm.ApplicationsClient.ScaleApplicationUpBy.
func (c *Client) ScaleApplicationUpBy(ctx context.Context, target giantswarm.ComponentRef, count int) bool {
	return c.settle("scale_application_up", c.applications.ScaleUp(ctx, target, count))
}

// ScaleApplicationDown implements giantswarm.ApplicationsClient.ScaleApplicationDown.
func (c *Client) ScaleApplicationDown(ctx context.Context, target giantswarm.ComponentRef) bool {
	return c.ScaleApplicationDownBy(ctx, target, constants.DefaultScaleInstanceCount)
}

// ScaleApplicationDownBy implements giantswarm.ApplicationsClient.ScaleApplicationDownBy.
func (c *Client) ScaleApplicationDownBy(ctx context.Context, target giantswarm.ComponentRef, count int) bool {
	return c.settle("scale_application_down", c.applications.ScaleDown(ctx, target, count))
}

// GetInstanceStatistics implements giantswarm.InstancesClient.GetInstanceStatistics.
func (c *Client) GetInstanceStatistics(ctx context.Context, companyName, instanceID string) giantswarm.InstanceStatistics {
	stats, err := c.instances.Statistics(ctx, companyName, instanceID)

	return settleValue(c, "get_instance_statistics", stats, err, giantswarm.InstanceStatistics{})
}

// GetUser implements giantswarm.AccountClient.GetUser.
func (c *Client) GetUser(ctx context.Context) giantswarm.User {
	user, err := c.account.User(ctx)

	return settleValue(c, "get_user", user, err, giantswarm.User{})
}

// UpdateEmail implements giantswarm.AccountClient.UpdateEmail.
func (c *Client) UpdateEmail(ctx context.Context, email string) bool {
	return c.settle("update_email", c.account.UpdateEmail(ctx, email))
}

// UpdatePassword implements giantswarm.AccountClient.UpdatePassword.
func (c *Client) UpdatePassword(ctx context.Context, oldPassword, newPassword string) bool {
	return c.settle("update_password", c.account.UpdatePassword(ctx, oldPassword, newPassword))
}

// Ping implements giantswarm.ClusterClient.Ping.
func (c *Client) Ping(ctx context.Context) bool {
	return c.settle("ping", c.cluster.Ping(ctx))
}
