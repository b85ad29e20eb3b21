package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// CompaniesClient manages companies and their members.
type CompaniesClient struct {
	core *core
}

// newCompaniesClient creates a new companies client.
func newCompaniesClient(shared *core) *CompaniesClient {
	return &CompaniesClient{core: shared}
}

// List returns the names of the companies the user is a member of.
func (c *CompaniesClient) List(ctx context.Context) ([]string, error) {
	data, err := c.core.read(ctx, constants.CacheKeyCompanies, resourcePath("user", "me", "memberships"))
	if err != nil {
		return nil, err
	}

	return stringsOf(data.Array()), nil
}

// Create creates a company.
func (c *CompaniesClient) Create(ctx context.Context, companyName string) error {
	_, err := c.core.call(ctx, http.MethodPost, resourcePath("company"),
		map[string]string{"company_id": encodeSecret(companyName)}, giantswarm.StatusCreated)
	if err != nil {
		return err
	}

	c.core.pipeline.Invalidate(ctx, constants.CacheKeyCompanies)

	return nil
}

// Delete deletes a company and forgets its environments.
func (c *CompaniesClient) Delete(ctx context.Context, companyName string) error {
	_, err := c.core.call(ctx, http.MethodDelete, resourcePath("company", companyName), nil, giantswarm.StatusDeleted)
	if err != nil {
		return err
	}

	c.core.pipeline.Invalidate(ctx,
		constants.CacheKeyCompanies,
		cacheKey(constants.CacheKeyCompanyUsers, companyName),
	)

	err = c.core.store.ClearCompany(ctx, companyName)
	if err != nil {
		c.core.logger.Warn("failed to forget environments of deleted company", map[string]interface{}{
			"company": companyName,
			"error":   err.Error(),
		})
	}

	return nil
}

// Members returns the usernames of a company's members.
func (c *CompaniesClient) Members(ctx context.Context, companyName string) ([]string, error) {
	data, err := c.core.read(ctx,
		cacheKey(constants.CacheKeyCompanyUsers, companyName),
		resourcePath("company", companyName))
	if err != nil {
		return nil, err
	}

	return stringsOf(data.Get("members").Array()), nil
}

// AddMember adds a user to a company.
func (c *CompaniesClient) AddMember(ctx context.Context, companyName, username string) error {
	return c.changeMembers(ctx, companyName, username, "add")
}

// RemoveMember removes a user from a company.
func (c *CompaniesClient) RemoveMember(ctx context.Context, companyName, username string) error {
	return c.changeMembers(ctx, companyName, username, "remove")
}

func (c *CompaniesClient) changeMembers(ctx context.Context, companyName, username, action string) error {
	_, err := c.core.call(ctx, http.MethodPost, resourcePath("company", companyName, "members", action),
		map[string]string{"username": encodeSecret(username)}, giantswarm.StatusUpdated)
	if err != nil {
		return err
	}

	c.core.pipeline.Invalidate(ctx, cacheKey(constants.CacheKeyCompanyUsers, companyName))

	return nil
}
