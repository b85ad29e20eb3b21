package client

import (
	"context"
	"sync"

	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// EnvironmentsClient reads and writes the local environment store. None
// of its operations touch the network.
type EnvironmentsClient struct {
	store giantswarm.EnvironmentStore

	// createMu makes the check and insert of Create one step.
	createMu sync.Mutex
}

// newEnvironmentsClient creates a new environments client.
func newEnvironmentsClient(store giantswarm.EnvironmentStore) *EnvironmentsClient {
	return &EnvironmentsClient{store: store}
}

// List returns every remembered environment.
func (c *EnvironmentsClient) List(ctx context.Context) ([]giantswarm.Environment, error) {
	return c.store.All(ctx)
}

// ListForCompany returns the environment names of one company.
func (c *EnvironmentsClient) ListForCompany(ctx context.Context, companyName string) ([]string, error) {
	return c.store.AllForCompany(ctx, companyName)
}

// Has reports whether the environment is remembered.
func (c *EnvironmentsClient) Has(ctx context.Context, companyName, environmentName string) (bool, error) {
	return c.store.Has(ctx, companyName, environmentName)
}

// Create remembers an environment. Creating a known environment is a
// no-op.
func (c *EnvironmentsClient) Create(ctx context.Context, companyName, environmentName string) error {
	c.createMu.Lock()
	defer c.createMu.Unlock()

	exists, err := c.store.Has(ctx, companyName, environmentName)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return c.store.Add(ctx, companyName, environmentName)
}

// Delete forgets an environment.
func (c *EnvironmentsClient) Delete(ctx context.Context, companyName, environmentName string) error {
	return c.store.Remove(ctx, companyName, environmentName)
}
