package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// AuthClient performs session transitions against the API.
type AuthClient struct {
	core *core
}

// newAuthClient creates a new auth client.
func newAuthClient(shared *core) *AuthClient {
	return &AuthClient{core: shared}
}

// Login exchanges credentials for a session token. The cache is cleared
// so no response of a previous session is replayed.
func (c *AuthClient) Login(ctx context.Context, email, password string) error {
	err := c.core.session.Login(ctx, func(ctx context.Context) (string, error) {
		data, err := c.core.send(ctx, http.MethodPost, resourcePath("user", email, "login"),
			secretBody{"password": encodeSecret(password)}, giantswarm.StatusSuccess)
		if err != nil {
			return "", err
		}

		token := data.Get("Id").String()
		if token == "" {
			return "", constants.ErrTokenMissing
		}

		return token, nil
	})
	if err != nil {
		return err
	}

	c.core.pipeline.ClearCache(ctx)

	return nil
}

// Logout revokes the session token and clears the cache.
func (c *AuthClient) Logout(ctx context.Context) error {
	err := c.core.session.Logout(ctx, func(ctx context.Context) error {
		_, err := c.core.send(ctx, http.MethodPost, resourcePath("token", "logout"), nil, giantswarm.StatusSuccess)

		return err
	})
	if err != nil {
		return err
	}

	c.core.pipeline.ClearCache(ctx)

	return nil
}
