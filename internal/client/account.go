package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// AccountClient manages the logged in user's account.
type AccountClient struct {
	core *core
}

func newAccountClient(shared *core) *AccountClient {
	return &AccountClient{core: shared}
}

// User returns the logged in user.
func (c *AccountClient) User(ctx context.Context) (giantswarm.User, error) {
	data, err := c.core.read(ctx, constants.CacheKeyUser, resourcePath("user", "me"))
	if err != nil {
		return giantswarm.User{}, err
	}

	return giantswarm.User{
		Name:  data.Get("username").String(),
		Email: data.Get("email").String(),
	}, nil
}

// UpdateEmail replaces the user's email address. The current address is
// read first because the API requires it.
func (c *AccountClient) UpdateEmail(ctx context.Context, email string) error {
	user, err := c.User(ctx)
	if err != nil {
		return err
	}

	_, err = c.core.call(ctx, http.MethodPost, resourcePath("user", "me", "email", "update"),
		map[string]string{"old_email": user.Email, "new_email": email}, giantswarm.StatusUpdated)
	if err != nil {
		return err
	}

	c.core.pipeline.Invalidate(ctx, constants.CacheKeyUser)

	return nil
}

// UpdatePassword replaces the user's password.
func (c *AccountClient) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := c.core.call(ctx, http.MethodPost, resourcePath("user", "me", "password", "update"),
		secretBody{
			"old_password": encodeSecret(oldPassword),
			"new_password": encodeSecret(newPassword),
		}, giantswarm.StatusUpdated)

	return err
}
