package environments_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/internal/environments"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openStore(t *testing.T) *environments.Store {
	t.Helper()

	store, err := environments.Open(filepath.Join(t.TempDir(), "env.db"), zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestStore_Empty(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	names, err := store.AllForCompany(ctx, "acme")
	require.NoError(t, err)
	assert.Empty(t, names)

	has, err := store.Has(ctx, "acme", "prod")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStore_AddListRemove(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "zeta", "prod"))
	require.NoError(t, store.Add(ctx, "acme", "staging"))
	require.NoError(t, store.Add(ctx, "acme", "dev"))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []giantswarm.Environment{
		{Name: "dev", CompanyName: "acme"},
		{Name: "staging", CompanyName: "acme"},
		{Name: "prod", CompanyName: "zeta"},
	}, all)

	names, err := store.AllForCompany(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "staging"}, names)

	has, err := store.Has(ctx, "acme", "dev")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = store.Has(ctx, "zeta", "dev")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Remove(ctx, "acme", "dev"))

	names, err = store.AllForCompany(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"staging"}, names)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "acme", "dev"))
	require.NoError(t, store.Add(ctx, "acme", "prod"))
	require.NoError(t, store.Add(ctx, "zeta", "prod"))

	require.NoError(t, store.ClearCompany(ctx, "acme"))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []giantswarm.Environment{{Name: "prod", CompanyName: "zeta"}}, all)

	require.NoError(t, store.Clear(ctx))

	all, err = store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_Validation(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	require.ErrorIs(t, store.Add(ctx, "", "dev"), constants.ErrCompanyNameRequired)
	require.ErrorIs(t, store.Add(ctx, "acme", ""), constants.ErrEnvironmentNameRequired)
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "env.db")
	ctx := context.Background()

	store, err := environments.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, "acme", "prod"))
	require.NoError(t, store.Close())

	reopened, err := environments.Open(path, nil)
	require.NoError(t, err)

	defer func() { _ = reopened.Close() }()

	names, err := reopened.AllForCompany(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"prod"}, names)
}

func TestStore_InMemory(t *testing.T) {
	t.Parallel()

	store, err := environments.Open("", nil)
	require.NoError(t, err)

	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "acme", "prod"))

	has, err := store.Has(ctx, "acme", "prod")
	require.NoError(t, err)
	assert.True(t, has)

	other, err := environments.Open("", nil)
	require.NoError(t, err)

	defer func() { _ = other.Close() }()

	all, err := other.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "every in-memory store starts empty")
}
