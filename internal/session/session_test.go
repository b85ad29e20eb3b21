package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/giantswarm/internal/session"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errExchange = errors.New("exchange failed")

type recordingPersister struct {
	mu     sync.Mutex
	tokens []string
	err    error
}

func (p *recordingPersister) UpdateToken(endpoint, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tokens = append(p.tokens, endpoint+"="+token)

	return p.err
}

func TestState_Login(t *testing.T) {
	t.Parallel()

	t.Run("stores exchanged token", func(t *testing.T) {
		t.Parallel()

		persister := &recordingPersister{}
		state := session.New("", session.WithPersister("https://api", persister))

		err := state.Login(context.Background(), func(context.Context) (string, error) {
			return "tok", nil
		})
		require.NoError(t, err)
		assert.True(t, state.IsAuthenticated())
		assert.Equal(t, "tok", state.Token())
		assert.Equal(t, []string{"https://api=tok"}, persister.tokens)
	})

	t.Run("already logged in", func(t *testing.T) {
		t.Parallel()

		state := session.New("existing")
		called := false

		err := state.Login(context.Background(), func(context.Context) (string, error) {
			called = true

			return "new", nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, giantswarm.ErrLogoutRequired)
		assert.False(t, called)
		assert.Equal(t, "existing", state.Token())
	})

	t.Run("exchange failure keeps session empty", func(t *testing.T) {
		t.Parallel()

		state := session.New("")

		err := state.Login(context.Background(), func(context.Context) (string, error) {
			return "", errExchange
		})
		require.ErrorIs(t, err, errExchange)
		assert.False(t, state.IsAuthenticated())
	})

	t.Run("concurrent logins exchange once", func(t *testing.T) {
		t.Parallel()

		state := session.New("")

		var (
			exchanges int32
			wg        sync.WaitGroup
		)

		for range 8 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_ = state.Login(context.Background(), func(context.Context) (string, error) {
					atomic.AddInt32(&exchanges, 1)

					return "tok", nil
				})
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(1), atomic.LoadInt32(&exchanges))
	})
}

func TestState_Logout(t *testing.T) {
	t.Parallel()

	t.Run("clears token", func(t *testing.T) {
		t.Parallel()

		persister := &recordingPersister{err: errExchange}
		state := session.New("tok", session.WithPersister("e", persister))

		err := state.Logout(context.Background(), func(context.Context) error { return nil })
		require.NoError(t, err)
		assert.False(t, state.IsAuthenticated())
		assert.Equal(t, []string{"e="}, persister.tokens)
	})

	t.Run("not logged in", func(t *testing.T) {
		t.Parallel()

		state := session.New("")

		err := state.Logout(context.Background(), func(context.Context) error {
			t.Fatal("revoke must not be called")

			return nil
		})
		assert.ErrorIs(t, err, giantswarm.ErrLoginRequired)
	})

	t.Run("revoke failure keeps token", func(t *testing.T) {
		t.Parallel()

		state := session.New("tok")

		err := state.Logout(context.Background(), func(context.Context) error { return errExchange })
		require.ErrorIs(t, err, errExchange)
		assert.Equal(t, "tok", state.Token())
	})
}

func TestState_SetToken(t *testing.T) {
	t.Parallel()

	state := session.New("")
	assert.ErrorIs(t, state.RequireAuth(), giantswarm.ErrLoginRequired)

	state.SetToken("restored")
	require.NoError(t, state.RequireAuth())

	state.SetToken("")
	assert.False(t, state.IsAuthenticated())
}
