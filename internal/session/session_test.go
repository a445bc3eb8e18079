package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotLabel(t *testing.T) {
	assert.Equal(t, "mario.rossi", (&Snapshot{Subject: "mario.rossi@example.com"}).Label())
	assert.Equal(t, "mario", (&Snapshot{Subject: "mario"}).Label())
	assert.Equal(t, "", (&Snapshot{}).Label())
}

func TestProvider(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("EmptyStore", func(t *testing.T) {
		p := NewProvider(NewMemoryStore(), &logger)
		require.NoError(t, p.RefreshFromStorage(ctx))

		assert.False(t, p.IsAuthenticated())
		assert.False(t, p.IsAdmin())
		_, ok := p.CurrentUserID()
		assert.False(t, ok)
		assert.Empty(t, p.CurrentUserLabel())
	})

	t.Run("EstablishAndRead", func(t *testing.T) {
		p := NewProvider(NewMemoryStore(), &logger)
		require.NoError(t, p.Establish(ctx, Snapshot{
			UserID:    42,
			Subject:   "cliente@example.com",
			Role:      "CUSTOMER",
			ExpiresAt: time.Now().Add(time.Hour),
		}))

		assert.True(t, p.IsAuthenticated())
		assert.False(t, p.IsAdmin())
		id, ok := p.CurrentUserID()
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
		assert.Equal(t, "cliente", p.CurrentUserLabel())
	})

	t.Run("AdminRole", func(t *testing.T) {
		p := NewProvider(NewMemoryStore(), &logger)
		require.NoError(t, p.Establish(ctx, Snapshot{UserID: 1, Role: RoleAdmin}))
		assert.True(t, p.IsAdmin())
	})

	t.Run("ExpiryIsChecked", func(t *testing.T) {
		p := NewProvider(NewMemoryStore(), &logger)
		require.NoError(t, p.Establish(ctx, Snapshot{
			UserID:    42,
			ExpiresAt: time.Now().Add(time.Minute),
		}))
		require.True(t, p.IsAuthenticated())

		p.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		assert.False(t, p.IsAuthenticated())
		_, ok := p.CurrentUserID()
		assert.False(t, ok)
	})

	t.Run("LogoutClearsStore", func(t *testing.T) {
		store := NewMemoryStore()
		p := NewProvider(store, &logger)
		require.NoError(t, p.Establish(ctx, Snapshot{UserID: 42}))

		p.Logout()

		assert.False(t, p.IsAuthenticated())
		snap, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, snap)
	})

	t.Run("RefreshDiscardsExpiredPersistedSession", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Save(ctx, &Snapshot{
			UserID:    42,
			ExpiresAt: time.Now().Add(-time.Minute),
		}))

		p := NewProvider(store, &logger)
		require.NoError(t, p.RefreshFromStorage(ctx))

		assert.False(t, p.IsAuthenticated())
		snap, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, snap)
	})
}

func TestRedisStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "figaro:session", time.Hour)
	ctx := context.Background()

	t.Run("SaveAndLoad", func(t *testing.T) {
		snap := &Snapshot{UserID: 42, Subject: "cliente@example.com", Role: "CUSTOMER"}
		require.NoError(t, store.Save(ctx, snap))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, snap.UserID, got.UserID)
		assert.Equal(t, snap.Subject, got.Subject)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("TTLApplies", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &Snapshot{UserID: 7}))
		s.FastForward(2 * time.Hour)

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("NilClient", func(t *testing.T) {
		broken := NewRedisStore(nil, "k", time.Hour)
		_, err := broken.Load(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})

	t.Run("ProviderOverRedis", func(t *testing.T) {
		p := NewProvider(store, zerologNop())
		require.NoError(t, p.Establish(ctx, Snapshot{UserID: 9, Role: RoleAdmin}))

		other := NewProvider(store, zerologNop())
		require.NoError(t, other.RefreshFromStorage(ctx))
		assert.True(t, other.IsAdmin())
	})
}

func zerologNop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
