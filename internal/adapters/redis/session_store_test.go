package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/eduride/eduride-ui/internal/domain/auth"
	"github.com/eduride/eduride-ui/internal/testutil"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:          "test-session-1",
		Token:       "bearer-token",
		UserID:      "42",
		DisplayName: "Green Valley School",
		Email:       "school@example.com",
		Role:        domainauth.RoleSchool,
		ExpiresAt:   time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, store.Save(ctx, session))

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.Token, retrieved.Token)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.Role, retrieved.Role)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)
	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_DeleteRemovesWholeRecord(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-2",
		Token:     "t1",
		Role:      domainauth.RoleHelper,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	// Token, profile, and role are gone together; no partial clear.
	_, err := store.Get(ctx, session.ID)
	assert.Equal(t, ErrNotFound, err)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(ctx, session.ID))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_SaveValidation(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{Token: "t1"})
	assert.Error(t, err)

	expired := domainauth.Session{ID: "x", Token: "t1", ExpiresAt: time.Now().Add(-time.Minute)}
	assert.Error(t, store.Save(ctx, expired))
}

func TestSessionStore_NoExpiryFallsBackToDefaultTTL(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStoreWithPrefix(client, "sess-ttl:")
	ctx := context.Background()

	sess := domainauth.Session{ID: "ttl-1", Token: "t1", Role: domainauth.RoleDriver}
	require.NoError(t, store.Save(ctx, sess))

	ttl, err := client.TTL(ctx, "sess-ttl:ttl-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, DefaultSessionTTL)
}
