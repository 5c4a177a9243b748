package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a throwaway Redis and returns a client for it. Tests
// are skipped when no container runtime is available.
func setupRedis(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestLinkStoreConsumeOnce(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()
	links := NewLinkStore(rdb)
	now := time.Now()

	link := domain.LoginLink{
		ID:        "link-1",
		UserID:    "user-1",
		Email:     "ada@example.com",
		TokenHash: "fp-1",
		Type:      domain.LinkTypeMagicLink,
		Method:    domain.LoginMethodStaffID,
		ExpiresAt: now.Add(time.Minute),
		CreatedAt: now,
	}
	require.NoError(t, links.CreateLink(ctx, link))
	require.ErrorIs(t, links.CreateLink(ctx, link), store.ErrAlreadyExists)

	got, err := links.ConsumeLink(ctx, "fp-1", now)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.UserID)
	require.Equal(t, domain.LoginMethodStaffID, got.Method)

	_, err = links.ConsumeLink(ctx, "fp-1", now)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLinkStoreRejectsExpired(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()
	links := NewLinkStore(rdb)
	now := time.Now()

	require.NoError(t, links.CreateLink(ctx, domain.LoginLink{
		ID:        "link-2",
		UserID:    "user-2",
		Email:     "grace@example.com",
		TokenHash: "fp-2",
		Type:      domain.LinkTypeRecovery,
		ExpiresAt: now.Add(time.Minute),
		CreatedAt: now,
	}))

	// A clock past expiry loses the race with the key TTL either way
	_, err := links.ConsumeLink(ctx, "fp-2", now.Add(2*time.Minute))
	require.ErrorIs(t, err, store.ErrNotFound)
}
