//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sessiond/sessiond/internal/model"
	repo "github.com/sessiond/sessiond/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "sessiond_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/sessiond_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	sessions := repo.NewSessionRepository(conn)

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := model.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("user_repository", func(t *testing.T) {
		saved, err := users.Create(ctx, user)
		require.NoError(t, err)
		require.Equal(t, user.ID, saved.ID)

		byName, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, user.ID, byName.ID)

		byID, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", byID.Username)

		_, err = users.Create(ctx, model.User{
			ID: uuid.New(), Username: "alice", Email: "dup@x.com",
			PasswordHash: "x", CreatedAt: now, UpdatedAt: now,
		})
		require.ErrorIs(t, err, model.ErrUsernameTaken)

		_, err = users.GetByUsername(ctx, "ghost")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("session_repository", func(t *testing.T) {
		live := model.Session{ID: "live", UserID: user.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, sessions.Create(ctx, live))

		resolved, err := sessions.Resolve(ctx, "live", time.Now())
		require.NoError(t, err)
		require.Equal(t, user.ID, resolved.UserID)

		expired := model.Session{ID: "expired", UserID: user.ID, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
		require.NoError(t, sessions.Create(ctx, expired))

		_, err = sessions.Resolve(ctx, "expired", time.Now())
		require.ErrorIs(t, err, model.ErrSessionExpired)
		_, err = sessions.Resolve(ctx, "expired", time.Now())
		require.ErrorIs(t, err, model.ErrNotFound)

		require.NoError(t, sessions.Delete(ctx, "live"))
		require.NoError(t, sessions.Delete(ctx, "live"))
		_, err = sessions.Resolve(ctx, "live", time.Now())
		require.ErrorIs(t, err, model.ErrNotFound)

		stale := model.Session{ID: "stale", UserID: user.ID, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
		require.NoError(t, sessions.Create(ctx, stale))
		removed, err := sessions.DeleteExpired(ctx, time.Now())
		require.NoError(t, err)
		require.Equal(t, int64(1), removed)
	})
}
