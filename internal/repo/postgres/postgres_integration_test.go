//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/geocoder89/mesto/internal/db"
	"github.com/geocoder89/mesto/internal/domain"
	"github.com/geocoder89/mesto/internal/domain/card"
	"github.com/geocoder89/mesto/internal/domain/ids"
	"github.com/geocoder89/mesto/internal/domain/user"
	"github.com/geocoder89/mesto/internal/repo/postgres"
)

func setupPostgres(t *testing.T) (*postgres.UsersRepo, *postgres.CardsRepo) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("mesto_test"),
		tcpostgres.WithUsername("mesto"),
		tcpostgres.WithPassword("mesto"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := db.NewPool(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	m, err := db.NewMigrator(pool)
	require.NoError(t, err)
	require.NoError(t, m.Up(ctx))
	require.NoError(t, m.Close())

	return postgres.NewUsersRepo(pool, nil), postgres.NewCardsRepo(pool, nil)
}

func TestPostgres_UniqueEmail(t *testing.T) {
	users, _ := setupPostgres(t)
	ctx := context.Background()

	params := user.CreateParams{Email: "a@b.io", PasswordHash: "h"}.WithDefaults()

	_, err := users.Create(ctx, params)
	require.NoError(t, err)

	_, err = users.Create(ctx, params)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPostgres_ConcurrentLikesKeepSetSemantics(t *testing.T) {
	_, cards := setupPostgres(t)
	ctx := context.Background()

	owner := ids.New()
	c, err := cards.Create(ctx, card.CreateParams{Name: "Baikal", Link: "https://x.io/b.jpg", Owner: owner})
	require.NoError(t, err)

	likers := []string{ids.New(), ids.New(), ids.New()}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for _, liker := range likers {
			wg.Add(1)
			go func(liker string) {
				defer wg.Done()
				_, err := cards.AddLike(ctx, c.ID, liker)
				assert.NoError(t, err)
			}(liker)
		}
	}
	wg.Wait()

	got, err := cards.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, likers, got.Likes)

	got, err = cards.RemoveLike(ctx, c.ID, likers[0])
	require.NoError(t, err)
	assert.ElementsMatch(t, likers[1:], got.Likes)
}

func TestPostgres_DeleteOwned(t *testing.T) {
	_, cards := setupPostgres(t)
	ctx := context.Background()

	owner, other := ids.New(), ids.New()
	c, err := cards.Create(ctx, card.CreateParams{Name: "Baikal", Link: "https://x.io/b.jpg", Owner: owner})
	require.NoError(t, err)

	require.ErrorIs(t, cards.DeleteOwned(ctx, c.ID, other), domain.ErrNotOwner)
	require.NoError(t, cards.DeleteOwned(ctx, c.ID, owner))
	require.ErrorIs(t, cards.DeleteOwned(ctx, c.ID, owner), domain.ErrNotFound)
}
