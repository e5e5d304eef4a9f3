package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-tube-accounts/internal/logger"
)

func newSQLiteRepo(t *testing.T) UserRepository {
	t.Helper()
	db, err := NewConnectSQLite(context.Background(), ":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))

	return NewUserRepository(db, logger.Nop())
}

func TestSQLiteUserRepository_RoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, testUser())
	require.NoError(t, err)

	byName, err := repo.FindUserByUsernameOrEmail(ctx, "alice", "")
	require.NoError(t, err)
	byEmail, err := repo.FindUserByUsernameOrEmail(ctx, "", "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, byName.UserID, byEmail.UserID)
	assert.Equal(t, "$2a$10$hash", byName.PasswordHash)
	assert.Nil(t, byName.RefreshToken)

	view, err := repo.FindUserViewByID(ctx, byName.UserID)
	require.NoError(t, err)
	assert.Equal(t, byName.View(), view)
}

func TestSQLiteUserRepository_DuplicateUsername(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, testUser())
	require.NoError(t, err)

	dup := testUser()
	dup.UserID = "0190f3c4-7d2e-7000-8000-000000000002"
	dup.Email = "other@x.io"
	_, err = repo.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSQLiteUserRepository_RefreshTokenLifecycle(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, testUser())
	require.NoError(t, err)

	first := "digest-1"
	require.NoError(t, repo.SetRefreshToken(ctx, user.UserID, &first))

	stored, err := repo.FindUserByID(ctx, user.UserID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, first, *stored.RefreshToken)

	require.NoError(t, repo.SwapRefreshToken(ctx, user.UserID, "digest-1", "digest-2"))
	assert.ErrorIs(t, repo.SwapRefreshToken(ctx, user.UserID, "digest-1", "digest-3"), ErrRefreshTokenMismatch)

	require.NoError(t, repo.SetRefreshToken(ctx, user.UserID, nil))
	stored, err = repo.FindUserByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	assert.ErrorIs(t, repo.SwapRefreshToken(ctx, user.UserID, "digest-2", "digest-4"), ErrRefreshTokenMismatch)
}

// TestSQLiteUserRepository_ConcurrentSwap verifies that of several swaps
// from the same expected digest exactly one wins.
func TestSQLiteUserRepository_ConcurrentSwap(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, testUser())
	require.NoError(t, err)
	start := "digest-0"
	require.NoError(t, repo.SetRefreshToken(ctx, user.UserID, &start))

	const contenders = 8
	results := make(chan error, contenders)
	var wg sync.WaitGroup
	for i := range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.SwapRefreshToken(ctx, user.UserID, start, "next-"+string(rune('a'+i)))
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrRefreshTokenMismatch)
	}
	assert.Equal(t, 1, wins)
}
