package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/testhelpers"
	"github.com/platefeed/backend/internal/types"
)

func registerRequest(username string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "s3cure-pass",
	}
}

func TestRegisterUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)

	profile, err := users.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.False(t, profile.IsSubscribed)
	assert.NotZero(t, profile.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)

	_, err := users.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	dup := registerRequest("alice2")
	dup.Email = "alice@example.com"
	_, err = users.Register(context.Background(), dup)
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)
	auth := service.NewAuthService(db, testJWTSecret, testhelpers.NewMemoryBlacklist())

	profile, err := users.Register(context.Background(), registerRequest("alice"))
	require.NoError(t, err)

	// The stored credential must verify through the auth path
	_, err = auth.IssueToken(context.Background(), profile.Email, "s3cure-pass")
	assert.NoError(t, err)
}

func TestGetUserSubscriptionFlag(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)
	follows := service.NewFollowService(db)

	reader := testhelpers.CreateTestUser(t, db, "reader")
	author := testhelpers.CreateTestUser(t, db, "author")

	_, err := follows.Follow(context.Background(), reader.ID, author.ID, nil)
	require.NoError(t, err)

	seen, err := users.Get(context.Background(), author.ID, &reader.ID)
	require.NoError(t, err)
	assert.True(t, seen.IsSubscribed)

	anon, err := users.Get(context.Background(), author.ID, nil)
	require.NoError(t, err)
	assert.False(t, anon.IsSubscribed)
}

func TestGetUserNotFound(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)

	_, err := users.Get(context.Background(), 999, nil)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)

	testhelpers.CreateTestUser(t, db, "alice")
	testhelpers.CreateTestUser(t, db, "bob")
	testhelpers.CreateTestUser(t, db, "carol")

	page, total, err := users.List(context.Background(), nil, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)
}

func TestSetPassword(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	users := service.NewUserService(db)
	auth := service.NewAuthService(db, testJWTSecret, testhelpers.NewMemoryBlacklist())
	user := testhelpers.CreateTestUser(t, db, "alice")

	// Wrong current password is rejected
	err := users.SetPassword(context.Background(), user.ID, "wrong", "new-pass")
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))

	require.NoError(t, users.SetPassword(context.Background(), user.ID, testhelpers.TestPassword, "new-pass"))

	// Old credential no longer works, new one does
	_, err = auth.IssueToken(context.Background(), user.Email, testhelpers.TestPassword)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = auth.IssueToken(context.Background(), user.Email, "new-pass")
	assert.NoError(t, err)
}
