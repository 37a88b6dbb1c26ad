package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/service"
	"github.com/platefeed/backend/internal/testhelpers"
)

const testJWTSecret = "test-secret"

func TestIssueTokenSuccess(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, testJWTSecret, testhelpers.NewMemoryBlacklist())
	user := testhelpers.CreateTestUser(t, db, "alice")

	token, err := auth.IssueToken(context.Background(), user.Email, testhelpers.TestPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
}

func TestIssueTokenWrongPassword(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, testJWTSecret, testhelpers.NewMemoryBlacklist())
	user := testhelpers.CreateTestUser(t, db, "alice")

	_, err := auth.IssueToken(context.Background(), user.Email, "wrong")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestIssueTokenUnknownEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, testJWTSecret, testhelpers.NewMemoryBlacklist())

	_, err := auth.IssueToken(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRevokedTokenFailsValidation(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, testJWTSecret, testhelpers.NewMemoryBlacklist())
	user := testhelpers.CreateTestUser(t, db, "alice")

	token, err := auth.IssueToken(context.Background(), user.Email, testhelpers.TestPassword)
	require.NoError(t, err)

	require.NoError(t, auth.RevokeToken(context.Background(), token))

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, testJWTSecret, testhelpers.NewMemoryBlacklist())

	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "alice")

	other := service.NewAuthService(db, "other-secret", testhelpers.NewMemoryBlacklist())
	token, err := other.GenerateToken(user.ID)
	require.NoError(t, err)

	auth := service.NewAuthService(db, testJWTSecret, testhelpers.NewMemoryBlacklist())
	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}
