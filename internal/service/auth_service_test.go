package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuta/auction-draft-backend/internal/repository/postgres"
	"github.com/yuta/auction-draft-backend/internal/service"
	"github.com/yuta/auction-draft-backend/internal/testutil"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos.User, testutil.TestConfig())
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "yuki",
		Password:    "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "yuki", result.User.DisplayName)

	// Duplicate display name is rejected
	_, err = authService.Register(ctx, service.RegisterInput{
		DisplayName: "yuki",
		Password:    "another-password",
	})
	assert.ErrorIs(t, err, service.ErrDisplayNameExists)

	// Login with the right password
	loggedIn, err := authService.Login(ctx, service.LoginInput{
		DisplayName: "yuki",
		Password:    "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, loggedIn.User.ID)

	// Wrong password
	_, err = authService.Login(ctx, service.LoginInput{
		DisplayName: "yuki",
		Password:    "wrong",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	// Unknown user looks identical to a wrong password
	_, err = authService.Login(ctx, service.LoginInput{
		DisplayName: "nobody",
		Password:    "secret-password",
	})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	authService := service.NewAuthService(repos.User, testutil.TestConfig())
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "tokenuser",
		Password:    "secret-password",
	})
	require.NoError(t, err)

	claims, err := authService.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), (*claims)["sub"])
	assert.Equal(t, "tokenuser", (*claims)["name"])

	_, err = authService.ValidateToken("not-a-token")
	assert.Error(t, err)
}
