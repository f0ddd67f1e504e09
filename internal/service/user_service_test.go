package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelocd/estate-service/internal/auth"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

func newUserFixture(t *testing.T) (*UserService, model.Principal) {
	t.Helper()

	database := testDB(t)
	principal := adminPrincipal(t, database)
	svc := NewUserService(
		repository.NewUserRepository(database),
		repository.NewActivityRepository(database),
		auth.NewIssuer("test-secret", time.Hour),
	)
	return svc, principal
}

func TestRegisterAndLogin(t *testing.T) {
	svc, admin := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterUserInput{
		Username:  "clerk",
		Password:  "s3cret",
		IsAgent:   true,
		Principal: admin,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.True(t, user.IsAgent)

	result, err := svc.Login(ctx, "clerk", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)

	_, err = svc.Login(ctx, "clerk", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRules(t *testing.T) {
	svc, admin := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterUserInput{
		Username:  "clerk",
		Password:  "pw",
		Principal: model.Principal{UserID: 7, Role: model.RoleUser},
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Register(ctx, RegisterUserInput{Username: "x", Principal: admin})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, RegisterUserInput{Username: "clerk", Password: "pw", Principal: admin})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterUserInput{Username: "clerk", Password: "pw", Principal: admin})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUserDeleteRules(t *testing.T) {
	svc, admin := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterUserInput{
		Username: "clerk", Password: "pw", Principal: admin,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, admin, admin.UserID), ErrInvalidInput)
	require.NoError(t, svc.Delete(ctx, admin, user.ID))
	assert.ErrorIs(t, svc.Delete(ctx, admin, user.ID), ErrNotFound)
}

func TestBootstrapSeedsFirstAdmin(t *testing.T) {
	database := testDB(t)
	svc := NewUserService(
		repository.NewUserRepository(database),
		repository.NewActivityRepository(database),
		auth.NewIssuer("test-secret", time.Hour),
	)
	ctx := context.Background()

	// An empty table with no configured password must fail loudly
	// instead of leaving the deployment without a login.
	_, err := svc.Bootstrap(ctx, "admin", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	seeded, err := svc.Bootstrap(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.True(t, seeded)

	result, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, result.User.Role)

	seeded, err = svc.Bootstrap(ctx, "admin", "other")
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestGetByUsername(t *testing.T) {
	svc, admin := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterUserInput{
		Username: "clerk", Password: "s3cret", Principal: admin,
	})
	require.NoError(t, err)

	found, err := svc.GetByUsername(ctx, admin, "clerk")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = svc.GetByUsername(ctx, admin, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	clerk := model.Principal{UserID: user.ID, Username: "clerk", Role: model.RoleUser}
	self, err := svc.GetByUsername(ctx, clerk, "clerk")
	require.NoError(t, err)
	assert.Equal(t, user.ID, self.ID)

	_, err = svc.GetByUsername(ctx, clerk, admin.Username)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
