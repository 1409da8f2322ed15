package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
		},
	}
}

func TestRegisterForcesCustomerRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, nil)

	user, token, _, err := svc.Register(context.Background(), "Jules", "Jules@Example.COM", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, "jules@example.com", user.Email)
	assert.True(t, user.Active)
	assert.NotEmpty(t, token)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, nil)

	_, _, _, err := svc.Register(context.Background(), "Jules", "jules@example.com", "short")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Jules", "jules@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Impostor", "JULES@example.com", "otherpassword")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestLoginRejectsBadCredentialsAndInactive(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, nil)
	ctx := context.Background()

	registered, _, _, err := svc.Register(ctx, "Jules", "jules@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "jules@example.com", "wrong")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)

	user, _, _, err := svc.Login(ctx, "jules@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	stored, err := users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	stored.Active = false
	require.NoError(t, users.Update(ctx, stored))

	_, _, _, err = svc.Login(ctx, "jules@example.com", "hunter2hunter2")
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, nil)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Jules", "jules@example.com", "hunter2hunter2")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong", "newpassword1")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "hunter2hunter2", "newpassword1"))

	_, _, _, err = svc.Login(ctx, "jules@example.com", "newpassword1")
	require.NoError(t, err)
}
