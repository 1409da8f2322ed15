package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func principalWithRole(t *testing.T, repo *fakeUserRepo, role domain.Role) *auth.Principal {
	t.Helper()
	user := &domain.User{Name: "actor", Email: string(role) + "@example.com", Role: role, Active: true}
	require.NoError(t, repo.Create(context.Background(), user))
	return &auth.Principal{User: user, Role: role}
}

func TestUserServiceCreateDefaultsToCustomer(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, 4)
	manager := principalWithRole(t, repo, domain.RoleManager)

	user, err := svc.Create(context.Background(), manager, UserCreateInput{
		Name: "Jordan", Email: "Jordan@Example.com", Password: "s3cret-s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, "jordan@example.com", user.Email)
	assert.True(t, user.Active)
	assert.NotEqual(t, "s3cret-s3cret", user.PasswordHash)
}

func TestUserServiceOnlyAdminGrantsAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, 4)
	manager := principalWithRole(t, repo, domain.RoleManager)
	admin := principalWithRole(t, repo, domain.RoleAdmin)
	ctx := context.Background()

	_, err := svc.Create(ctx, manager, UserCreateInput{
		Name: "Sam", Email: "sam@example.com", Password: "password1", Role: domain.RoleAdmin,
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	created, err := svc.Create(ctx, admin, UserCreateInput{
		Name: "Sam", Email: "sam@example.com", Password: "password1", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, created.Role)

	// Managers may not demote admins either.
	agent := domain.RoleAgent
	_, err = svc.Update(ctx, manager, created.ID, UserUpdateInput{Role: &agent})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestUserServiceRejectsSelfDelete(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, 4)
	admin := principalWithRole(t, repo, domain.RoleAdmin)
	ctx := context.Background()

	err := svc.Delete(ctx, admin, admin.User.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	other, err := svc.Create(ctx, admin, UserCreateInput{
		Name: "Riley", Email: "riley@example.com", Password: "password1", Role: domain.RoleAgent,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, admin, other.ID))

	_, err = svc.Get(ctx, other.ID)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestUserServiceInvalidRoleRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, 4)
	admin := principalWithRole(t, repo, domain.RoleAdmin)

	_, err := svc.Create(context.Background(), admin, UserCreateInput{
		Name: "Drew", Email: "drew@example.com", Password: "password1", Role: "supervisor",
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}
