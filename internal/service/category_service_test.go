package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestCategoryServiceCRUD(t *testing.T) {
	categoryRepo := newFakeCategoryRepo()
	slaRepo := newFakeSLARepo()
	svc := NewCategoryService(categoryRepo, slaRepo)
	ctx := context.Background()

	sla := &domain.SLA{Name: "Silver", Priority: domain.TicketPriorityMedium, ResponseMinutes: 60, ResolutionMinutes: 480}
	require.NoError(t, slaRepo.Create(ctx, sla))

	category, err := svc.Create(ctx, CategoryInput{Name: "Hardware", Color: "#ff0000", SLAID: &sla.ID})
	require.NoError(t, err)
	require.NotNil(t, category.SLAID)
	assert.True(t, category.Active)

	fetched, err := svc.Get(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hardware", fetched.Name)
	assert.Equal(t, sla.ID, *fetched.SLAID)

	inactive := false
	updated, err := svc.Update(ctx, category.ID, CategoryInput{Name: "Hardware", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	require.NotNil(t, updated.SLAID)

	none := ""
	updated, err = svc.Update(ctx, category.ID, CategoryInput{SLAID: &none})
	require.NoError(t, err)
	assert.Nil(t, updated.SLAID)
}

func TestCategoryServiceRejectsUnknownSLA(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), newFakeSLARepo())

	missing := "no-such-sla"
	_, err := svc.Create(context.Background(), CategoryInput{Name: "Software", SLAID: &missing})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCategoryServiceDeleteGuard(t *testing.T) {
	categoryRepo := newFakeCategoryRepo()
	svc := NewCategoryService(categoryRepo, newFakeSLARepo())
	ctx := context.Background()

	category, err := svc.Create(ctx, CategoryInput{Name: "Billing"})
	require.NoError(t, err)

	categoryRepo.ticketCount[category.ID] = 5
	err = svc.Delete(ctx, category.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DEPENDENCY_VIOLATION", domainErr.Code)

	categoryRepo.ticketCount[category.ID] = 0
	require.NoError(t, svc.Delete(ctx, category.ID))
}
