package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestZoneServiceBranchLifecycle(t *testing.T) {
	zoneRepo := newFakeZoneRepo()
	branchRepo := newFakeBranchRepo()
	svc := NewZoneService(zoneRepo, branchRepo)
	ctx := context.Background()

	zone, err := svc.CreateZone(ctx, ZoneInput{Name: "North", Description: "northern region"})
	require.NoError(t, err)

	_, err = svc.CreateBranch(ctx, BranchInput{ZoneID: "missing", Name: "HQ"})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	branch, err := svc.CreateBranch(ctx, BranchInput{ZoneID: zone.ID, Name: "HQ", Address: "1 Main St"})
	require.NoError(t, err)
	assert.Equal(t, zone.ID, branch.ZoneID)

	branches, err := svc.ListBranches(ctx, &zone.ID)
	require.NoError(t, err)
	assert.Len(t, branches, 1)
}

func TestDeleteZoneWithBranchesRejected(t *testing.T) {
	zoneRepo := newFakeZoneRepo()
	svc := NewZoneService(zoneRepo, newFakeBranchRepo())
	ctx := context.Background()

	zone, err := svc.CreateZone(ctx, ZoneInput{Name: "South"})
	require.NoError(t, err)

	zoneRepo.branchCount[zone.ID] = 2
	err = svc.DeleteZone(ctx, zone.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DEPENDENCY_VIOLATION", domainErr.Code)

	zoneRepo.branchCount[zone.ID] = 0
	require.NoError(t, svc.DeleteZone(ctx, zone.ID))

	_, err = svc.GetZone(ctx, zone.ID)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCreateZoneRequiresName(t *testing.T) {
	svc := NewZoneService(newFakeZoneRepo(), newFakeBranchRepo())

	_, err := svc.CreateZone(context.Background(), ZoneInput{Name: "   "})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}
