package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// ZoneService manages zones and their branches.
type ZoneService struct {
	zones    repository.ZoneRepository
	branches repository.BranchRepository
}

// NewZoneService builds the service.
func NewZoneService(zones repository.ZoneRepository, branches repository.BranchRepository) *ZoneService {
	return &ZoneService{zones: zones, branches: branches}
}

// ZoneInput describes zone payloads.
type ZoneInput struct {
	Name        string
	Description string
}

// BranchInput describes branch payloads.
type BranchInput struct {
	ZoneID  string
	Name    string
	Address string
}

// CreateZone stores a new zone.
func (s *ZoneService) CreateZone(ctx context.Context, input ZoneInput) (*domain.Zone, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	zone := &domain.Zone{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.zones.Create(ctx, zone); err != nil {
		return nil, apperrors.MapError(err)
	}
	return zone, nil
}

// UpdateZone replaces zone fields.
func (s *ZoneService) UpdateZone(ctx context.Context, id string, input ZoneInput) (*domain.Zone, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	zone, err := s.zones.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("zone", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	zone.Name = strings.TrimSpace(input.Name)
	zone.Description = strings.TrimSpace(input.Description)
	if err := s.zones.Update(ctx, zone); err != nil {
		return nil, apperrors.MapError(err)
	}
	return zone, nil
}

// DeleteZone removes a zone unless branches still reference it.
func (s *ZoneService) DeleteZone(ctx context.Context, id string) error {
	count, err := s.zones.CountBranches(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewDependencyError("zone has branches; delete or move them first", map[string]any{
			"branches": count,
		})
	}
	if err := s.zones.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("zone", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetZone fetches one zone.
func (s *ZoneService) GetZone(ctx context.Context, id string) (*domain.Zone, error) {
	zone, err := s.zones.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("zone", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return zone, nil
}

// ListZones returns all zones.
func (s *ZoneService) ListZones(ctx context.Context) ([]domain.Zone, error) {
	zones, err := s.zones.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return zones, nil
}

// CreateBranch stores a new branch under an existing zone.
func (s *ZoneService) CreateBranch(ctx context.Context, input BranchInput) (*domain.Branch, error) {
	if strings.TrimSpace(input.Name) == "" || input.ZoneID == "" {
		return nil, apperrors.NewValidationError("zoneId and name required", nil)
	}
	if _, err := s.zones.GetByID(ctx, input.ZoneID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("zone", map[string]any{"id": input.ZoneID})
		}
		return nil, apperrors.MapError(err)
	}
	branch := &domain.Branch{
		ZoneID:  input.ZoneID,
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, apperrors.MapError(err)
	}
	return branch, nil
}

// UpdateBranch replaces branch fields.
func (s *ZoneService) UpdateBranch(ctx context.Context, id string, input BranchInput) (*domain.Branch, error) {
	branch, err := s.branches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("branch", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if input.ZoneID != "" && input.ZoneID != branch.ZoneID {
		if _, err := s.zones.GetByID(ctx, input.ZoneID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("zone", map[string]any{"id": input.ZoneID})
			}
			return nil, apperrors.MapError(err)
		}
		branch.ZoneID = input.ZoneID
	}
	if strings.TrimSpace(input.Name) != "" {
		branch.Name = strings.TrimSpace(input.Name)
	}
	if input.Address != "" {
		branch.Address = strings.TrimSpace(input.Address)
	}
	if err := s.branches.Update(ctx, branch); err != nil {
		return nil, apperrors.MapError(err)
	}
	return branch, nil
}

// DeleteBranch removes a branch.
func (s *ZoneService) DeleteBranch(ctx context.Context, id string) error {
	if err := s.branches.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("branch", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetBranch fetches one branch.
func (s *ZoneService) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	branch, err := s.branches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("branch", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return branch, nil
}

// ListBranches returns branches, optionally scoped to a zone.
func (s *ZoneService) ListBranches(ctx context.Context, zoneID *string) ([]domain.Branch, error) {
	branches, err := s.branches.List(ctx, zoneID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return branches, nil
}
