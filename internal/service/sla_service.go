package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// SLAService owns SLA reference data and the resolution policy that picks the
// applicable SLA for a new ticket.
type SLAService struct {
	slas repository.SLARepository
}

// NewSLAService builds the service.
func NewSLAService(slas repository.SLARepository) *SLAService {
	return &SLAService{slas: slas}
}

// SLAInput describes create/update payloads.
type SLAInput struct {
	Name              string
	Priority          domain.TicketPriority
	ResponseMinutes   int
	ResolutionMinutes int
	CategoryID        *string
}

func (in SLAInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if !domain.ValidPriority(in.Priority) {
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": in.Priority})
	}
	if in.ResponseMinutes <= 0 {
		return apperrors.NewValidationError("responseMinutes must be positive", nil)
	}
	if in.ResolutionMinutes < in.ResponseMinutes {
		return apperrors.NewValidationError("resolutionMinutes must be >= responseMinutes", map[string]any{
			"responseMinutes":   in.ResponseMinutes,
			"resolutionMinutes": in.ResolutionMinutes,
		})
	}
	return nil
}

// Create validates and stores a new SLA.
func (s *SLAService) Create(ctx context.Context, input SLAInput) (*domain.SLA, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	sla := &domain.SLA{
		Name:              strings.TrimSpace(input.Name),
		Priority:          input.Priority,
		ResponseMinutes:   input.ResponseMinutes,
		ResolutionMinutes: input.ResolutionMinutes,
		CategoryID:        input.CategoryID,
	}
	if err := s.slas.Create(ctx, sla); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sla, nil
}

// Update replaces the mutable fields of an SLA.
func (s *SLAService) Update(ctx context.Context, id string, input SLAInput) (*domain.SLA, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	sla, err := s.slas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sla", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	sla.Name = strings.TrimSpace(input.Name)
	sla.Priority = input.Priority
	sla.ResponseMinutes = input.ResponseMinutes
	sla.ResolutionMinutes = input.ResolutionMinutes
	sla.CategoryID = input.CategoryID
	if err := s.slas.Update(ctx, sla); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sla, nil
}

// Delete removes an SLA unless tickets or categories still reference it.
func (s *SLAService) Delete(ctx context.Context, id string) error {
	refs, err := s.slas.CountReferences(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if refs > 0 {
		return apperrors.NewDependencyError("sla is referenced by tickets or categories", map[string]any{
			"references": refs,
		})
	}
	if err := s.slas.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("sla", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Get fetches one SLA.
func (s *SLAService) Get(ctx context.Context, id string) (*domain.SLA, error) {
	sla, err := s.slas.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sla", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return sla, nil
}

// List returns all SLAs.
func (s *SLAService) List(ctx context.Context) ([]domain.SLA, error) {
	slas, err := s.slas.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return slas, nil
}

// Resolve picks the SLA for a ticket: an explicit id wins and must exist;
// otherwise the category default applies; otherwise the ticket carries no SLA
// and is exempt from breach checks.
func (s *SLAService) Resolve(ctx context.Context, explicitSLAID *string, category *domain.Category) (*domain.SLA, error) {
	if explicitSLAID != nil && *explicitSLAID != "" {
		sla, err := s.slas.GetByID(ctx, *explicitSLAID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("sla", map[string]any{"id": *explicitSLAID})
			}
			return nil, apperrors.MapError(err)
		}
		return sla, nil
	}
	if category != nil && category.SLAID != nil {
		sla, err := s.slas.GetByID(ctx, *category.SLAID)
		if err != nil {
			// A dangling category default is treated as no SLA rather than
			// failing ticket creation.
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, apperrors.MapError(err)
		}
		return sla, nil
	}
	return nil, nil
}

// DueDate computes the SLA deadline for a ticket created at the given time.
// Returns nil when no SLA applies.
func DueDate(sla *domain.SLA, createdAt time.Time) *time.Time {
	if sla == nil {
		return nil
	}
	due := sla.DueAt(createdAt)
	return &due
}
