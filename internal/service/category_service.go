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

// CategoryService manages ticket categories.
type CategoryService struct {
	categories repository.CategoryRepository
	slas       repository.SLARepository
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository, slas repository.SLARepository) *CategoryService {
	return &CategoryService{categories: categories, slas: slas}
}

// CategoryInput describes category payloads.
type CategoryInput struct {
	Name   string
	Color  string
	Icon   string
	SLAID  *string
	Active *bool
}

// Create validates and stores a new category.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if err := s.checkSLA(ctx, input.SLAID); err != nil {
		return nil, err
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	category := &domain.Category{
		Name:   strings.TrimSpace(input.Name),
		Color:  input.Color,
		Icon:   input.Icon,
		SLAID:  input.SLAID,
		Active: active,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// Update replaces the mutable fields of a category.
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if strings.TrimSpace(input.Name) != "" {
		category.Name = strings.TrimSpace(input.Name)
	}
	if input.Color != "" {
		category.Color = input.Color
	}
	if input.Icon != "" {
		category.Icon = input.Icon
	}
	if input.SLAID != nil {
		if *input.SLAID == "" {
			category.SLAID = nil
		} else {
			if err := s.checkSLA(ctx, input.SLAID); err != nil {
				return nil, err
			}
			category.SLAID = input.SLAID
		}
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// Delete removes a category unless tickets still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	count, err := s.categories.CountTickets(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewDependencyError("category is referenced by tickets", map[string]any{
			"tickets": count,
		})
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Get fetches one category.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

func (s *CategoryService) checkSLA(ctx context.Context, slaID *string) error {
	if slaID == nil || *slaID == "" {
		return nil
	}
	if _, err := s.slas.GetByID(ctx, *slaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("sla", map[string]any{"id": *slaID})
		}
		return apperrors.MapError(err)
	}
	return nil
}
