package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const enterpriseCacheKey = "helpdesk:enterprise"
const enterpriseCacheTTL = 5 * time.Minute

// EnterpriseService manages the single-row installation config, with a
// best-effort redis read-through cache in front of the store.
type EnterpriseService struct {
	repo  repository.EnterpriseRepository
	cache *persistence.Redis
}

// NewEnterpriseService builds the service.
func NewEnterpriseService(repo repository.EnterpriseRepository, cache *persistence.Redis) *EnterpriseService {
	return &EnterpriseService{repo: repo, cache: cache}
}

// EnterpriseInput describes the update payload.
type EnterpriseInput struct {
	CompanyName  string
	SupportEmail string
	LogoURL      string
	Timezone     string
}

// Get returns the installation config, preferring the cache.
func (s *EnterpriseService) Get(ctx context.Context) (*domain.EnterpriseConfig, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("enterprise config", nil)
		}
		return nil, apperrors.MapError(err)
	}
	s.cache.SetJSON(ctx, enterpriseCacheKey, cfg, enterpriseCacheTTL)
	return cfg, nil
}

// Update replaces the installation config and invalidates the cache.
func (s *EnterpriseService) Update(ctx context.Context, input EnterpriseInput) (*domain.EnterpriseConfig, error) {
	if strings.TrimSpace(input.CompanyName) == "" {
		return nil, apperrors.NewValidationError("companyName required", nil)
	}
	cfg := &domain.EnterpriseConfig{
		CompanyName:  strings.TrimSpace(input.CompanyName),
		SupportEmail: strings.TrimSpace(input.SupportEmail),
		LogoURL:      strings.TrimSpace(input.LogoURL),
		Timezone:     strings.TrimSpace(input.Timezone),
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Delete(ctx, enterpriseCacheKey)
	return cfg, nil
}

func (s *EnterpriseService) fromCache(ctx context.Context) *domain.EnterpriseConfig {
	var cfg domain.EnterpriseConfig
	if !s.cache.GetJSON(ctx, enterpriseCacheKey, &cfg) {
		return nil
	}
	return &cfg
}
