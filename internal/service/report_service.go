package service

import (
	"context"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const summaryCacheKey = "helpdesk:reports:summary"
const summaryCacheTTL = 30 * time.Second

// Summary aggregates ticket counts for the reports endpoint.
type Summary struct {
	Total       int                           `json:"total"`
	ByStatus    map[domain.TicketStatus]int   `json:"byStatus"`
	ByPriority  map[domain.TicketPriority]int `json:"byPriority"`
	Breached    int                           `json:"breached"`
	Escalated   int                           `json:"escalated"`
	GeneratedAt time.Time                     `json:"generatedAt"`
}

// ReportService computes dashboard aggregates, cached briefly in redis since
// the admin frontend polls this endpoint.
type ReportService struct {
	tickets repository.TicketRepository
	cache   *persistence.Redis

	now func() time.Time
}

// NewReportService builds the service.
func NewReportService(tickets repository.TicketRepository, cache *persistence.Redis) *ReportService {
	return &ReportService{tickets: tickets, cache: cache, now: time.Now}
}

// Summary returns ticket aggregates.
func (s *ReportService) Summary(ctx context.Context) (*Summary, error) {
	var cached Summary
	if s.cache.GetJSON(ctx, summaryCacheKey, &cached) {
		return &cached, nil
	}

	counts, err := s.tickets.SummaryCounts(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summary := &Summary{
		Total:       counts.Total,
		ByStatus:    counts.ByStatus,
		ByPriority:  counts.ByPriority,
		Breached:    counts.Breached,
		Escalated:   counts.Escalated,
		GeneratedAt: s.now(),
	}

	s.cache.SetJSON(ctx, summaryCacheKey, summary, summaryCacheTTL)
	return summary, nil
}
