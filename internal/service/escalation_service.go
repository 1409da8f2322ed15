package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// EscalationService owns escalation rules and the breach evaluator that
// advances ticket escalation levels over time.
//
// Per ticket the evaluator is a small state machine over
// {unescalated, level1, level2}: transitions are driven only by elapsed time
// since creation and stop once the ticket leaves open/in-progress. Levels
// never decrease and re-evaluating a ticket already at the appropriate level
// is a no-op, so notifications are not re-fired.
type EscalationService struct {
	rules      repository.EscalationRuleRepository
	tickets    repository.TicketRepository
	history    repository.TicketHistoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger

	// Sustained-breach multiple: level 2 triggers at level2Multiple * triggerAfter.
	level2Multiple int

	now func() time.Time
}

// EscalationDependencies bundles requirements for the service.
type EscalationDependencies struct {
	RuleRepo       repository.EscalationRuleRepository
	TicketRepo     repository.TicketRepository
	HistoryRepo    repository.TicketHistoryRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Level2Multiple int
}

// NewEscalationService builds the service.
func NewEscalationService(deps EscalationDependencies) *EscalationService {
	multiple := deps.Level2Multiple
	if multiple < 2 {
		multiple = 2
	}
	return &EscalationService{
		rules:          deps.RuleRepo,
		tickets:        deps.TicketRepo,
		history:        deps.HistoryRepo,
		dispatcher:     deps.Dispatcher,
		logger:         deps.Logger,
		level2Multiple: multiple,
		now:            time.Now,
	}
}

// EscalationRuleInput describes rule create/update payloads.
type EscalationRuleInput struct {
	Name                string
	Priority            domain.TicketPriority
	TriggerAfterMinutes int
	Level1Escalate      string
	Level2Escalate      string
	NotifyUserIDs       []string
	AutoEscalate        bool
}

func (in EscalationRuleInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if !domain.ValidPriority(in.Priority) {
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": in.Priority})
	}
	if in.TriggerAfterMinutes <= 0 {
		return apperrors.NewValidationError("triggerAfterMinutes must be positive", nil)
	}
	if strings.TrimSpace(in.Level1Escalate) == "" {
		return apperrors.NewValidationError("level1Escalate required", nil)
	}
	return nil
}

// CreateRule validates and stores a new escalation rule.
func (s *EscalationService) CreateRule(ctx context.Context, input EscalationRuleInput) (*domain.EscalationRule, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	rule := &domain.EscalationRule{
		Name:                strings.TrimSpace(input.Name),
		Priority:            input.Priority,
		TriggerAfterMinutes: input.TriggerAfterMinutes,
		Level1Escalate:      strings.TrimSpace(input.Level1Escalate),
		Level2Escalate:      strings.TrimSpace(input.Level2Escalate),
		NotifyUserIDs:       input.NotifyUserIDs,
		AutoEscalate:        input.AutoEscalate,
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, apperrors.MapError(err)
	}
	return rule, nil
}

// UpdateRule replaces the mutable fields of a rule.
func (s *EscalationService) UpdateRule(ctx context.Context, id string, input EscalationRuleInput) (*domain.EscalationRule, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("escalation rule", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	rule.Name = strings.TrimSpace(input.Name)
	rule.Priority = input.Priority
	rule.TriggerAfterMinutes = input.TriggerAfterMinutes
	rule.Level1Escalate = strings.TrimSpace(input.Level1Escalate)
	rule.Level2Escalate = strings.TrimSpace(input.Level2Escalate)
	rule.NotifyUserIDs = input.NotifyUserIDs
	rule.AutoEscalate = input.AutoEscalate
	if err := s.rules.Update(ctx, rule); err != nil {
		return nil, apperrors.MapError(err)
	}
	return rule, nil
}

// DeleteRule removes a rule.
func (s *EscalationService) DeleteRule(ctx context.Context, id string) error {
	if err := s.rules.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("escalation rule", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// GetRule fetches one rule.
func (s *EscalationService) GetRule(ctx context.Context, id string) (*domain.EscalationRule, error) {
	rule, err := s.rules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("escalation rule", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return rule, nil
}

// ListRules returns all rules.
func (s *EscalationService) ListRules(ctx context.Context) ([]domain.EscalationRule, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rules, nil
}

// EvaluateAll runs one evaluation sweep over every open or in-progress
// ticket. Rules are resolved into a priority-keyed table once per sweep
// rather than matched ad hoc per ticket. It reports how many tickets were
// inspected and how many changed level.
func (s *EscalationService) EvaluateAll(ctx context.Context) (processed, escalated int, err error) {
	rules, err := s.rules.ListAutoEscalate(ctx)
	if err != nil {
		return 0, 0, apperrors.MapError(err)
	}
	if len(rules) == 0 {
		return 0, 0, nil
	}
	byPriority := make(map[domain.TicketPriority]*domain.EscalationRule, len(rules))
	for i := range rules {
		byPriority[rules[i].Priority] = &rules[i]
	}

	tickets, err := s.tickets.ListOpenish(ctx)
	if err != nil {
		return 0, 0, apperrors.MapError(err)
	}

	for i := range tickets {
		ticket := &tickets[i]
		rule, ok := byPriority[ticket.Priority]
		if !ok {
			continue
		}
		processed++
		before := ticket.EscalationLevel
		if err := s.evaluate(ctx, ticket, rule); err != nil {
			s.logger.Warn("escalation evaluation failed",
				zap.String("ticket_id", ticket.ID), zap.Error(err))
			continue
		}
		if ticket.EscalationLevel > before {
			escalated++
		}
	}
	return processed, escalated, nil
}

// EvaluateTicket re-evaluates a single ticket against its matching rule.
func (s *EscalationService) EvaluateTicket(ctx context.Context, ticket *domain.Ticket) error {
	if !ticket.OpenIsh() {
		return nil
	}
	rules, err := s.rules.ListAutoEscalate(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	for i := range rules {
		if rules[i].Priority == ticket.Priority {
			return s.evaluate(ctx, ticket, &rules[i])
		}
	}
	return nil
}

func (s *EscalationService) evaluate(ctx context.Context, ticket *domain.Ticket, rule *domain.EscalationRule) error {
	if !ticket.OpenIsh() {
		return nil
	}

	elapsed := s.now().Sub(ticket.CreatedAt)
	target := targetLevel(elapsed, rule.TriggerAfter(), s.level2Multiple)
	if target <= ticket.EscalationLevel {
		return nil
	}

	oldLevel := ticket.EscalationLevel
	ticket.EscalationLevel = target
	if ticket.SLAID != nil {
		ticket.BreachedSLA = true
	}
	switch target {
	case 1:
		ticket.EscalatedTo = rule.Level1Escalate
	case 2:
		ticket.EscalatedTo = rule.Level2Escalate
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return apperrors.MapError(err)
	}

	if s.history != nil {
		entry := &domain.TicketHistory{
			TicketID:   ticket.ID,
			ChangeType: domain.ChangeTypeEscalation,
			OldValue:   map[string]any{"escalationLevel": oldLevel},
			NewValue: map[string]any{
				"escalationLevel": target,
				"escalatedTo":     ticket.EscalatedTo,
				"ruleId":          rule.ID,
			},
		}
		if err := s.history.Create(ctx, entry); err != nil {
			return apperrors.MapError(err)
		}
	}

	s.publish(ctx, ticket, rule, oldLevel, target)
	s.logger.Info("ticket escalated",
		zap.String("ticket_id", ticket.ID),
		zap.Int("level", target),
		zap.String("escalated_to", ticket.EscalatedTo))
	return nil
}

// targetLevel maps elapsed time to the appropriate escalation level.
func targetLevel(elapsed, triggerAfter time.Duration, level2Multiple int) int {
	if triggerAfter <= 0 {
		return 0
	}
	switch {
	case elapsed >= time.Duration(level2Multiple)*triggerAfter:
		return 2
	case elapsed >= triggerAfter:
		return 1
	default:
		return 0
	}
}

func (s *EscalationService) publish(ctx context.Context, ticket *domain.Ticket, rule *domain.EscalationRule, oldLevel, newLevel int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketEscalated,
		TicketID:  ticket.ID,
		Timestamp: s.now(),
		Payload: events.TicketEscalatedPayload{
			RuleID:        rule.ID,
			Priority:      ticket.Priority,
			OldLevel:      oldLevel,
			NewLevel:      newLevel,
			EscalatedTo:   ticket.EscalatedTo,
			NotifyUserIDs: rule.NotifyUserIDs,
		},
	})
}
