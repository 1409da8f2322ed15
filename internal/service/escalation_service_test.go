package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
)

type escalationFixture struct {
	svc        *EscalationService
	rules      *fakeRuleRepo
	tickets    *fakeTicketRepo
	history    *fakeHistoryRepo
	dispatcher events.Dispatcher
	events     *[]events.Event
	clock      *time.Time
}

func newEscalationFixture(t *testing.T) *escalationFixture {
	t.Helper()
	ruleRepo := newFakeRuleRepo()
	ticketRepo := newFakeTicketRepo()
	historyRepo := newFakeHistoryRepo()
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventTicketEscalated, func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	svc := NewEscalationService(EscalationDependencies{
		RuleRepo:       ruleRepo,
		TicketRepo:     ticketRepo,
		HistoryRepo:    historyRepo,
		Dispatcher:     dispatcher,
		Logger:         zap.NewNop(),
		Level2Multiple: 2,
	})

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &escalationFixture{
		svc:        svc,
		rules:      ruleRepo,
		tickets:    ticketRepo,
		history:    historyRepo,
		dispatcher: dispatcher,
		events:     &published,
		clock:      &now,
	}
}

func (f *escalationFixture) addRule(t *testing.T, priority domain.TicketPriority, triggerMinutes int, autoEscalate bool) *domain.EscalationRule {
	t.Helper()
	rule := &domain.EscalationRule{
		Name:                "rule-" + string(priority),
		Priority:            priority,
		TriggerAfterMinutes: triggerMinutes,
		Level1Escalate:      "team-lead",
		Level2Escalate:      "duty-manager",
		NotifyUserIDs:       []string{"mgr-1"},
		AutoEscalate:        autoEscalate,
	}
	require.NoError(t, f.rules.Create(context.Background(), rule))
	return rule
}

func (f *escalationFixture) addTicket(t *testing.T, priority domain.TicketPriority, status domain.TicketStatus, age time.Duration) *domain.Ticket {
	t.Helper()
	slaID := "sla-1"
	ticket := &domain.Ticket{
		Title:      "ticket",
		Status:     status,
		Priority:   priority,
		CategoryID: "cat-1",
		CreatorID:  "user-1",
		SLAID:      &slaID,
		CreatedAt:  f.clock.Add(-age),
	}
	require.NoError(t, f.tickets.Create(context.Background(), ticket))
	return ticket
}

func TestEscalationWithoutSLALeavesBreachFlagClear(t *testing.T) {
	f := newEscalationFixture(t)
	f.addRule(t, domain.TicketPriorityHigh, 60, true)
	ticket := &domain.Ticket{
		Title:      "ticket",
		Status:     domain.TicketStatusOpen,
		Priority:   domain.TicketPriorityHigh,
		CategoryID: "cat-1",
		CreatorID:  "user-1",
		CreatedAt:  f.clock.Add(-90 * time.Minute),
	}
	require.NoError(t, f.tickets.Create(context.Background(), ticket))

	_, escalated, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, escalated)

	stored, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.EscalationLevel)
	assert.Equal(t, "team-lead", stored.EscalatedTo)
	assert.False(t, stored.BreachedSLA)
}

func TestEvaluateAllEscalatesToLevel1(t *testing.T) {
	f := newEscalationFixture(t)
	f.addRule(t, domain.TicketPriorityHigh, 60, true)
	ticket := f.addTicket(t, domain.TicketPriorityHigh, domain.TicketStatusOpen, 90*time.Minute)

	processed, escalated, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, escalated)

	stored, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.EscalationLevel)
	assert.Equal(t, "team-lead", stored.EscalatedTo)
	assert.True(t, stored.BreachedSLA)

	require.Len(t, *f.events, 1)
	payload := (*f.events)[0].Payload.(events.TicketEscalatedPayload)
	assert.Equal(t, 0, payload.OldLevel)
	assert.Equal(t, 1, payload.NewLevel)
	assert.Equal(t, []string{"mgr-1"}, payload.NotifyUserIDs)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, domain.ChangeTypeEscalation, f.history.entries[0].ChangeType)
}

func TestEvaluateAllSkipsLevel2StraightAway(t *testing.T) {
	f := newEscalationFixture(t)
	f.addRule(t, domain.TicketPriorityUrgent, 30, true)
	ticket := f.addTicket(t, domain.TicketPriorityUrgent, domain.TicketStatusInProgress, 3*time.Hour)

	_, escalated, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, escalated)

	stored, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.EscalationLevel)
	assert.Equal(t, "duty-manager", stored.EscalatedTo)
}

func TestEvaluateAllIsIdempotentPerLevel(t *testing.T) {
	f := newEscalationFixture(t)
	f.addRule(t, domain.TicketPriorityHigh, 60, true)
	f.addTicket(t, domain.TicketPriorityHigh, domain.TicketStatusOpen, 90*time.Minute)

	_, escalated, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, escalated)

	// Second sweep at the same elapsed time must not re-fire.
	_, escalated, err = f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, escalated)
	assert.Len(t, *f.events, 1)
	assert.Len(t, f.history.entries, 1)
}

func TestEvaluateAllAdvancesLevel1ToLevel2(t *testing.T) {
	f := newEscalationFixture(t)
	f.addRule(t, domain.TicketPriorityHigh, 60, true)
	ticket := f.addTicket(t, domain.TicketPriorityHigh, domain.TicketStatusOpen, 90*time.Minute)

	_, _, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)

	*f.clock = f.clock.Add(60 * time.Minute)

	_, escalated, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, escalated)

	stored, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.EscalationLevel)
	assert.Equal(t, "duty-manager", stored.EscalatedTo)
	require.Len(t, *f.events, 2)
	payload := (*f.events)[1].Payload.(events.TicketEscalatedPayload)
	assert.Equal(t, 1, payload.OldLevel)
	assert.Equal(t, 2, payload.NewLevel)
}

func TestEvaluateAllIgnoresResolvedAndClosedTickets(t *testing.T) {
	f := newEscalationFixture(t)
	f.addRule(t, domain.TicketPriorityHigh, 60, true)
	resolved := f.addTicket(t, domain.TicketPriorityHigh, domain.TicketStatusResolved, 5*time.Hour)
	closed := f.addTicket(t, domain.TicketPriorityHigh, domain.TicketStatusClosed, 5*time.Hour)

	processed, escalated, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	assert.Equal(t, 0, escalated)

	for _, id := range []string{resolved.ID, closed.ID} {
		stored, err := f.tickets.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.EscalationLevel)
	}
}

func TestEvaluateAllIgnoresManualOnlyRules(t *testing.T) {
	f := newEscalationFixture(t)
	f.addRule(t, domain.TicketPriorityHigh, 60, false)
	ticket := f.addTicket(t, domain.TicketPriorityHigh, domain.TicketStatusOpen, 5*time.Hour)

	_, escalated, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, escalated)

	stored, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.EscalationLevel)
}

func TestEvaluateAllLeavesFreshTicketsAlone(t *testing.T) {
	f := newEscalationFixture(t)
	f.addRule(t, domain.TicketPriorityHigh, 60, true)
	ticket := f.addTicket(t, domain.TicketPriorityHigh, domain.TicketStatusOpen, 30*time.Minute)

	processed, escalated, err := f.svc.EvaluateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 0, escalated)

	stored, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.False(t, stored.BreachedSLA)
}

func TestTargetLevelBoundaries(t *testing.T) {
	trigger := time.Hour

	assert.Equal(t, 0, targetLevel(59*time.Minute, trigger, 2))
	assert.Equal(t, 1, targetLevel(time.Hour, trigger, 2))
	assert.Equal(t, 1, targetLevel(119*time.Minute, trigger, 2))
	assert.Equal(t, 2, targetLevel(2*time.Hour, trigger, 2))
	assert.Equal(t, 2, targetLevel(48*time.Hour, trigger, 2))
	assert.Equal(t, 0, targetLevel(time.Hour, 0, 2))

	// A higher multiple pushes the level-2 threshold out.
	assert.Equal(t, 1, targetLevel(2*time.Hour, trigger, 3))
	assert.Equal(t, 2, targetLevel(3*time.Hour, trigger, 3))
}

func TestCreateRuleValidation(t *testing.T) {
	f := newEscalationFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateRule(ctx, EscalationRuleInput{
		Priority: domain.TicketPriorityHigh, TriggerAfterMinutes: 60, Level1Escalate: "lead",
	})
	require.Error(t, err)

	_, err = f.svc.CreateRule(ctx, EscalationRuleInput{
		Name: "r", Priority: domain.TicketPriorityHigh, TriggerAfterMinutes: 0, Level1Escalate: "lead",
	})
	require.Error(t, err)

	_, err = f.svc.CreateRule(ctx, EscalationRuleInput{
		Name: "r", Priority: domain.TicketPriorityHigh, TriggerAfterMinutes: 60,
	})
	require.Error(t, err)

	rule, err := f.svc.CreateRule(ctx, EscalationRuleInput{
		Name: "r", Priority: domain.TicketPriorityHigh, TriggerAfterMinutes: 60,
		Level1Escalate: "lead", AutoEscalate: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)
}
