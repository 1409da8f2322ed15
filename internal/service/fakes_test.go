package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

type fakeZoneRepo struct {
	zones       map[string]*domain.Zone
	branchCount map[string]int
}

func newFakeZoneRepo() *fakeZoneRepo {
	return &fakeZoneRepo{zones: map[string]*domain.Zone{}, branchCount: map[string]int{}}
}

func (f *fakeZoneRepo) Create(_ context.Context, zone *domain.Zone) error {
	if zone.ID == "" {
		zone.ID = uuid.NewString()
	}
	clone := *zone
	f.zones[zone.ID] = &clone
	return nil
}

func (f *fakeZoneRepo) Update(_ context.Context, zone *domain.Zone) error {
	if _, ok := f.zones[zone.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *zone
	f.zones[zone.ID] = &clone
	return nil
}

func (f *fakeZoneRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.zones[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.zones, id)
	return nil
}

func (f *fakeZoneRepo) GetByID(_ context.Context, id string) (*domain.Zone, error) {
	zone, ok := f.zones[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *zone
	return &clone, nil
}

func (f *fakeZoneRepo) List(_ context.Context) ([]domain.Zone, error) {
	out := make([]domain.Zone, 0, len(f.zones))
	for _, zone := range f.zones {
		out = append(out, *zone)
	}
	return out, nil
}

func (f *fakeZoneRepo) CountBranches(_ context.Context, zoneID string) (int, error) {
	return f.branchCount[zoneID], nil
}

type fakeBranchRepo struct {
	branches map[string]*domain.Branch
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: map[string]*domain.Branch{}}
}

func (f *fakeBranchRepo) Create(_ context.Context, branch *domain.Branch) error {
	if branch.ID == "" {
		branch.ID = uuid.NewString()
	}
	clone := *branch
	f.branches[branch.ID] = &clone
	return nil
}

func (f *fakeBranchRepo) Update(_ context.Context, branch *domain.Branch) error {
	if _, ok := f.branches[branch.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *branch
	f.branches[branch.ID] = &clone
	return nil
}

func (f *fakeBranchRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.branches[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.branches, id)
	return nil
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id string) (*domain.Branch, error) {
	branch, ok := f.branches[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *branch
	return &clone, nil
}

func (f *fakeBranchRepo) List(_ context.Context, zoneID *string) ([]domain.Branch, error) {
	out := make([]domain.Branch, 0, len(f.branches))
	for _, branch := range f.branches {
		if zoneID != nil && branch.ZoneID != *zoneID {
			continue
		}
		out = append(out, *branch)
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories  map[string]*domain.Category
	order       []string
	ticketCount map[string]int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*domain.Category{}, ticketCount: map[string]int{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	clone := *category
	f.categories[category.ID] = &clone
	f.order = append(f.order, category.ID)
	return nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *category
	return &clone, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(f.categories))
	for _, id := range f.order {
		if category, ok := f.categories[id]; ok {
			out = append(out, *category)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) FirstActive(_ context.Context) (*domain.Category, error) {
	for _, id := range f.order {
		if category, ok := f.categories[id]; ok && category.Active {
			clone := *category
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCategoryRepo) CountTickets(_ context.Context, categoryID string) (int, error) {
	return f.ticketCount[categoryID], nil
}

type fakeSLARepo struct {
	slas     map[string]*domain.SLA
	refCount map[string]int
}

func newFakeSLARepo() *fakeSLARepo {
	return &fakeSLARepo{slas: map[string]*domain.SLA{}, refCount: map[string]int{}}
}

func (f *fakeSLARepo) Create(_ context.Context, sla *domain.SLA) error {
	if sla.ID == "" {
		sla.ID = uuid.NewString()
	}
	clone := *sla
	f.slas[sla.ID] = &clone
	return nil
}

func (f *fakeSLARepo) Update(_ context.Context, sla *domain.SLA) error {
	if _, ok := f.slas[sla.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *sla
	f.slas[sla.ID] = &clone
	return nil
}

func (f *fakeSLARepo) Delete(_ context.Context, id string) error {
	if _, ok := f.slas[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.slas, id)
	return nil
}

func (f *fakeSLARepo) GetByID(_ context.Context, id string) (*domain.SLA, error) {
	sla, ok := f.slas[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *sla
	return &clone, nil
}

func (f *fakeSLARepo) List(_ context.Context) ([]domain.SLA, error) {
	out := make([]domain.SLA, 0, len(f.slas))
	for _, sla := range f.slas {
		out = append(out, *sla)
	}
	return out, nil
}

func (f *fakeSLARepo) CountReferences(_ context.Context, slaID string) (int, error) {
	return f.refCount[slaID], nil
}

type fakeRuleRepo struct {
	rules map[string]*domain.EscalationRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: map[string]*domain.EscalationRule{}}
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *domain.EscalationRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	clone := *rule
	f.rules[rule.ID] = &clone
	return nil
}

func (f *fakeRuleRepo) Update(_ context.Context, rule *domain.EscalationRule) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *rule
	f.rules[rule.ID] = &clone
	return nil
}

func (f *fakeRuleRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rules[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rules, id)
	return nil
}

func (f *fakeRuleRepo) GetByID(_ context.Context, id string) (*domain.EscalationRule, error) {
	rule, ok := f.rules[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *rule
	return &clone, nil
}

func (f *fakeRuleRepo) List(_ context.Context) ([]domain.EscalationRule, error) {
	out := make([]domain.EscalationRule, 0, len(f.rules))
	for _, rule := range f.rules {
		out = append(out, *rule)
	}
	return out, nil
}

func (f *fakeRuleRepo) ListAutoEscalate(_ context.Context) ([]domain.EscalationRule, error) {
	out := make([]domain.EscalationRule, 0, len(f.rules))
	for _, rule := range f.rules {
		if rule.AutoEscalate {
			out = append(out, *rule)
		}
	}
	return out, nil
}

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	order   []string
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	ticket.UpdatedAt = ticket.CreatedAt
	clone := *ticket
	f.tickets[ticket.ID] = &clone
	f.order = append(f.order, ticket.ID)
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	clone := *ticket
	f.tickets[ticket.ID] = &clone
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	for _, ticket := range f.tickets {
		if ticket.ParentID != nil && *ticket.ParentID == id {
			ticket.ParentID = nil
		}
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(f.tickets))
	for _, id := range f.order {
		ticket, ok := f.tickets[id]
		if !ok {
			continue
		}
		if filter.CreatorID != nil && ticket.CreatorID != *filter.CreatorID {
			continue
		}
		if filter.AssigneeID != nil && (ticket.AssigneeID == nil || *ticket.AssigneeID != *filter.AssigneeID) {
			continue
		}
		if filter.CategoryID != nil && ticket.CategoryID != *filter.CategoryID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, ticket.Priority) {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

func (f *fakeTicketRepo) ListChildIDs(_ context.Context, parentID string) ([]string, error) {
	var out []string
	for _, id := range f.order {
		ticket, ok := f.tickets[id]
		if !ok {
			continue
		}
		if ticket.ParentID != nil && *ticket.ParentID == parentID {
			out = append(out, ticket.ID)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) ListOpenish(_ context.Context) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(f.tickets))
	for _, id := range f.order {
		ticket, ok := f.tickets[id]
		if !ok {
			continue
		}
		if ticket.OpenIsh() {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) SummaryCounts(_ context.Context) (*repository.TicketSummaryCounts, error) {
	counts := &repository.TicketSummaryCounts{
		ByStatus:   map[domain.TicketStatus]int{},
		ByPriority: map[domain.TicketPriority]int{},
	}
	for _, ticket := range f.tickets {
		counts.Total++
		counts.ByStatus[ticket.Status]++
		counts.ByPriority[ticket.Priority]++
		if ticket.BreachedSLA {
			counts.Breached++
		}
		if ticket.EscalationLevel > 0 {
			counts.Escalated++
		}
	}
	return counts, nil
}

type fakeCommentRepo struct {
	comments []domain.TicketComment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.TicketComment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.CreatedAt = time.Now()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketComment, error) {
	var out []domain.TicketComment
	for _, comment := range f.comments {
		if comment.TicketID == ticketID {
			out = append(out, comment)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	entries []domain.TicketHistory
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{}
}

func (f *fakeHistoryRepo) Create(_ context.Context, history *domain.TicketHistory) error {
	if history.ID == "" {
		history.ID = uuid.NewString()
	}
	history.CreatedAt = time.Now()
	f.entries = append(f.entries, *history)
	return nil
}

func (f *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketHistory, error) {
	var out []domain.TicketHistory
	for _, entry := range f.entries {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func containsStatus(haystack []domain.TicketStatus, needle domain.TicketStatus) bool {
	for _, status := range haystack {
		if status == needle {
			return true
		}
	}
	return false
}

func containsPriority(haystack []domain.TicketPriority, needle domain.TicketPriority) bool {
	for _, priority := range haystack {
		if priority == needle {
			return true
		}
	}
	return false
}
