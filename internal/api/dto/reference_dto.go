package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ZoneRequest payload for zone create/update.
type ZoneRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ZoneResponse wire shape.
type ZoneResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BranchRequest payload for branch create/update.
type BranchRequest struct {
	ZoneID  string `json:"zoneId"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// BranchResponse wire shape.
type BranchResponse struct {
	ID        string    `json:"id"`
	ZoneID    string    `json:"zoneId"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Icon   string  `json:"icon"`
	SLAID  *string `json:"slaId"`
	Active *bool   `json:"active"`
}

// CategoryResponse wire shape.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	SLAID     *string   `json:"slaId"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SLARequest payload for SLA create/update.
type SLARequest struct {
	Name              string                `json:"name"`
	Priority          domain.TicketPriority `json:"priority"`
	ResponseMinutes   int                   `json:"responseMinutes"`
	ResolutionMinutes int                   `json:"resolutionMinutes"`
	CategoryID        *string               `json:"categoryId"`
}

// SLAResponse wire shape.
type SLAResponse struct {
	ID                string                `json:"id"`
	Name              string                `json:"name"`
	Priority          domain.TicketPriority `json:"priority"`
	ResponseMinutes   int                   `json:"responseMinutes"`
	ResolutionMinutes int                   `json:"resolutionMinutes"`
	CategoryID        *string               `json:"categoryId"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// EscalationRuleRequest payload for rule create/update.
type EscalationRuleRequest struct {
	Name                string                `json:"name"`
	Priority            domain.TicketPriority `json:"priority"`
	TriggerAfterMinutes int                   `json:"triggerAfterMinutes"`
	Level1Escalate      string                `json:"level1Escalate"`
	Level2Escalate      string                `json:"level2Escalate"`
	NotifyUserIDs       []string              `json:"notifyUserIds"`
	AutoEscalate        bool                  `json:"autoEscalate"`
}

// EscalationRuleResponse wire shape.
type EscalationRuleResponse struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	Priority            domain.TicketPriority `json:"priority"`
	TriggerAfterMinutes int                   `json:"triggerAfterMinutes"`
	Level1Escalate      string                `json:"level1Escalate"`
	Level2Escalate      string                `json:"level2Escalate"`
	NotifyUserIDs       []string              `json:"notifyUserIds"`
	AutoEscalate        bool                  `json:"autoEscalate"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

// EnterpriseRequest payload for installation config updates.
type EnterpriseRequest struct {
	CompanyName  string `json:"companyName"`
	SupportEmail string `json:"supportEmail"`
	LogoURL      string `json:"logoUrl"`
	Timezone     string `json:"timezone"`
}

// EnterpriseResponse wire shape.
type EnterpriseResponse struct {
	CompanyName  string    `json:"companyName"`
	SupportEmail string    `json:"supportEmail"`
	LogoURL      string    `json:"logoUrl"`
	Timezone     string    `json:"timezone"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
