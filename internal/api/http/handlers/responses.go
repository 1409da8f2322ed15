package handlers

import (
	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func ticketResponse(detail *service.TicketDetail) dto.TicketResponse {
	ticket := detail.Ticket
	tags := ticket.Tags
	if tags == nil {
		tags = []string{}
	}
	children := detail.ChildTicketIDs
	if children == nil {
		children = []string{}
	}
	return dto.TicketResponse{
		ID:              ticket.ID,
		Title:           ticket.Title,
		Description:     ticket.Description,
		Status:          ticket.Status,
		Priority:        ticket.Priority,
		CategoryID:      ticket.CategoryID,
		CategoryName:    detail.CategoryName,
		AssigneeID:      ticket.AssigneeID,
		AssigneeName:    detail.AssigneeName,
		CreatorID:       ticket.CreatorID,
		ParentID:        ticket.ParentID,
		ChildTicketIDs:  children,
		SLAID:           ticket.SLAID,
		SLADueDate:      ticket.SLADueDate,
		EscalationLevel: ticket.EscalationLevel,
		EscalatedTo:     ticket.EscalatedTo,
		BreachedSLA:     ticket.BreachedSLA,
		Tags:            tags,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}

func commentResponse(comment *domain.TicketComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		Internal:  comment.Internal,
		CreatedAt: comment.CreatedAt,
	}
}

func historyResponse(entry *domain.TicketHistory) dto.HistoryResponse {
	return dto.HistoryResponse{
		ID:          entry.ID,
		TicketID:    entry.TicketID,
		ChangedByID: entry.ChangedByID,
		ChangeType:  entry.ChangeType,
		OldValue:    entry.OldValue,
		NewValue:    entry.NewValue,
		CreatedAt:   entry.CreatedAt,
	}
}

func zoneResponse(zone *domain.Zone) dto.ZoneResponse {
	return dto.ZoneResponse{
		ID:          zone.ID,
		Name:        zone.Name,
		Description: zone.Description,
		CreatedAt:   zone.CreatedAt,
		UpdatedAt:   zone.UpdatedAt,
	}
}

func branchResponse(branch *domain.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:        branch.ID,
		ZoneID:    branch.ZoneID,
		Name:      branch.Name,
		Address:   branch.Address,
		CreatedAt: branch.CreatedAt,
		UpdatedAt: branch.UpdatedAt,
	}
}

func categoryResponse(category *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		SLAID:     category.SLAID,
		Active:    category.Active,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func slaResponse(sla *domain.SLA) dto.SLAResponse {
	return dto.SLAResponse{
		ID:                sla.ID,
		Name:              sla.Name,
		Priority:          sla.Priority,
		ResponseMinutes:   sla.ResponseMinutes,
		ResolutionMinutes: sla.ResolutionMinutes,
		CategoryID:        sla.CategoryID,
		CreatedAt:         sla.CreatedAt,
		UpdatedAt:         sla.UpdatedAt,
	}
}

func escalationRuleResponse(rule *domain.EscalationRule) dto.EscalationRuleResponse {
	notify := rule.NotifyUserIDs
	if notify == nil {
		notify = []string{}
	}
	return dto.EscalationRuleResponse{
		ID:                  rule.ID,
		Name:                rule.Name,
		Priority:            rule.Priority,
		TriggerAfterMinutes: rule.TriggerAfterMinutes,
		Level1Escalate:      rule.Level1Escalate,
		Level2Escalate:      rule.Level2Escalate,
		NotifyUserIDs:       notify,
		AutoEscalate:        rule.AutoEscalate,
		CreatedAt:           rule.CreatedAt,
		UpdatedAt:           rule.UpdatedAt,
	}
}

func enterpriseResponse(cfg *domain.EnterpriseConfig) dto.EnterpriseResponse {
	return dto.EnterpriseResponse{
		CompanyName:  cfg.CompanyName,
		SupportEmail: cfg.SupportEmail,
		LogoURL:      cfg.LogoURL,
		Timezone:     cfg.Timezone,
		UpdatedAt:    cfg.UpdatedAt,
	}
}
