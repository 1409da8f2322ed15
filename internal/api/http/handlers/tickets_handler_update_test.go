package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func TestRejectEvaluatorFieldsAllowsPlainUpdates(t *testing.T) {
	status := domain.TicketStatusClosed
	title := "updated title"
	require.NoError(t, rejectEvaluatorFields(&dto.UpdateTicketRequest{
		Title:  &title,
		Status: &status,
	}))
}

func TestRejectEvaluatorFieldsBlocksEscalationOverrides(t *testing.T) {
	level := 2
	target := "noc"
	breached := true
	cases := map[string]dto.UpdateTicketRequest{
		"escalationLevel": {EscalationLevel: &level},
		"escalatedTo":     {EscalatedTo: &target},
		"breachedSla":     {BreachedSLA: &breached},
	}
	for name, req := range cases {
		err := rejectEvaluatorFields(&req)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr, name)
		assert.Equal(t, "FORBIDDEN", domainErr.Code, name)
	}
}
