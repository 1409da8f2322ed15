package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

func TestTicketResponseCarriesDerivedNames(t *testing.T) {
	assignee := "Morgan"
	detail := &service.TicketDetail{
		Ticket: domain.Ticket{
			ID:         "t-1",
			Title:      "Printer down",
			Status:     domain.TicketStatusOpen,
			Priority:   domain.TicketPriorityMedium,
			CategoryID: "cat-1",
			CreatorID:  "u-1",
		},
		CategoryName: "Hardware",
		AssigneeName: &assignee,
	}

	raw, err := json.Marshal(ticketResponse(detail))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Hardware", body["category"])
	assert.Equal(t, "Morgan", body["assignee"])
	assert.NotContains(t, body, "categoryName")
	assert.NotContains(t, body, "assigneeName")
	assert.Equal(t, []any{}, body["childTicketIds"])
	assert.Equal(t, []any{}, body["tags"])
}
