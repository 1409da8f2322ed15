package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

func captureFilter(t *testing.T, target string) (repository.TicketFilter, error) {
	t.Helper()
	var filter repository.TicketFilter
	var parseErr error
	app := fiber.New()
	app.Get("/tickets", func(c *fiber.Ctx) error {
		filter, parseErr = parseTicketFilter(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return filter, parseErr
}

func TestParseTicketFilterDefaults(t *testing.T) {
	filter, err := captureFilter(t, "/tickets")
	require.NoError(t, err)
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, 0, filter.Offset)
	assert.Nil(t, filter.SearchTerm)
	assert.Empty(t, filter.Statuses)
}

func TestParseTicketFilterCapsLimit(t *testing.T) {
	filter, err := captureFilter(t, "/tickets?limit=9000&offset=20")
	require.NoError(t, err)
	assert.Equal(t, 500, filter.Limit)
	assert.Equal(t, 20, filter.Offset)
}

func TestParseTicketFilterStatusAndPriorityLists(t *testing.T) {
	filter, err := captureFilter(t, "/tickets?status=open,in-progress&priority=high&q=wifi")
	require.NoError(t, err)
	assert.Equal(t, []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusInProgress}, filter.Statuses)
	assert.Equal(t, []domain.TicketPriority{domain.TicketPriorityHigh}, filter.Priorities)
	require.NotNil(t, filter.SearchTerm)
	assert.Equal(t, "wifi", *filter.SearchTerm)
}

func TestParseTicketFilterRejectsUnknownStatus(t *testing.T) {
	_, err := captureFilter(t, "/tickets?status=pending")
	require.Error(t, err)
}

func TestParseTicketFilterRejectsNegativeLimit(t *testing.T) {
	_, err := captureFilter(t, "/tickets?limit=-5")
	require.Error(t, err)
}
