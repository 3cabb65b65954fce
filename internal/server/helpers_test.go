package server

import (
	"net/http/httptest"
	"testing"

	"notevault/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func runHelperRoute(t *testing.T, target string, handler fiber.Handler) {
	app := fiber.New()
	app.Get("/probe/:id?", handler)

	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   service.ListParams
	}{
		{
			"Defaults",
			"/probe/",
			service.ListParams{Page: 1, Limit: 10},
		},
		{
			"All Parameters",
			"/probe/?page=3&limit=20&search=grocery&tags=work,urgent",
			service.ListParams{Page: 3, Limit: 20, Search: "grocery", Tags: []string{"work", "urgent"}},
		},
		{
			"Non-Numeric Page Falls Back",
			"/probe/?page=abc&limit=xyz",
			service.ListParams{Page: 1, Limit: 10},
		},
		{
			"Empty Tags Parameter",
			"/probe/?tags=,,",
			service.ListParams{Page: 1, Limit: 10, Tags: nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runHelperRoute(t, tt.target, func(c *fiber.Ctx) error {
				assert.Equal(t, tt.want, parseListParams(c))
				return c.SendStatus(fiber.StatusOK)
			})
		})
	}
}

func TestParseNoteID(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		runHelperRoute(t, "/probe/42", func(c *fiber.Ctx) error {
			id, err := parseNoteID(c)
			assert.NoError(t, err)
			assert.Equal(t, uint(42), id)
			return c.SendStatus(fiber.StatusOK)
		})
	})

	t.Run("Non-Numeric", func(t *testing.T) {
		runHelperRoute(t, "/probe/abc", func(c *fiber.Ctx) error {
			_, err := parseNoteID(c)
			assert.Error(t, err)
			return c.SendStatus(fiber.StatusOK)
		})
	})

	t.Run("Negative", func(t *testing.T) {
		runHelperRoute(t, "/probe/-1", func(c *fiber.Ctx) error {
			_, err := parseNoteID(c)
			assert.Error(t, err)
			return c.SendStatus(fiber.StatusOK)
		})
	})
}

func TestCallerID(t *testing.T) {
	t.Run("Authenticated", func(t *testing.T) {
		runHelperRoute(t, "/probe/", func(c *fiber.Ctx) error {
			c.Locals("userID", uint(7))
			assert.Equal(t, uint(7), callerID(c))
			return c.SendStatus(fiber.StatusOK)
		})
	})

	t.Run("Anonymous", func(t *testing.T) {
		runHelperRoute(t, "/probe/", func(c *fiber.Ctx) error {
			assert.Equal(t, uint(0), callerID(c))
			return c.SendStatus(fiber.StatusOK)
		})
	})
}
