package server

import (
	"github.com/gofiber/fiber/v2"

	"notevault/internal/models"
	"notevault/internal/service"
	"notevault/internal/validation"
)

// parseListParams extracts page/limit/search/tags query parameters.
// Malformed or out-of-range page and limit fall back to defaults inside the
// service; they never cause an error.
func parseListParams(c *fiber.Ctx) service.ListParams {
	return service.ListParams{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
		Tags:   validation.ParseTagList(c.Query("tags")),
	}
}

// parseNoteID extracts the :id route parameter as a positive uint. A
// syntactically invalid id cannot reference any note, so it is reported the
// same way as a missing one.
func parseNoteID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError("Note not found")
	}
	return uint(id), nil
}

// callerID returns the authenticated user ID from locals, or zero for
// anonymous requests.
func callerID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
