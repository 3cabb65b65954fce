package server

import (
	"github.com/gofiber/fiber/v2"

	"notevault/internal/models"
	"notevault/internal/service"
)

// GetNotes handles GET /api/notes
// Lists the authenticated caller's notes with optional search, tag filter and
// pagination.
func (s *Server) GetNotes(c *fiber.Ctx) error {
	result, err := s.noteService.ListOwned(c.UserContext(), callerID(c), parseListParams(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(result)
}

// GetPublicNotes handles GET /api/notes/public/all
// Lists public notes for any caller, authenticated or not. The tags query
// parameter is not supported here.
func (s *Server) GetPublicNotes(c *fiber.Ctx) error {
	params := parseListParams(c)
	params.Tags = nil

	result, err := s.noteService.ListPublic(c.UserContext(), params)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(result)
}

// GetNote handles GET /api/notes/:id
// Returns the note when the caller owns it or it is public; otherwise 404,
// whether or not the note exists.
func (s *Server) GetNote(c *fiber.Ctx) error {
	id, err := parseNoteID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	note, err := s.noteService.Get(c.UserContext(), id, callerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"note": note})
}

// CreateNote handles POST /api/notes
func (s *Server) CreateNote(c *fiber.Ctx) error {
	var req struct {
		Title    string   `json:"title"`
		Content  string   `json:"content"`
		Tags     []string `json:"tags"`
		IsPublic bool     `json:"isPublic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	note, err := s.noteService.Create(c.UserContext(), callerID(c), service.CreateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Note created successfully",
		"note":    note,
	})
}

// UpdateNote handles PUT /api/notes/:id
// Applies a partial update: only fields present in the body are touched.
func (s *Server) UpdateNote(c *fiber.Ctx) error {
	id, err := parseNoteID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	// Pointer fields distinguish "absent" from "set to zero value".
	var req struct {
		Title    *string   `json:"title"`
		Content  *string   `json:"content"`
		Tags     *[]string `json:"tags"`
		IsPublic *bool     `json:"isPublic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	note, err := s.noteService.Update(c.UserContext(), id, callerID(c), service.UpdateNoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Note updated successfully",
		"note":    note,
	})
}

// DeleteNote handles DELETE /api/notes/:id
func (s *Server) DeleteNote(c *fiber.Ctx) error {
	id, err := parseNoteID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.noteService.Delete(c.UserContext(), id, callerID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Note deleted successfully"})
}
