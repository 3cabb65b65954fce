// Package service implements the note access and query component: filter
// composition, pagination, and per-operation ownership and visibility rules.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"notevault/internal/cache"
	"notevault/internal/models"
	"notevault/internal/observability"
	"notevault/internal/repository"
	"notevault/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// NoteService composes filtered, paginated, sorted views of notes and
// enforces ownership on mutations.
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService returns a NoteService backed by the given repository.
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// ListParams are the raw query parameters of a list operation. Out-of-range
// page and limit values are clamped, never rejected.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Tags   []string
}

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// CreateNoteInput carries the fields of a create operation.
type CreateNoteInput struct {
	Title    string
	Content  string
	Tags     []string
	IsPublic bool
}

// UpdateNoteInput carries a partial update: nil fields are left untouched.
type UpdateNoteInput struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPublic *bool
}

// ListOwned returns the caller's notes narrowed by search and tag
// intersection, most recently updated first.
func (s *NoteService) ListOwned(ctx context.Context, callerID uint, params ListParams) (*models.NoteListResponse, error) {
	filter := repository.OwnedNotes(callerID, params.Search, params.Tags)
	return s.list(ctx, filter, params, "Server error fetching notes")
}

// ListPublic returns public notes narrowed by search, most recently updated
// first. No authentication is required and no tag filter is offered.
func (s *NoteService) ListPublic(ctx context.Context, params ListParams) (*models.NoteListResponse, error) {
	filter := repository.PublicNotes(params.Search)
	return s.list(ctx, filter, params, "Server error fetching public notes")
}

func (s *NoteService) list(ctx context.Context, filter repository.NoteFilter, params ListParams, failureMessage string) (*models.NoteListResponse, error) {
	start := time.Now()
	defer func() {
		observability.NoteQueryLatency.WithLabelValues("list").Observe(time.Since(start).Seconds())
	}()
	params = params.normalized()

	notes, err := s.notes.List(ctx, filter, params.Limit, (params.Page-1)*params.Limit)
	if err != nil {
		return nil, models.NewInternalError(failureMessage, err)
	}

	total, err := s.notes.Count(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(failureMessage, err)
	}

	return &models.NoteListResponse{
		Notes:       models.NoteViews(notes),
		TotalPages:  totalPages(total, params.Limit),
		CurrentPage: params.Page,
		Total:       total,
	}, nil
}

// Get returns a single note visible to the caller: its owner, or anyone when
// the note is public. A missing note and a forbidden note are both reported
// as not found so private note existence never leaks. Anonymous reads go
// through the cache since their visible set is public notes only.
func (s *NoteService) Get(ctx context.Context, id, callerID uint) (*models.NoteView, error) {
	if callerID == 0 {
		var view models.NoteView
		err := cache.Aside(ctx, cache.NoteKey(id), &view, cache.NoteTTL, func() error {
			note, err := s.notes.GetVisible(ctx, id, 0)
			if err != nil {
				return err
			}
			view = note.View()
			return nil
		})
		if err != nil {
			return nil, s.lookupError(err, "Server error fetching note")
		}
		return &view, nil
	}

	note, err := s.notes.GetVisible(ctx, id, callerID)
	if err != nil {
		return nil, s.lookupError(err, "Server error fetching note")
	}
	view := note.View()
	return &view, nil
}

// Create validates and persists a new note owned by the caller.
func (s *NoteService) Create(ctx context.Context, callerID uint, in CreateNoteInput) (*models.NoteView, error) {
	span, ctx := observability.NewSpan(ctx, "note.create")
	defer span.End()
	span.AddAttributes(attribute.Int("user.id", int(callerID)))

	if err := validation.ValidateNoteTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateNoteContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	note := &models.Note{
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		AuthorID: callerID,
		Tags:     validation.NormalizeTags(in.Tags),
		IsPublic: in.IsPublic,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		observability.ObserveNoteOperation("create", err)
		span.SetError(err)
		return nil, models.NewInternalError("Server error creating note", err)
	}
	observability.ObserveNoteOperation("create", nil)
	span.AddAttributes(attribute.Int("note.id", int(note.ID)))

	// Reload so the response carries the populated author.
	created, err := s.notes.GetOwned(ctx, note.ID, callerID)
	if err != nil {
		return nil, models.NewInternalError("Server error creating note", err)
	}
	view := created.View()
	return &view, nil
}

// Update applies the supplied subset of fields to a note the caller owns.
// Fields absent from the input keep their prior value.
func (s *NoteService) Update(ctx context.Context, id, callerID uint, in UpdateNoteInput) (*models.NoteView, error) {
	span, ctx := observability.NewSpan(ctx, "note.update")
	defer span.End()
	span.AddAttributes(
		attribute.Int("note.id", int(id)),
		attribute.Int("user.id", int(callerID)),
	)

	note, err := s.notes.GetOwned(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Note not found or you do not have permission to edit it")
		}
		return nil, models.NewInternalError("Server error updating note", err)
	}

	if in.Title != nil {
		if err := validation.ValidateNoteTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		note.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		if err := validation.ValidateNoteContent(*in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		note.Content = strings.TrimSpace(*in.Content)
	}
	if in.Tags != nil {
		note.Tags = validation.NormalizeTags(*in.Tags)
	}
	if in.IsPublic != nil {
		note.IsPublic = *in.IsPublic
	}

	if err := s.notes.Update(ctx, note); err != nil {
		observability.ObserveNoteOperation("update", err)
		span.SetError(err)
		return nil, models.NewInternalError("Server error updating note", err)
	}
	observability.ObserveNoteOperation("update", nil)
	cache.InvalidateNote(ctx, note.ID)

	updated, err := s.notes.GetOwned(ctx, note.ID, callerID)
	if err != nil {
		return nil, models.NewInternalError("Server error updating note", err)
	}
	view := updated.View()
	return &view, nil
}

// Delete removes a note the caller owns. Missing and not-owned are reported
// identically as not found.
func (s *NoteService) Delete(ctx context.Context, id, callerID uint) error {
	span, ctx := observability.NewSpan(ctx, "note.delete")
	defer span.End()
	span.AddAttributes(
		attribute.Int("note.id", int(id)),
		attribute.Int("user.id", int(callerID)),
	)

	err := s.notes.DeleteOwned(ctx, id, callerID)
	observability.ObserveNoteOperation("delete", err)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Note not found or you do not have permission to delete it")
		}
		span.SetError(err)
		return models.NewInternalError("Server error deleting note", err)
	}
	cache.InvalidateNote(ctx, id)
	return nil
}

func (s *NoteService) lookupError(err error, failureMessage string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Note not found")
	}
	return models.NewInternalError(failureMessage, err)
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
