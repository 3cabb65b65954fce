// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"notevault/internal/models"

	"gorm.io/gorm"
)

// NoteRepository defines the interface for note data operations. Lookup
// methods return gorm.ErrRecordNotFound both when a note does not exist and
// when the caller's constraint excludes it; the service layer maps that to the
// caller-facing error.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	// GetVisible returns the note only if the caller owns it or it is public.
	// callerID zero means anonymous.
	GetVisible(ctx context.Context, id, callerID uint) (*models.Note, error)
	// GetOwned returns the note only if the caller owns it.
	GetOwned(ctx context.Context, id, callerID uint) (*models.Note, error)
	List(ctx context.Context, filter NoteFilter, limit, offset int) ([]models.Note, error)
	Count(ctx context.Context, filter NoteFilter) (int64, error)
	Update(ctx context.Context, note *models.Note) error
	// DeleteOwned removes the note constrained to the caller's ownership in a
	// single find-and-delete; gorm.ErrRecordNotFound when nothing matched.
	DeleteOwned(ctx context.Context, id, callerID uint) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// withAuthor preloads the author reduced to the fields exposed in responses.
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username")
	})
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return err
		}
		return replaceTags(tx, note.ID, note.Tags)
	})
}

func (r *noteRepository) GetVisible(ctx context.Context, id, callerID uint) (*models.Note, error) {
	var note models.Note
	err := withAuthor(r.db.WithContext(ctx)).
		Where("id = ? AND (author_id = ? OR is_public = ?)", id, callerID, true).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, []*models.Note{&note}); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) GetOwned(ctx context.Context, id, callerID uint) (*models.Note, error) {
	var note models.Note
	err := withAuthor(r.db.WithContext(ctx)).
		Where("id = ? AND author_id = ?", id, callerID).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	if err := r.loadTags(ctx, []*models.Note{&note}); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) List(ctx context.Context, filter NoteFilter, limit, offset int) ([]models.Note, error) {
	var notes []models.Note
	err := filter.Apply(withAuthor(r.db.WithContext(ctx))).
		// id breaks updated_at ties deterministically
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}

	refs := make([]*models.Note, len(notes))
	for i := range notes {
		refs[i] = &notes[i]
	}
	if err := r.loadTags(ctx, refs); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Count(ctx context.Context, filter NoteFilter) (int64, error) {
	var total int64
	err := filter.Apply(r.db.WithContext(ctx).Model(&models.Note{})).Count(&total).Error
	return total, err
}

func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(note).Error; err != nil {
			return err
		}
		return replaceTags(tx, note.ID, note.Tags)
	})
}

func (r *noteRepository) DeleteOwned(ctx context.Context, id, callerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND author_id = ?", id, callerID).Delete(&models.Note{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("note_id = ?", id).Delete(&models.NoteTag{}).Error
	})
}

// replaceTags rewrites the tag rows of a note to match tags, preserving order.
func replaceTags(tx *gorm.DB, noteID uint, tags []string) error {
	if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	rows := make([]models.NoteTag, 0, len(tags))
	for i, tag := range tags {
		rows = append(rows, models.NoteTag{NoteID: noteID, Position: i, Tag: tag})
	}
	return tx.Create(&rows).Error
}

// loadTags hydrates Tags for every note in a single query.
func (r *noteRepository) loadTags(ctx context.Context, notes []*models.Note) error {
	if len(notes) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}

	var rows []models.NoteTag
	if err := r.db.WithContext(ctx).
		Where("note_id IN ?", ids).
		Order("note_id, position").
		Find(&rows).Error; err != nil {
		return err
	}

	byNote := make(map[uint][]string, len(notes))
	for _, row := range rows {
		byNote[row.NoteID] = append(byNote[row.NoteID], row.Tag)
	}
	for _, n := range notes {
		if tags, ok := byNote[n.ID]; ok {
			n.Tags = tags
		} else {
			n.Tags = []string{}
		}
	}
	return nil
}
