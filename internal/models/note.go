package models

import (
	"time"
)

// Note represents a single note owned by exactly one user. Ownership is
// immutable after creation; is_public only ever grants read access to
// non-owners, never write access. Notes are hard-deleted, so there is no
// DeletedAt column.
type Note struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"-"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"-"`
	// Tags is hydrated from the note_tags table by the repository; it is not
	// a column on notes itself.
	Tags      []string  `gorm:"-" json:"tags"`
	IsPublic  bool      `gorm:"not null;default:false;index" json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteTag is a child row holding one tag of one note. Position preserves the
// order tags were supplied in.
type NoteTag struct {
	ID       uint   `gorm:"primaryKey"`
	NoteID   uint   `gorm:"not null;index:idx_note_tags_note_id;index:idx_note_tags_tag,priority:2"`
	Position int    `gorm:"not null"`
	Tag      string `gorm:"size:64;not null;index:idx_note_tags_tag,priority:1"`
}

// NoteView is the wire representation of a note with its author reduced to
// {id, username}.
type NoteView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    AuthorRef `json:"author"`
	Tags      []string  `json:"tags"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View converts the note into its wire representation.
func (n *Note) View() NoteView {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteView{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Author:    n.Author.Ref(),
		Tags:      tags,
		IsPublic:  n.IsPublic,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NoteViews converts a slice of notes, always yielding a non-nil slice so list
// responses marshal as [] rather than null.
func NoteViews(notes []Note) []NoteView {
	views := make([]NoteView, 0, len(notes))
	for i := range notes {
		views = append(views, notes[i].View())
	}
	return views
}

// NoteListResponse is the envelope returned by both list endpoints.
type NoteListResponse struct {
	Notes       []NoteView `json:"notes"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	Total       int64      `json:"total"`
}
