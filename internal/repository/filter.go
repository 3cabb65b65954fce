package repository

import (
	"strings"

	"gorm.io/gorm"
)

// NoteFilter is an immutable description of which notes a query may see.
// It is produced by pure constructors from (caller, params) so the
// access-control rules can be inspected and tested apart from the storage
// engine.
type NoteFilter struct {
	// AuthorID restricts results to notes owned by this user. Zero means no
	// ownership restriction.
	AuthorID uint
	// PublicOnly restricts results to notes with is_public set.
	PublicOnly bool
	// Search restricts results to notes whose title or content contains the
	// term, case-insensitively.
	Search string
	// Tags restricts results to notes whose tag set intersects this list.
	Tags []string
}

// OwnedNotes builds the filter for the authenticated list operation: only the
// caller's notes, optionally narrowed by search term and tag intersection.
func OwnedNotes(callerID uint, search string, tags []string) NoteFilter {
	return NoteFilter{
		AuthorID: callerID,
		Search:   strings.TrimSpace(search),
		Tags:     tags,
	}
}

// PublicNotes builds the filter for the anonymous list operation: public notes
// only, optionally narrowed by search term. Tag filtering is not offered on
// the public listing.
func PublicNotes(search string) NoteFilter {
	return NoteFilter{
		PublicOnly: true,
		Search:     strings.TrimSpace(search),
	}
}

// Apply translates the filter into WHERE clauses on the given query. It never
// mutates the filter, so the same value can drive both the page query and the
// pre-pagination count.
func (f NoteFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.AuthorID != 0 {
		db = db.Where("notes.author_id = ?", f.AuthorID)
	}
	if f.PublicOnly {
		db = db.Where("notes.is_public = ?", true)
	}
	if f.Search != "" {
		// LOWER+LIKE instead of ILIKE so the same clause runs on Postgres and
		// the sqlite test driver.
		like := "%" + strings.ToLower(f.Search) + "%"
		db = db.Where("LOWER(notes.title) LIKE ? OR LOWER(notes.content) LIKE ?", like, like)
	}
	if len(f.Tags) > 0 {
		db = db.Where(
			"EXISTS (SELECT 1 FROM note_tags WHERE note_tags.note_id = notes.id AND note_tags.tag IN ?)",
			f.Tags,
		)
	}
	return db
}
