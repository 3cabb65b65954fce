package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteView(t *testing.T) {
	note := Note{
		ID:      1,
		Title:   "Grocery List",
		Content: "milk",
		Author:  User{ID: 7, Username: "casey", Email: "casey@example.com", Password: "hash"},
	}

	view := note.View()
	assert.Equal(t, AuthorRef{ID: 7, Username: "casey"}, view.Author)

	b, err := json.Marshal(view)
	assert.NoError(t, err)

	var out map[string]any
	assert.NoError(t, json.Unmarshal(b, &out))

	// nil tags marshal as an empty array, never null
	assert.Equal(t, []any{}, out["tags"])

	// the author is reduced to id and username
	author := out["author"].(map[string]any)
	assert.Len(t, author, 2)
	assert.NotContains(t, author, "email")
}

func TestNoteViewsAlwaysNonNil(t *testing.T) {
	views := NoteViews(nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)

	b, err := json.Marshal(NoteListResponse{Notes: views})
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"notes":[]`)
}

func TestUserJSONHidesPassword(t *testing.T) {
	b, err := json.Marshal(User{ID: 7, Username: "casey", Password: "hash"})
	assert.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.NotContains(t, string(b), "password")
}

func TestAppErrorStatusMapping(t *testing.T) {
	assert.Equal(t, 400, NewValidationError("bad").Status())
	assert.Equal(t, 404, NewNotFoundError("missing").Status())
	assert.Equal(t, 401, NewUnauthorizedError("who").Status())
	assert.Equal(t, 500, NewInternalError("boom", assert.AnError).Status())
}
