package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"notevault/internal/database"
	"notevault/internal/models"
	"notevault/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (*NoteService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, database.Migrate(db))
	return NewNoteService(repository.NewNoteRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hashed"}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func appErrCode(t *testing.T, err error) string {
	var appErr *models.AppError
	assert.True(t, errors.As(err, &appErr), "expected *models.AppError, got %v", err)
	return appErr.Code
}

func TestNoteServiceListPagination(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	user := seedUser(t, db, "pager")

	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, user.ID, CreateNoteInput{
			Title:   fmt.Sprintf("Note %02d", i),
			Content: "body",
		})
		assert.NoError(t, err)
	}

	t.Run("First Page", func(t *testing.T) {
		resp, err := svc.ListOwned(ctx, user.ID, ListParams{Page: 1, Limit: 10})
		assert.NoError(t, err)
		assert.Len(t, resp.Notes, 10)
		assert.Equal(t, 3, resp.TotalPages)
		assert.Equal(t, 1, resp.CurrentPage)
		assert.Equal(t, int64(25), resp.Total)
	})

	t.Run("Last Page Is Partial", func(t *testing.T) {
		resp, err := svc.ListOwned(ctx, user.ID, ListParams{Page: 3, Limit: 10})
		assert.NoError(t, err)
		assert.Len(t, resp.Notes, 5)
		assert.Equal(t, 3, resp.CurrentPage)
	})

	t.Run("Page Past End Is Empty", func(t *testing.T) {
		resp, err := svc.ListOwned(ctx, user.ID, ListParams{Page: 9, Limit: 10})
		assert.NoError(t, err)
		assert.Empty(t, resp.Notes)
		assert.NotNil(t, resp.Notes)
		assert.Equal(t, int64(25), resp.Total)
	})

	t.Run("Zero And Negative Params Are Clamped", func(t *testing.T) {
		resp, err := svc.ListOwned(ctx, user.ID, ListParams{Page: -2, Limit: 0})
		assert.NoError(t, err)
		assert.Len(t, resp.Notes, 10)
		assert.Equal(t, 1, resp.CurrentPage)
	})

	t.Run("Limit Capped At 100", func(t *testing.T) {
		resp, err := svc.ListOwned(ctx, user.ID, ListParams{Page: 1, Limit: 5000})
		assert.NoError(t, err)
		assert.Len(t, resp.Notes, 25)
		assert.Equal(t, 1, resp.TotalPages)
	})
}

func TestNoteServiceListEmpty(t *testing.T) {
	svc, db := setupService(t)
	user := seedUser(t, db, "empty")

	resp, err := svc.ListOwned(context.Background(), user.ID, ListParams{})
	assert.NoError(t, err)
	assert.NotNil(t, resp.Notes)
	assert.Empty(t, resp.Notes)
	assert.Equal(t, 0, resp.TotalPages)
	assert.Equal(t, int64(0), resp.Total)
}

func TestNoteServiceListPublic(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	user := seedUser(t, db, "author")

	_, err := svc.Create(ctx, user.ID, CreateNoteInput{Title: "Open", Content: "a", IsPublic: true})
	assert.NoError(t, err)
	_, err = svc.Create(ctx, user.ID, CreateNoteInput{Title: "Closed", Content: "b"})
	assert.NoError(t, err)

	resp, err := svc.ListPublic(ctx, ListParams{})
	assert.NoError(t, err)
	assert.Len(t, resp.Notes, 1)
	assert.Equal(t, "Open", resp.Notes[0].Title)
	assert.Equal(t, user.ID, resp.Notes[0].Author.ID)
	assert.Equal(t, "author", resp.Notes[0].Author.Username)
}

func TestNoteServiceGet(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")

	private, err := svc.Create(ctx, owner.ID, CreateNoteInput{Title: "Private", Content: "x"})
	assert.NoError(t, err)
	public, err := svc.Create(ctx, owner.ID, CreateNoteInput{Title: "Public", Content: "y", IsPublic: true})
	assert.NoError(t, err)

	t.Run("Owner Reads Private Note", func(t *testing.T) {
		view, err := svc.Get(ctx, private.ID, owner.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Private", view.Title)
	})

	t.Run("Anonymous Reads Public Note", func(t *testing.T) {
		view, err := svc.Get(ctx, public.ID, 0)
		assert.NoError(t, err)
		assert.Equal(t, "Public", view.Title)
	})

	t.Run("Non-Owner Gets Not Found For Private Note", func(t *testing.T) {
		_, err := svc.Get(ctx, private.ID, other.ID)
		assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
	})

	t.Run("Missing Note Gets Same Not Found", func(t *testing.T) {
		_, err := svc.Get(ctx, 9999, other.ID)
		assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
	})
}

func TestNoteServiceCreate(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	user := seedUser(t, db, "writer")

	t.Run("Success", func(t *testing.T) {
		view, err := svc.Create(ctx, user.ID, CreateNoteInput{
			Title:   "  Grocery List  ",
			Content: "milk",
			Tags:    []string{" work ", "", "urgent"},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Grocery List", view.Title)
		assert.Equal(t, []string{"work", "urgent"}, view.Tags)
		assert.False(t, view.IsPublic)
		assert.Equal(t, "writer", view.Author.Username)
	})

	t.Run("Missing Title", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, CreateNoteInput{Content: "body"})
		assert.Equal(t, models.CodeValidation, appErrCode(t, err))
		assert.Contains(t, err.Error(), "Title and content are required")
	})

	t.Run("Missing Content", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, CreateNoteInput{Title: "only title"})
		assert.Equal(t, models.CodeValidation, appErrCode(t, err))
	})

	t.Run("Title Too Long", func(t *testing.T) {
		_, err := svc.Create(ctx, user.ID, CreateNoteInput{
			Title:   strings.Repeat("a", 101),
			Content: "body",
		})
		assert.Equal(t, models.CodeValidation, appErrCode(t, err))
		assert.Contains(t, err.Error(), "100 characters or less")
	})
}

func TestNoteServiceUpdate(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")

	note, err := svc.Create(ctx, owner.ID, CreateNoteInput{
		Title:   "Original",
		Content: "original content",
		Tags:    []string{"draft"},
	})
	assert.NoError(t, err)

	t.Run("Partial Update Leaves Other Fields", func(t *testing.T) {
		title := "Renamed"
		view, err := svc.Update(ctx, note.ID, owner.ID, UpdateNoteInput{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", view.Title)
		assert.Equal(t, "original content", view.Content)
		assert.Equal(t, []string{"draft"}, view.Tags)
	})

	t.Run("Visibility Toggle Only", func(t *testing.T) {
		public := true
		view, err := svc.Update(ctx, note.ID, owner.ID, UpdateNoteInput{IsPublic: &public})
		assert.NoError(t, err)
		assert.True(t, view.IsPublic)
		assert.Equal(t, "Renamed", view.Title)
		assert.Equal(t, "original content", view.Content)
	})

	t.Run("Tags Replaced Wholesale", func(t *testing.T) {
		tags := []string{"final", "shipped"}
		view, err := svc.Update(ctx, note.ID, owner.ID, UpdateNoteInput{Tags: &tags})
		assert.NoError(t, err)
		assert.Equal(t, []string{"final", "shipped"}, view.Tags)
	})

	t.Run("Invalid Title Rejected", func(t *testing.T) {
		empty := "   "
		_, err := svc.Update(ctx, note.ID, owner.ID, UpdateNoteInput{Title: &empty})
		assert.Equal(t, models.CodeValidation, appErrCode(t, err))
	})

	t.Run("Non-Owner Cannot Update Even Public Note", func(t *testing.T) {
		title := "Hijacked"
		_, err := svc.Update(ctx, note.ID, other.ID, UpdateNoteInput{Title: &title})
		assert.Equal(t, models.CodeNotFound, appErrCode(t, err))

		view, err := svc.Get(ctx, note.ID, owner.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", view.Title)
	})
}

func TestNoteServiceDelete(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")

	note, err := svc.Create(ctx, owner.ID, CreateNoteInput{Title: "Doomed", Content: "x", IsPublic: true})
	assert.NoError(t, err)

	t.Run("Non-Owner Delete Is Not Found", func(t *testing.T) {
		err := svc.Delete(ctx, note.ID, other.ID)
		assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
	})

	t.Run("Owner Delete", func(t *testing.T) {
		assert.NoError(t, svc.Delete(ctx, note.ID, owner.ID))

		_, err := svc.Get(ctx, note.ID, owner.ID)
		assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
	})

	t.Run("Delete Twice Is Not Found", func(t *testing.T) {
		err := svc.Delete(ctx, note.ID, owner.ID)
		assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
	})
}
