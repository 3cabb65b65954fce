package seed

import (
	"context"
	"fmt"
	"log/slog"

	"notevault/internal/middleware"
	"notevault/internal/models"
	"notevault/internal/repository"

	"gorm.io/gorm"
)

// Run populates the database with fake users and notes according to opts.
func Run(db *gorm.DB, opts Options) error {
	ctx := context.Background()
	factory := NewFactory(db, opts)
	notes := repository.NewNoteRepository(db)

	for i := 0; i < opts.Users; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}

		for j := 0; j < opts.NotesPerUser; j++ {
			note := factory.BuildNote(user)
			if err := notes.Create(ctx, note); err != nil {
				return fmt.Errorf("seed note %d for user %d: %w", j, user.ID, err)
			}
		}

		middleware.Logger.Info("seeded user",
			slog.String("username", user.Username),
			slog.Int("notes", opts.NotesPerUser),
		)
	}
	return nil
}

// Count reports how many users and notes currently exist.
func Count(db *gorm.DB) (users, notes int64, err error) {
	if err = db.Model(&models.User{}).Count(&users).Error; err != nil {
		return
	}
	err = db.Model(&models.Note{}).Count(&notes).Error
	return
}
