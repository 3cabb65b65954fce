// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"notevault/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	Users        int
	NotesPerUser int
	// MaxDays spreads note timestamps over this many days in the past.
	MaxDays int
	// Password is the raw password given to every seeded user.
	Password string
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.Password == "" {
		opts.Password = "notevault"
	}
	return &Factory{
		db:   db,
		opts: opts,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var tagPool = []string{
	"work", "personal", "urgent", "ideas", "todo", "home",
	"recipes", "travel", "reading", "finance",
}

// CreateUser persists one fake user.
func (f *Factory) CreateUser() (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.rand.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
	}
	if len(user.Username) > 20 {
		user.Username = user.Username[:20]
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildNote constructs a note for the given user without persisting it.
func (f *Factory) BuildNote(user *models.User) *models.Note {
	note := &models.Note{
		Title:    gofakeit.Sentence(4),
		Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
		AuthorID: user.ID,
		IsPublic: f.rand.Intn(4) == 0, // roughly a quarter public
		Tags:     f.randomTags(),
	}
	if len(note.Title) > 100 {
		note.Title = note.Title[:100]
	}

	// realistic created_at spread
	daysBack := f.rand.Intn(f.opts.MaxDays)
	hoursBack := f.rand.Intn(24)
	note.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	return note
}

func (f *Factory) randomTags() []string {
	n := f.rand.Intn(4) // 0..3 tags
	tags := make([]string, 0, n)
	seen := map[string]struct{}{}
	for len(tags) < n {
		tag := tagPool[f.rand.Intn(len(tagPool))]
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
