// Command seed populates the development database with fake users and notes.
package main

import (
	"flag"
	"log"

	"notevault/internal/config"
	"notevault/internal/database"
	"notevault/internal/seed"
)

func main() {
	users := flag.Int("users", 5, "number of users to create")
	notes := flag.Int("notes", 20, "number of notes per user")
	password := flag.String("password", "notevault", "password for every seeded user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		Users:        *users,
		NotesPerUser: *notes,
		Password:     *password,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	userCount, noteCount, err := seed.Count(db)
	if err != nil {
		log.Fatalf("Failed to count seeded data: %v", err)
	}
	log.Printf("Done: %d users, %d notes in database", userCount, noteCount)
}
