// Command seed populates the database with demo users and books for local
// development.
package main

import (
	"flag"
	"log"

	"pustaka/internal/config"
	"pustaka/internal/database"
	"pustaka/internal/seed"
)

func main() {
	users := flag.Int("users", 5, "number of demo users to create")
	books := flag.Int("books", 4, "number of books per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	factory := seed.NewFactory(db)
	if err := factory.Run(*users, *books); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users with %d books each", *users, *books)
}
