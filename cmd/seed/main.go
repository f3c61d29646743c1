// Command seed runs the database seeder for Cloudzz Links.
package main

import (
	"flag"
	"log"

	"cloudzz/internal/config"
	"cloudzz/internal/database"
	"cloudzz/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	linksPerUser := flag.Int("links", 8, "Maximum links per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)
	if _, err := s.Run(seed.Options{
		NumUsers:     *numUsers,
		LinksPerUser: *linksPerUser,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. All demo users have the password: password123")
}
