// Command seed populates a development database with fake users and posts.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	postsPerUser := flag.Int("posts", 8, "Maximum posts per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	password := flag.String("password", "", "Password for all seeded users (default secret123)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(db, seed.Options{
		NumUsers:     *numUsers,
		PostsPerUser: *postsPerUser,
		ShouldClean:  *shouldClean,
		Password:     *password,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
