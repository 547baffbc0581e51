// Command main runs the database seeder for the Małopolska Outdoor API.
package main

import (
	"flag"
	"log"

	"szlak/internal/config"
	"szlak/internal/database"
	"szlak/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of demo users to create")
	demo := flag.Bool("demo", false, "Also generate demo users with preferences and progress")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Reference(db); err != nil {
		log.Fatalf("Reference seeding failed: %v", err)
	}
	log.Println("Activity catalogue and challenges are in place.")

	if *demo {
		if err := seed.Demo(db, seed.DemoOptions{NumUsers: *numUsers}); err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
		log.Printf("Created %d demo users. All demo accounts share the password: wedrowiec123", *numUsers)
	}
}
