package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"showtime-itinerary-service/internal/adapters/repositories"
	"showtime-itinerary-service/internal/config"
	"showtime-itinerary-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool creates the schema and loads the venue seed file into Postgres.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	seedPath := flag.String("seed", cfg.SeedPath, "venue seed JSON file")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	conn, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(conn, *seedPath, *schemaOnly); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, seedPath string, schemaOnly bool) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if schemaOnly {
		return nil
	}

	log.Printf("Seeding database from %s...", seedPath)
	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
