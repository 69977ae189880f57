package main

import (
	"flag"
	"log"
	"os"

	"quizly/internal/database"
)

// Standalone migration runner. It deliberately does not go through
// config.LoadConfig, which requires API keys the migration step does
// not need.
func main() {
	dbPath := flag.String("db", "quizly.db", "path to the sqlite database file")
	migrationsDir := flag.String("dir", "database/migrations", "path to the migration files")
	flag.Parse()

	path := *dbPath
	if envPath := os.Getenv("DB_PATH"); envPath != "" {
		path = envPath
	}

	db, err := database.NewSQLXSQLiteDB(path)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", path, err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, *migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("Migrations applied to %s", path)
}
