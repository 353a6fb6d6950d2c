package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/saxansaxo/backend/db"
	"github.com/saxansaxo/backend/internal/config"
	"github.com/saxansaxo/backend/internal/db"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database initialized successfully.")
}
