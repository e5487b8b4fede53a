// Command migrate runs schema operations for the application database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"quill/internal/config"
	"quill/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <init|auto>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close(db)

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "init":
		// Destructive: drops and recreates the user and post tables.
		if err := database.InitSchema(db); err != nil {
			return fmt.Errorf("schema init failed: %w", err)
		}
		log.Println("schema initialized")
	case "auto":
		// Connect already ran AutoMigrate outside production; nothing more to do.
		log.Println("automigrations applied")
	default:
		return usage()
	}
	return nil
}
