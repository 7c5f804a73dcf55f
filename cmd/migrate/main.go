package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

const usage = `Usage: migrate [flags] <up|down|version>

  up                apply all pending migrations
  up -steps N       apply the next N migrations
  down              roll back the most recent migration
  down -steps N     roll back N migrations
  down -all         roll back every migration
  version           print the current schema version
`

func main() {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	steps := fs.Int("steps", 0, "number of migrations to apply or roll back")
	all := fs.Bool("all", false, "roll back every migration (down only)")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	if len(os.Args) < 2 {
		fs.Usage()
		os.Exit(2)
	}
	command := strings.ToLower(os.Args[1])
	if err := fs.Parse(os.Args[2:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatalf("Migrations are only provided for %s, got %s", config.DriverPostgres, cfg.DB.Driver)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	switch command {
	case database.DirectionUp:
		changed, err := database.Migrate(db.DB, database.DirectionUp, *steps)
		if err != nil {
			l.Fatal("Failed to run migrations", zap.Error(err))
		}
		if !changed {
			fmt.Println("No new migrations to apply")
			return
		}
		fmt.Println("Migrations applied successfully!")

	case database.DirectionDown:
		n := *steps
		if *all {
			n = 0
		} else if n <= 0 {
			n = 1
		}
		changed, err := database.Migrate(db.DB, database.DirectionDown, n)
		if err != nil {
			l.Fatal("Failed to roll back migrations", zap.Error(err))
		}
		switch {
		case !changed:
			fmt.Println("No migrations to roll back")
		case *all:
			fmt.Println("Successfully rolled back all migrations")
		default:
			fmt.Printf("Successfully rolled back %d migration(s)\n", n)
		}

	case "version":
		version, dirty, err := database.Version(db.DB)
		if err != nil {
			l.Fatal("Failed to read schema version", zap.Error(err))
		}
		fmt.Printf("Schema version: %d (dirty: %t)\n", version, dirty)

	default:
		fs.Usage()
		os.Exit(2)
	}
}
