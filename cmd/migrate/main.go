package main

// Run database migrations:
//   go run ./cmd/migrate          # up
//   go run ./cmd/migrate down     # roll back the last migration
//   go run ./cmd/migrate version  # print the schema version

import (
	"context"
	"log"
	"os"

	"elevate-backend/internal/shared/config"
	"elevate-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch command {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackLast(ctx, sqlDB)
	case "version":
		var v int64
		v, err = db.Version(ctx, sqlDB)
		if err == nil {
			log.Printf("schema version %d", v)
		}
	default:
		log.Printf("unknown command %q (want up, down or version)", command)
		sqlDB.Close()
		os.Exit(2)
	}
	if err != nil {
		log.Printf("migrate %s failed: %v", command, err)
		sqlDB.Close()
		os.Exit(1)
	}
}
