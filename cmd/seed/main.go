// Command main fills the configured database with demo users and comments.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"commentary/internal/config"
	"commentary/internal/database"
	"commentary/internal/middleware"
	"commentary/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	commentsPerUser := flag.Int("comments", 5, "Comments to create per user")
	shouldClean := flag.Bool("clean", false, "Delete existing users and comments first")
	fakerSeed := flag.Int64("seed", 0, "Seed for generated content (0 picks a random one)")
	author := flag.Uint("author", 0, "Add comments to this existing user instead of creating users")
	flag.Parse()

	logger := middleware.Logger

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	ctx := context.Background()
	f := seed.NewFactory(db, *fakerSeed)

	if *shouldClean {
		if err := f.ClearAll(ctx); err != nil {
			logger.Error("Cleanup failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var res seed.Result
	if *author != 0 {
		res, err = f.SeedComments(ctx, *author, *commentsPerUser)
	} else {
		res, err = f.Seed(ctx, *numUsers, *commentsPerUser)
	}
	if err != nil {
		logger.Error("Seeding failed", slog.String("error", err.Error()),
			slog.Int("users", res.Users), slog.Int("comments", res.Comments))
		os.Exit(1)
	}

	logger.Info("Seeding complete", slog.Int("users", res.Users), slog.Int("comments", res.Comments))
}
