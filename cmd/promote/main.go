// Command promote grants the ADMIN base role to a user by email. It is
// used to bootstrap the first administrator.
//
// Usage:
//
//	promote --email=user@example.com
//
// Database settings are read the same way as the server's.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres"
	"github.com/heartmarshall/taskscope-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/taskscope-backend/internal/app"
	"github.com/heartmarshall/taskscope-backend/internal/config"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	promoted, err := user.New(pool).PromoteToAdmin(ctx, *email)
	if err != nil {
		logger.Error("promote user", slog.String("email", *email), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !promoted {
		fmt.Printf("No user found with email %q, or already ADMIN.\n", *email)
		os.Exit(1)
	}

	logger.Info("user promoted", slog.String("email", *email))
}
