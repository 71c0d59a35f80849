// Command adduser provisions an account from the terminal, for setups
// where self-registration is disabled at the proxy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	username := flag.String("username", "", "username for the new account")
	password := flag.String("password", "", "password for the new account")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: adduser -username NAME -password SECRET")
		os.Exit(2)
	}
	if len(*password) < auth.MinPasswordLength {
		fmt.Fprintf(os.Stderr, "password must be at least %d characters\n", auth.MinPasswordLength)
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		os.Exit(1)
	}

	user, err := repo.CreateUser(context.Background(), *username, hash)
	if err != nil {
		logger.Error("Failed to create user", "error", err, "username", *username)
		os.Exit(1)
	}

	fmt.Printf("created user %s (id %d)\n", user.Username, user.ID)
}
