package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lawfirm-cms/internal/config"
	"lawfirm-cms/internal/database"
	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/repository"
)

const bcryptCost = 12

// seed creates or resets an admin account. User management is deliberately
// out of band; the API itself never creates users.
func main() {
	username := flag.String("username", "", "account username")
	password := flag.String("password", "", "account password")
	role := flag.String("role", "admin", "account role (admin or editor)")
	flag.Parse()

	if strings.TrimSpace(*username) == "" || *password == "" {
		slog.Error("both -username and -password are required")
		os.Exit(1)
	}
	if *role != "admin" && *role != "editor" {
		slog.Error("role must be admin or editor", "role", *role)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("schema initialization failed", "error", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
	if err != nil {
		slog.Error("password hashing failed", "error", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(*username),
		PasswordHash: string(hash),
		Role:         *role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repository.NewUserRepository(db.Pool).Upsert(ctx, user); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("account seeded", "username", user.Username, "role", user.Role)
}
