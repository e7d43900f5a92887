package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auth-profile-service/config"
	"github.com/oksasatya/auth-profile-service/internal/application"
	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
	"github.com/oksasatya/auth-profile-service/internal/domain/repository"
	pginfra "github.com/oksasatya/auth-profile-service/internal/infrastructure/postgres"
	"github.com/oksasatya/auth-profile-service/pkg/helpers"
)

// seed creates a demo admin account. Re-running it leaves an existing account untouched.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "password123", "admin password")
	first := flag.String("first", "Demo", "first name")
	last := flag.String("last", "Admin", "last name")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	repo := pginfra.NewUserRepository(pool)

	normalized := application.NormalizeEmail(*email)
	if u, err := repo.FindByEmail(ctx, normalized); err == nil {
		logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email, "role": u.Role}).Info("user already seeded")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		logger.Fatalf("lookup: %v", err)
	}

	hash, err := helpers.NewPasswordHasher(cfg.BcryptCost).Hash(*password)
	if err != nil {
		logger.Fatalf("failed to hash password: %v", err)
	}
	u := &entity.User{
		Email:     normalized,
		Password:  hash,
		FirstName: *first,
		LastName:  *last,
		Role:      entity.RoleAdmin,
		IsActive:  true,
	}
	if err := repo.Create(ctx, u); err != nil {
		logger.Fatalf("failed to seed user: %v", err)
	}
	logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email, "role": u.Role}).Info("seeded admin user")
}
