package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
	"github.com/oksasatya/auth-profile-service/internal/domain/repository"
	"github.com/oksasatya/auth-profile-service/pkg/helpers"
)

func newIntegrationRepo(t *testing.T) *UserRepository {
	t.Helper()
	if os.Getenv("RUN_PG_INTEGRATION") != "true" {
		t.Skip("set RUN_PG_INTEGRATION=true to run postgres integration tests")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Fatal("DATABASE_URL is required when RUN_PG_INTEGRATION=true")
	}
	if err := RunMigrations(dsn, "../../../db/migrations", helpers.NewDiscardLogger()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := NewPool(ctx, dsn, PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return NewUserRepository(pool)
}

func uniqueEmail() string {
	return "it-" + strings.ReplaceAll(uuid.NewString(), "-", "") + "@example.com"
}

func TestUserRepositoryLifecycle(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	u := &entity.User{Email: uniqueEmail(), Password: "hash", FirstName: "Jo", LastName: "Ann", IsActive: true}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" || u.Role != entity.RoleUser || u.CreatedAt.IsZero() {
		t.Fatalf("created user %+v", u)
	}

	dup := &entity.User{Email: u.Email, Password: "hash", FirstName: "Jo", LastName: "Ann", IsActive: true}
	if err := repo.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("duplicate create: err = %v", err)
	}

	byEmail, err := repo.FindByEmail(ctx, u.Email)
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("find by email = %+v, %v", byEmail, err)
	}

	bio, phone := "hello", "+14155552671"
	updated, err := repo.UpdateByID(ctx, u.ID, repository.UserPatch{Bio: &bio, Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if *updated.Bio != bio || *updated.Phone != phone || updated.FirstName != "Jo" {
		t.Fatalf("updated %+v", updated)
	}
	if !updated.UpdatedAt.After(u.UpdatedAt) {
		t.Fatalf("updated_at %v not after %v", updated.UpdatedAt, u.UpdatedAt)
	}

	empty := ""
	again, err := repo.UpdateByID(ctx, u.ID, repository.UserPatch{Bio: &empty})
	if err != nil {
		t.Fatalf("clear bio: %v", err)
	}
	if again.Bio != nil || again.Phone == nil {
		t.Fatalf("cleared %+v", again)
	}
	if !again.UpdatedAt.After(updated.UpdatedAt) {
		t.Fatal("updated_at must strictly increase")
	}
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		if _, err := repo.FindByID(ctx, id); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("FindByID(%q) err = %v", id, err)
		}
		name := "Jo"
		if _, err := repo.UpdateByID(ctx, id, repository.UserPatch{FirstName: &name}); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("UpdateByID(%q) err = %v", id, err)
		}
	}
	if _, err := repo.FindByEmail(ctx, uniqueEmail()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("FindByEmail err = %v", err)
	}
}
