package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
	"github.com/oksasatya/auth-profile-service/internal/domain/repository"
)

const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, first_name, last_name, bio, phone, avatar,
	role, is_active, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// withConn runs fn on a pooled connection that is released when fn returns.
func (r *UserRepository) withConn(ctx context.Context, fn func(*pgxpool.Conn) error) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()
	return fn(conn)
}

// Ping checks that the database answers.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.withConn(ctx, func(c *pgxpool.Conn) error {
		return c.Ping(ctx)
	})
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	err := r.withConn(ctx, func(c *pgxpool.Conn) error {
		return c.QueryRow(ctx, `
			INSERT INTO users (id, email, password_hash, first_name, last_name, bio, phone, avatar, role, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at
		`, u.ID, u.Email, u.Password, u.FirstName, u.LastName, u.Bio, u.Phone, u.Avatar, string(u.Role), u.IsActive,
		).Scan(&u.CreatedAt, &u.UpdatedAt)
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u *entity.User
	err := r.withConn(ctx, func(c *pgxpool.Conn) error {
		var err error
		u, err = scanUser(c.QueryRow(ctx, query, arg))
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateByID writes only the patched columns. updated_at always moves forward,
// even when two updates land in the same clock tick.
func (r *UserRepository) UpdateByID(ctx context.Context, id string, p repository.UserPatch) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	sets := []string{"updated_at = GREATEST(now(), updated_at + interval '1 microsecond')"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.FirstName != nil {
		add("first_name", *p.FirstName)
	}
	if p.LastName != nil {
		add("last_name", *p.LastName)
	}
	if p.Password != nil {
		add("password_hash", *p.Password)
	}
	if p.Bio != nil {
		add("bio", nullIfEmpty(*p.Bio))
	}
	if p.Phone != nil {
		add("phone", nullIfEmpty(*p.Phone))
	}
	if p.Avatar != nil {
		add("avatar", nullIfEmpty(*p.Avatar))
	}

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + userColumns
	var u *entity.User
	err := r.withConn(ctx, func(c *pgxpool.Conn) error {
		var err error
		u, err = scanUser(c.QueryRow(ctx, query, args...))
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Bio, &u.Phone, &u.Avatar, &role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.UserRepository = (*UserRepository)(nil)
