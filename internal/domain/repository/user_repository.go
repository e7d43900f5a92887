package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
)

var (
	// ErrNotFound indicates no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail indicates the unique email constraint rejected a write.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserPatch lists the columns an update touches. A nil field is left as is.
// For the nullable columns (Bio, Phone, Avatar) a pointer to "" stores NULL.
// Role and activation state are deliberately absent.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Phone     *string
	Avatar    *string
	Password  *string
}

// Empty reports whether the patch changes no column.
func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Bio == nil &&
		p.Phone == nil && p.Avatar == nil && p.Password == nil
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, patch UserPatch) (*entity.User, error)
}
