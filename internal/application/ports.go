package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
	"github.com/oksasatya/auth-profile-service/pkg/helpers"
)

// PasswordHasher is satisfied by *helpers.PasswordHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenIssuer is satisfied by *helpers.TokenManager.
type TokenIssuer interface {
	Issue(c helpers.TokenClaims) (string, time.Time, error)
}

// NotificationPublisher enqueues account emails; satisfied by *helpers.RabbitPublisher.
type NotificationPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ProfileIndexer mirrors sanitized profiles into a search index.
type ProfileIndexer interface {
	IndexProfile(ctx context.Context, u *entity.User) error
}

// ObjectStore stores avatar images and returns their public URL; satisfied by *helpers.GCSObjectStore.
type ObjectStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}
