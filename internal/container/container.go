// Package container holds the infrastructure built at startup so the router can
// wire modules from it. It is constructed once in main and passed explicitly.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auth-profile-service/config"
	"github.com/oksasatya/auth-profile-service/internal/domain/repository"
	"github.com/oksasatya/auth-profile-service/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	PGPool *pgxpool.Pool

	// Users overrides the postgres repository; tests set it to an in-memory store.
	Users repository.UserRepository

	Tokens *helpers.TokenManager
	Hasher *helpers.PasswordHasher

	// Optional; nil when not configured.
	GCS       *storage.Client
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client
}

// Close releases the optional clients. The pool is closed by its owner.
func (c *Container) Close() {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
}
