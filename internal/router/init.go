package router

import (
	"github.com/oksasatya/auth-profile-service/internal/application"
	"github.com/oksasatya/auth-profile-service/internal/container"
	"github.com/oksasatya/auth-profile-service/internal/infrastructure/postgres"
	"github.com/oksasatya/auth-profile-service/internal/infrastructure/search"
	handlers "github.com/oksasatya/auth-profile-service/internal/interface/http"
	"github.com/oksasatya/auth-profile-service/internal/router/modules"
	"github.com/oksasatya/auth-profile-service/pkg/helpers"
	"github.com/oksasatya/auth-profile-service/pkg/mailer/templates"
)

// AuthDeps is everything the auth and health modules are built from.
type AuthDeps struct {
	Service *application.AuthService
	Handler *handlers.AuthHandler
	Health  *handlers.HealthHandler
}

// BuildAuthDeps wires the auth service from the container. Optional clients
// left nil in the container disable the matching side effect.
func BuildAuthDeps(c *container.Container) AuthDeps {
	cfg := c.Config
	users := c.Users
	if users == nil {
		users = postgres.NewUserRepository(c.PGPool)
	}

	svc := application.NewAuthService(users, c.Hasher, c.Tokens, c.Logger)
	if cfg.AvatarMaxBytes > 0 {
		svc.AvatarMaxBytes = cfg.AvatarMaxBytes
	}
	svc.Brand = templates.Brand{AppName: cfg.AppName, CompanyName: cfg.CompanyName, SupportURL: cfg.SupportURL}
	if c.GCS != nil && cfg.GCSBucket != "" {
		svc.Avatars = helpers.NewGCSObjectStore(c.GCS, cfg.GCSBucket)
	}
	if c.ES != nil && cfg.ESUsersIndex != "" {
		svc.Indexer = search.NewProfileIndexer(c.ES, cfg.ESUsersIndex)
	}
	if c.RabbitPub != nil && cfg.MailSendEnabled {
		svc.Events = c.RabbitPub
	}

	var pinger handlers.Pinger
	if p, ok := users.(handlers.Pinger); ok {
		pinger = p
	}

	return AuthDeps{
		Service: svc,
		Handler: handlers.NewAuthHandler(svc, c.Logger, cfg.IsDevelopment()),
		Health:  handlers.NewHealthHandler(pinger, c.Logger, cfg.Env, cfg.AppVersion, cfg.IsProduction()),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) AuthDeps {
	deps := BuildAuthDeps(c)
	r.AddRoot(modules.NewRootModule(deps.Health))
	r.Add(modules.NewHealthModule(deps.Health))
	r.Add(modules.NewAuthModule(deps.Handler, c.Tokens))
	return deps
}
