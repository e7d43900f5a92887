package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var errNoStore = errors.New("database not configured")

// Pinger is satisfied by the postgres user repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB         Pinger
	Logger     *logrus.Logger
	Env        string
	Version    string
	Production bool
	Timeout    time.Duration
}

func NewHealthHandler(db Pinger, logger *logrus.Logger, env, version string, production bool) *HealthHandler {
	return &HealthHandler{DB: db, Logger: logger, Env: env, Version: version, Production: production, Timeout: 2 * time.Second}
}

// Root GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Backend is working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"version":   h.Version,
	})
}

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.Timeout)
	defer cancel()

	err := errNoStore
	if h.DB != nil {
		err = h.DB.Ping(ctx)
	}
	if err != nil {
		h.Logger.WithError(err).Warn("health check: database unreachable")
		body := gin.H{
			"success":  false,
			"status":   "ERROR",
			"database": "Disconnected",
		}
		if !h.Production {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
		"database":    "Connected",
		"environment": h.Env,
	})
}
