package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/auth-profile-service/internal/interface/http"
)

// HealthModule serves GET /health under /api.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule { return &HealthModule{Handler: h} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Health)
}

// RootModule serves the GET / banner.
type RootModule struct {
	Handler *handlers.HealthHandler
}

func NewRootModule(h *handlers.HealthHandler) *RootModule { return &RootModule{Handler: h} }

func (m *RootModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Root)
}
