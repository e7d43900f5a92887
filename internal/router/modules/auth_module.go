package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/auth-profile-service/internal/interface/http"
	"github.com/oksasatya/auth-profile-service/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  middleware.TokenVerifier
}

func NewAuthModule(h *handlers.AuthHandler, tokens middleware.TokenVerifier) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

// Register mounts /auth. Each route runs validate, then authenticate, then the handler.
func (m *AuthModule) Register(rg *gin.RouterGroup) {
	h := m.Handler
	auth := rg.Group("/auth")

	auth.GET("/signup", h.SignupInfo)
	auth.GET("/login", h.LoginInfo)
	auth.POST("/signup", middleware.ValidateJSON[handlers.SignupRequest](handlers.DescribeSignup), h.Signup)
	auth.POST("/login", middleware.ValidateJSON[handlers.LoginRequest](handlers.DescribeLogin), h.Login)
	auth.POST("/logout", h.Logout)

	guard := middleware.Auth(m.Tokens)
	profile := auth.Group("/profile")
	profile.GET("", guard, h.GetProfile)
	profile.GET("/full", guard, h.GetFullProfile)
	profile.PUT("", middleware.ValidateJSON[handlers.UpdateProfileRequest](handlers.DescribeProfileUpdate), guard, h.UpdateProfile)
	profile.PUT("/password", middleware.ValidateJSON[handlers.UpdatePasswordRequest](handlers.DescribePasswordUpdate), guard, h.UpdatePassword)
	profile.PUT("/avatar", middleware.ValidateJSON[handlers.AvatarRequest](handlers.DescribeAvatar), guard, h.UpdateAvatar)
	profile.POST("/avatar/upload", guard, h.UploadAvatar)
	profile.DELETE("/avatar", guard, h.DeleteAvatar)
}
