package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auth-profile-service/internal/application"
	"github.com/oksasatya/auth-profile-service/internal/interface/middleware"
	"github.com/oksasatya/auth-profile-service/pkg/response"
)

const (
	MsgSignupOK          = "User created successfully"
	MsgLoginOK           = "Login successful"
	MsgLogoutOK          = "Logout successful"
	MsgProfileOK         = "Profile retrieved successfully"
	MsgProfileUpdatedOK  = "Profile updated successfully"
	MsgPasswordUpdatedOK = "Password updated successfully"
	MsgAvatarUpdatedOK   = "Avatar updated successfully"
	MsgAvatarRemovedOK   = "Avatar removed successfully"
)

// multipart overhead allowed on top of the avatar size limit
const uploadSlack = 64 << 10

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
	Dev    bool
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, dev bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Dev: dev}
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	writeError(c, h.Logger, h.Dev, err)
}

func (h *AuthHandler) identity(c *gin.Context) (application.Identity, bool) {
	id, ok := application.IdentityFrom(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, middleware.MsgTokenRequired, nil)
	}
	return id, ok
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	req, _ := middleware.Payload[SignupRequest](c)
	h.Logger.WithFields(logrus.Fields{"email": req.Email, "request_id": c.GetString(middleware.KeyRequestID)}).Debug("signup attempt")

	res, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, MsgSignupOK, gin.H{"user": res.User, "token": res.Token, "expiresAt": res.ExpiresAt})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	req, _ := middleware.Payload[LoginRequest](c)
	h.Logger.WithFields(logrus.Fields{"email": req.Email, "request_id": c.GetString(middleware.KeyRequestID)}).Debug("login attempt")

	res, err := h.Svc.Login(c.Request.Context(), application.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgLoginOK, gin.H{"user": res.User, "token": res.Token, "expiresAt": res.ExpiresAt})
}

// Logout POST /api/auth/logout. Clients drop the token; nothing is revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgLogoutOK, nil)
}

// LoginInfo GET /api/auth/login
func (h *AuthHandler) LoginInfo(c *gin.Context) {
	response.Success(c, http.StatusOK, "Login route is working. Use POST /api/auth/login to authenticate.", nil)
}

// SignupInfo GET /api/auth/signup
func (h *AuthHandler) SignupInfo(c *gin.Context) {
	response.Success(c, http.StatusOK, "Signup route is working. Use POST /api/auth/signup to create an account.", nil)
}

// GetProfile GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	id, err := h.Svc.GetProfile(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgProfileOK, gin.H{"user": id})
}

// GetFullProfile GET /api/auth/profile/full
func (h *AuthHandler) GetFullProfile(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetFullProfile(c.Request.Context(), id.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgProfileOK, gin.H{"user": u})
}

// UpdateProfile PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	req, _ := middleware.Payload[UpdateProfileRequest](c)
	u, err := h.Svc.UpdateProfile(c.Request.Context(), id.ID, application.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Phone:     req.Phone,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgProfileUpdatedOK, gin.H{"user": u})
}

// UpdatePassword PUT /api/auth/profile/password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	req, _ := middleware.Payload[UpdatePasswordRequest](c)
	err := h.Svc.UpdatePassword(c.Request.Context(), id.ID, application.UpdatePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgPasswordUpdatedOK, nil)
}

// UpdateAvatar PUT /api/auth/profile/avatar
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	req, _ := middleware.Payload[AvatarRequest](c)
	u, err := h.Svc.UpdateAvatar(c.Request.Context(), id.ID, req.Avatar)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgAvatarUpdatedOK, gin.H{"user": u})
}

// UploadAvatar POST /api/auth/profile/avatar/upload (multipart field "avatar")
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.AvatarMaxBytes+uploadSlack)
	fh, err := c.FormFile("avatar")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, application.MsgAvatarTooLarge, nil)
			return
		}
		response.Error(c, http.StatusBadRequest, application.MsgAvatarFileRequired, nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Svc.UploadAvatar(c.Request.Context(), id.ID, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgAvatarUpdatedOK, gin.H{"user": u})
}

// DeleteAvatar DELETE /api/auth/profile/avatar
func (h *AuthHandler) DeleteAvatar(c *gin.Context) {
	id, ok := h.identity(c)
	if !ok {
		return
	}
	u, err := h.Svc.DeleteAvatar(c.Request.Context(), id.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, MsgAvatarRemovedOK, gin.H{"user": u})
}
