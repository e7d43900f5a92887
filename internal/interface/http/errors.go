package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auth-profile-service/internal/domain/apperror"
	"github.com/oksasatya/auth-profile-service/internal/interface/middleware"
	"github.com/oksasatya/auth-profile-service/pkg/response"
)

const MsgInternal = "Internal server error"

func statusOf(k apperror.Kind) int {
	switch k {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindDuplicateEmail:
		return http.StatusConflict
	case apperror.KindInvalidCredentials, apperror.KindMissingToken, apperror.KindInvalidToken:
		return http.StatusUnauthorized
	case apperror.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err onto the error taxonomy. Internal failures are logged and
// only described to the client in development.
func writeError(c *gin.Context, logger *logrus.Logger, dev bool, err error) {
	kind := apperror.KindOf(err)
	status := statusOf(kind)
	if status != http.StatusInternalServerError {
		response.Error(c, status, apperror.MessageOf(err), nil)
		return
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"request_id": c.GetString(middleware.KeyRequestID),
		"user_id":    c.GetString(middleware.KeyUserID),
		"path":       c.FullPath(),
	}).Error("request failed")

	msg := MsgInternal
	if dev {
		msg = err.Error()
	}
	response.Error(c, status, msg, nil)
}
