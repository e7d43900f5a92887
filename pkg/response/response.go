package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope keys every response carries. Extra fields are merged at the top level,
// e.g. {"success":true,"message":"Login successful","user":{...},"token":"..."}.
const (
	keySuccess   = "success"
	keyMessage   = "message"
	keyRequestID = "request_id"
	keyErrors    = "errors"
)

// Body builds the envelope without writing it.
func Body(ctx *gin.Context, success bool, message string, fields gin.H) gin.H {
	body := gin.H{}
	for k, v := range fields {
		body[k] = v
	}
	body[keySuccess] = success
	body[keyMessage] = message
	if rid := ctx.GetString("request_id"); rid != "" {
		body[keyRequestID] = rid
	}
	return body
}

// Success writes a success envelope with the given status and extra fields.
func Success(ctx *gin.Context, status int, message string, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, Body(ctx, true, message, fields))
}

// Error writes a failure envelope and aborts the handler chain.
// details is optional and reported under "errors".
func Error(ctx *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	var fields gin.H
	if details != nil {
		fields = gin.H{keyErrors: details}
	}
	ctx.AbortWithStatusJSON(status, Body(ctx, false, message, fields))
}
