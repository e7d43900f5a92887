package handlers

import (
	"github.com/oksasatya/auth-profile-service/internal/application"
	"github.com/oksasatya/auth-profile-service/pkg/validation"
)

const MsgInvalidPayload = "Invalid request payload"

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required,name"`
	LastName  string `json:"lastName" binding:"required,name"`
	Password  string `json:"password" binding:"required,pwd,pwdmax"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest fields are checked one by one in the service so each
// gets its own message.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
	Phone     *string `json:"phone"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd,pwdmax"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// firstFailure returns the message of the first tag in order that err failed on.
func firstFailure(err error, order []string, messages map[string]string) string {
	if validation.IsPayloadError(err) {
		return MsgInvalidPayload
	}
	for _, tag := range order {
		if validation.HasTag(err, tag) {
			return messages[tag]
		}
	}
	return MsgInvalidPayload
}

func DescribeSignup(err error) string {
	return firstFailure(err,
		[]string{"required", "email", "pwd", "pwdmax", "name"},
		map[string]string{
			"required": application.MsgAllFieldsRequired,
			"email":    application.MsgInvalidEmail,
			"pwd":      application.MsgPasswordTooShort,
			"pwdmax":   application.MsgPasswordTooLong,
			"name":     application.MsgNamesTooShort,
		})
}

func DescribeLogin(err error) string {
	return firstFailure(err, []string{"required"}, map[string]string{"required": application.MsgLoginFieldsRequired})
}

func DescribePasswordUpdate(err error) string {
	return firstFailure(err,
		[]string{"required", "eqfield", "pwd", "pwdmax"},
		map[string]string{
			"required": application.MsgPasswordFieldsRequired,
			"eqfield":  application.MsgPasswordsMismatch,
			"pwd":      application.MsgNewPasswordTooShort,
			"pwdmax":   application.MsgNewPasswordTooLong,
		})
}

func DescribeAvatar(err error) string {
	return firstFailure(err, []string{"required"}, map[string]string{"required": application.MsgAvatarRequired})
}

func DescribeProfileUpdate(error) string { return MsgInvalidPayload }
