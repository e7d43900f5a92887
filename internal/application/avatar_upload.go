package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/oksasatya/auth-profile-service/internal/domain/apperror"
	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
)

const (
	MsgAvatarFileRequired = "Avatar file is required"
	MsgAvatarTooLarge     = "Avatar file is too large"
	MsgAvatarType         = "Avatar must be a JPEG, PNG, GIF or WebP image"
)

var ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")

var avatarExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadAvatar stores an image in object storage and saves its URL as the avatar.
// The content type is sniffed from the bytes; the declared one is ignored.
func (s *AuthService) UploadAvatar(ctx context.Context, userID string, r io.Reader) (*entity.User, error) {
	if s.Avatars == nil {
		return nil, apperror.Internal("upload avatar", ErrAvatarStorageDisabled)
	}
	if r == nil {
		return nil, apperror.Validation(MsgAvatarFileRequired)
	}

	limit := s.AvatarMaxBytes
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, apperror.Internal("read avatar", err)
	}
	if len(data) == 0 {
		return nil, apperror.Validation(MsgAvatarFileRequired)
	}
	if int64(len(data)) > limit {
		return nil, apperror.Validation(MsgAvatarTooLarge)
	}

	ct := http.DetectContentType(data)
	ext, ok := avatarExt[ct]
	if !ok {
		return nil, apperror.Validation(MsgAvatarType)
	}

	objectPath := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
	url, err := s.Avatars.Put(ctx, objectPath, ct, bytes.NewReader(data))
	if err != nil {
		return nil, apperror.Internal("store avatar", err)
	}
	s.Logger.WithField("user_id", userID).WithField("object", objectPath).Info("avatar uploaded")
	return s.setAvatar(ctx, userID, url)
}
