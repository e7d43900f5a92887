package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auth-profile-service/internal/domain/apperror"
	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
	"github.com/oksasatya/auth-profile-service/internal/domain/repository"
	"github.com/oksasatya/auth-profile-service/pkg/helpers"
	"github.com/oksasatya/auth-profile-service/pkg/mailer"
	"github.com/oksasatya/auth-profile-service/pkg/mailer/templates"
	"github.com/oksasatya/auth-profile-service/pkg/validation"
)

// Client-facing messages.
const (
	MsgAllFieldsRequired      = "All fields are required"
	MsgInvalidEmail           = "Please provide a valid email address"
	MsgPasswordTooShort       = "Password must be at least 6 characters long"
	MsgPasswordTooLong        = "Password must be at most 72 bytes long"
	MsgNamesTooShort          = "First name and last name must be at least 2 characters long"
	MsgLoginFieldsRequired    = "Email and password are required"
	MsgDuplicateEmail         = "User with this email already exists"
	MsgInvalidCredentials     = "Invalid email or password"
	MsgUserNotFound           = "User not found"
	MsgFirstNameTooShort      = "First name must be at least 2 characters long"
	MsgLastNameTooShort       = "Last name must be at least 2 characters long"
	MsgBioTooLong             = "Bio must be less than 500 characters"
	MsgInvalidPhone           = "Please provide a valid phone number"
	MsgPasswordFieldsRequired = "All password fields are required"
	MsgPasswordsMismatch      = "New passwords do not match"
	MsgNewPasswordTooShort    = "New password must be at least 6 characters long"
	MsgNewPasswordTooLong     = "New password must be at most 72 bytes long"
	MsgWrongCurrentPassword   = "Current password is incorrect"
	MsgAvatarRequired         = "Avatar URL is required"
	MsgInvalidAvatarURL       = "Please provide a valid avatar URL"
)

const sideEffectTimeout = 3 * time.Second

type SignupInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries only the fields present in the request.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Phone     *string
}

type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// AuthService implements account creation, authentication and profile management.
type AuthService struct {
	Repo   repository.UserRepository
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *logrus.Logger

	// Optional collaborators; nil disables the feature.
	Events  NotificationPublisher
	Indexer ProfileIndexer
	Avatars ObjectStore

	Brand          templates.Brand
	AvatarMaxBytes int64

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(repo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &AuthService{
		Repo:           repo,
		Hasher:         hasher,
		Tokens:         tokens,
		Logger:         logger,
		AvatarMaxBytes: 2 << 20,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := NormalizeEmail(in.Email)
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)

	switch {
	case email == "" || first == "" || last == "" || in.Password == "":
		return nil, apperror.Validation(MsgAllFieldsRequired)
	case !validation.IsEmail(email):
		return nil, apperror.Validation(MsgInvalidEmail)
	case len([]rune(in.Password)) < validation.MinPasswordLen:
		return nil, apperror.Validation(MsgPasswordTooShort)
	case len(in.Password) > validation.MaxPasswordBytes:
		return nil, apperror.Validation(MsgPasswordTooLong)
	case !validation.IsName(first) || !validation.IsName(last):
		return nil, apperror.Validation(MsgNamesTooShort)
	}

	if _, err := s.Repo.FindByEmail(ctx, email); err == nil {
		return nil, apperror.DuplicateEmail(MsgDuplicateEmail)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, s.storeErr("lookup user by email", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}

	u := &entity.User{
		Email:     email,
		Password:  hash,
		FirstName: first,
		LastName:  last,
		Role:      entity.RoleUser,
		IsActive:  true,
	}
	// The unique index still arbitrates concurrent signups for the same email.
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, s.storeErr("create user", err)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user signed up")
	s.afterMutation(ctx, u, templates.Welcome)
	return res, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperror.Validation(MsgLoginFieldsRequired)
	}

	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, s.storeErr("lookup user by email", err)
	}
	if u == nil || !u.IsActive {
		// Burn a comparison so unknown and inactive accounts cost the same as a wrong password.
		_, _ = s.Hasher.Verify(in.Password, s.dummy())
		return nil, apperror.InvalidCredentials(MsgInvalidCredentials)
	}

	ok, err := s.Hasher.Verify(in.Password, u.Password)
	if err != nil {
		return nil, apperror.Internal("verify password", err)
	}
	if !ok {
		return nil, apperror.InvalidCredentials(MsgInvalidCredentials)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user logged in")
	return res, nil
}

// Logout acknowledges a logout. Tokens are not revoked and stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context) error {
	if id, ok := IdentityFrom(ctx); ok {
		s.Logger.WithField("user_id", id.ID).Debug("logout acknowledged")
	}
	return nil
}

// GetProfile returns the identity resolved by the access guard without touching the store.
func (s *AuthService) GetProfile(ctx context.Context) (Identity, error) {
	id, ok := IdentityFrom(ctx)
	if !ok {
		return Identity{}, apperror.MissingToken("Access token required")
	}
	return id, nil
}

func (s *AuthService) GetFullProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return nil, s.storeErr("find user by id", err)
	}
	return u.Sanitized(), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	var patch repository.UserPatch

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if !validation.IsName(v) {
			return nil, apperror.Validation(MsgFirstNameTooShort)
		}
		patch.FirstName = &v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if !validation.IsName(v) {
			return nil, apperror.Validation(MsgLastNameTooShort)
		}
		patch.LastName = &v
	}
	if in.Bio != nil {
		v := strings.TrimSpace(*in.Bio)
		if len([]rune(v)) > validation.MaxBioLen {
			return nil, apperror.Validation(MsgBioTooLong)
		}
		patch.Bio = &v
	}
	if in.Phone != nil {
		v := strings.TrimSpace(*in.Phone)
		if v != "" && !validation.IsPhone(v) {
			return nil, apperror.Validation(MsgInvalidPhone)
		}
		patch.Phone = &v
	}

	// An empty patch still refreshes updated_at through the store.
	u, err := s.Repo.UpdateByID(ctx, userID, patch)
	if err != nil {
		return nil, s.storeErr("update profile", err)
	}
	s.afterMutation(ctx, u, "")
	return u.Sanitized(), nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID string, in UpdatePasswordInput) error {
	switch {
	case in.CurrentPassword == "" || in.NewPassword == "" || in.ConfirmPassword == "":
		return apperror.Validation(MsgPasswordFieldsRequired)
	case in.NewPassword != in.ConfirmPassword:
		return apperror.Validation(MsgPasswordsMismatch)
	case len([]rune(in.NewPassword)) < validation.MinPasswordLen:
		return apperror.Validation(MsgNewPasswordTooShort)
	case len(in.NewPassword) > validation.MaxPasswordBytes:
		return apperror.Validation(MsgNewPasswordTooLong)
	}

	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return s.storeErr("find user by id", err)
	}
	ok, err := s.Hasher.Verify(in.CurrentPassword, u.Password)
	if err != nil {
		return apperror.Internal("verify password", err)
	}
	if !ok {
		return apperror.InvalidCredentials(MsgWrongCurrentPassword)
	}

	hash, err := s.Hasher.Hash(in.NewPassword)
	if err != nil {
		return apperror.Internal("hash password", err)
	}
	u, err = s.Repo.UpdateByID(ctx, userID, repository.UserPatch{Password: &hash})
	if err != nil {
		return s.storeErr("update password", err)
	}
	s.Logger.WithField("user_id", userID).Info("password updated")
	s.afterMutation(ctx, u, templates.PasswordChanged)
	return nil
}

func (s *AuthService) UpdateAvatar(ctx context.Context, userID, avatar string) (*entity.User, error) {
	v := strings.TrimSpace(avatar)
	if v == "" {
		return nil, apperror.Validation(MsgAvatarRequired)
	}
	if !validation.IsURL(v) {
		return nil, apperror.Validation(MsgInvalidAvatarURL)
	}
	return s.setAvatar(ctx, userID, v)
}

// DeleteAvatar clears the avatar. Clearing an absent avatar succeeds.
func (s *AuthService) DeleteAvatar(ctx context.Context, userID string) (*entity.User, error) {
	return s.setAvatar(ctx, userID, "")
}

func (s *AuthService) setAvatar(ctx context.Context, userID, v string) (*entity.User, error) {
	u, err := s.Repo.UpdateByID(ctx, userID, repository.UserPatch{Avatar: &v})
	if err != nil {
		return nil, s.storeErr("update avatar", err)
	}
	s.afterMutation(ctx, u, "")
	return u.Sanitized(), nil
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	tok, exp, err := s.Tokens.Issue(helpers.TokenClaims{UserID: u.ID, Email: u.Email, Role: string(u.Role)})
	if err != nil {
		return nil, apperror.Internal("issue token", err)
	}
	return &AuthResult{User: u.Sanitized(), Token: tok, ExpiresAt: exp}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("not-a-real-password")
		if err != nil {
			helpers.LogError(s.Logger, "dummy hash failed", err, nil)
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// storeErr maps repository failures onto the error taxonomy.
func (s *AuthService) storeErr(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(MsgUserNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperror.DuplicateEmail(MsgDuplicateEmail)
	default:
		return apperror.Internal(op, err)
	}
}

// afterMutation runs the best-effort side effects of a successful write.
// template selects the account notification; "" sends none.
func (s *AuthService) afterMutation(ctx context.Context, u *entity.User, template string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if s.Indexer != nil {
		if err := s.Indexer.IndexProfile(ctx, u.Sanitized()); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("profile indexing failed")
		}
	}
	if s.Events != nil && template != "" {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: template,
			Data:     templates.NewAccountData(s.Brand, u.FirstName, u.Email, time.Now()).ToMap(),
		}
		if err := s.Events.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": u.ID, "template": template}).Warn("notification publish failed")
		}
	}
}
