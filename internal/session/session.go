package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mashop/storefront/internal/catalog"
	"github.com/mashop/storefront/internal/hash"
	"github.com/mashop/storefront/internal/models"
)

// TokenTTL matches the expiresInMins the remote auth endpoint is asked for.
const TokenTTL = time.Hour

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrUserExists         = errors.New("user already exists")
	// ErrLoggedOut signals a forced transition back to Anonymous, e.g. a
	// failed token refresh.
	ErrLoggedOut = errors.New("session expired")
)

// AuthError carries the user-facing message from a failed remote auth call.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Store is the two-state session machine: Anonymous until a successful
// login or register, Authenticated until logout or a failed refresh.
// Exactly one session row backs each issued session cookie.
type Store struct {
	DB            *gorm.DB
	Catalog       *catalog.Client
	JWTSecret     []byte
	AdminUsername string
}

// roleFor derives the client-visible role. The admin-username match is a
// demo convenience carried over from the original, not a security boundary.
func (s *Store) roleFor(username string) string {
	if username != "" && username == s.AdminUsername {
		return "admin"
	}
	return "user"
}

// Login authenticates against locally registered users first, then the
// remote auth endpoint. On success it persists the identity and tokens and
// returns the new Authenticated session.
func (s *Store) Login(ctx context.Context, username, password string) (models.Session, error) {
	if username == "" || password == "" {
		return models.Session{}, ErrMissingCredentials
	}

	var local models.LocalUser
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&local).Error
	if err == nil {
		if !hash.CheckPassword(local.PasswordHash, password) {
			return models.Session{}, &AuthError{Message: "Invalid credentials"}
		}
		return s.create(ctx, models.Session{
			UserID:      int(local.ID),
			Username:    local.Username,
			Email:       local.Email,
			FirstName:   local.FirstName,
			LastName:    local.LastName,
			Image:       s.iconURL(local.Username),
			Role:        s.roleFor(local.Username),
			AccessToken: placeholderToken(),
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Session{}, err
	}

	res := s.Catalog.Login(ctx, username, password)
	if !res.Success {
		return models.Session{}, &AuthError{Message: res.Error}
	}

	data := res.Data
	return s.create(ctx, models.Session{
		UserID:       data.ID,
		Username:     data.Username,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Gender:       data.Gender,
		Image:        data.Image,
		Role:         s.roleFor(data.Username),
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	})
}

type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Register is a local stand-in: the remote API has no real registration
// endpoint, so the identity is synthesized here and stored with a bcrypt
// hash, which also lets the user log back in later.
func (s *Store) Register(ctx context.Context, in RegisterInput) (models.Session, error) {
	if in.Username == "" || in.Password == "" {
		return models.Session{}, ErrMissingCredentials
	}

	var existing models.LocalUser
	err := s.DB.WithContext(ctx).Where("username = ?", in.Username).First(&existing).Error
	if err == nil {
		return models.Session{}, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Session{}, err
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return models.Session{}, err
	}

	email := in.Email
	if email == "" {
		email = in.Username + "@example.com"
	}

	user := models.LocalUser{
		Username:     in.Username,
		PasswordHash: pwHash,
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         "user",
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return models.Session{}, err
	}

	return s.create(ctx, models.Session{
		UserID:      int(user.ID),
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Image:       s.iconURL(user.Username),
		Role:        user.Role,
		AccessToken: placeholderToken(),
	})
}

func (s *Store) Logout(ctx context.Context, sessionID string) error {
	return s.DB.WithContext(ctx).
		Where("id = ?", sessionID).
		Delete(&models.Session{}).Error
}

// Refresh rotates the remote tokens in place. A missing refresh token or a
// failed remote call forces logout; there is no silent retry loop.
func (s *Store) Refresh(ctx context.Context, sessionID string) (models.Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}

	if sess.RefreshToken == "" {
		if err := s.Logout(ctx, sessionID); err != nil {
			return models.Session{}, err
		}
		return models.Session{}, ErrLoggedOut
	}

	res := s.Catalog.Refresh(ctx, sess.RefreshToken)
	if !res.Success {
		if err := s.Logout(ctx, sessionID); err != nil {
			return models.Session{}, err
		}
		return models.Session{}, fmt.Errorf("%w: %s", ErrLoggedOut, res.Error)
	}

	sess.AccessToken = res.Data.AccessToken
	sess.RefreshToken = res.Data.RefreshToken
	if err := s.DB.WithContext(ctx).Save(&sess).Error; err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (models.Session, error) {
	var sess models.Session
	if err := s.DB.WithContext(ctx).Where("id = ?", sessionID).First(&sess).Error; err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *Store) create(ctx context.Context, sess models.Session) (models.Session, error) {
	sess.ID = uuid.NewString()
	if err := s.DB.WithContext(ctx).Create(&sess).Error; err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *Store) iconURL(username string) string {
	return fmt.Sprintf("%s/icon/%s/128", s.Catalog.BaseURL, username)
}

func placeholderToken() string {
	return fmt.Sprintf("demo-token-%d", time.Now().UnixMilli())
}
