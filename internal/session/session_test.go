package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mashop/storefront/internal/catalog"
	"github.com/mashop/storefront/internal/models"
)

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.LocalUser{}, &models.Session{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

// fakeRemote serves the auth endpoints the way the remote catalog API does:
// one known account, message bodies on failure.
func fakeRemote(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		if in.Username != "emilys" || in.Password != "emilyspass" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(catalog.LoginResponse{
			ID:           1,
			Username:     "emilys",
			Email:        "emily.johnson@x.dummyjson.com",
			FirstName:    "Emily",
			LastName:     "Johnson",
			AccessToken:  "remote-access",
			RefreshToken: "remote-refresh",
		})
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		if in.RefreshToken != "remote-refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid refresh token"})
			return
		}
		json.NewEncoder(w).Encode(catalog.RefreshResponse{
			AccessToken:  "remote-access-2",
			RefreshToken: "remote-refresh-2",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newStore(t *testing.T) *Store {
	return &Store{
		DB:            InitTestDB(t),
		Catalog:       catalog.NewClient(fakeRemote(t).URL),
		JWTSecret:     []byte("test-secret"),
		AdminUsername: "emilys",
	}
}

func TestLoginRemoteAssignsAdminRole(t *testing.T) {
	store := newStore(t)

	sess, err := store.Login(context.Background(), "emilys", "emilyspass")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	require.Equal(t, "emilys", sess.Username)
	require.Equal(t, "admin", sess.Role)
	require.Equal(t, "remote-access", sess.AccessToken)
	require.Equal(t, "remote-refresh", sess.RefreshToken)
}

func TestLoginMissingCredentials(t *testing.T) {
	store := newStore(t)

	_, err := store.Login(context.Background(), "", "emilyspass")
	require.ErrorIs(t, err, ErrMissingCredentials)
	_, err = store.Login(context.Background(), "emilys", "")
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoginFailureCarriesRemoteMessage(t *testing.T) {
	store := newStore(t)

	_, err := store.Login(context.Background(), "emilys", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "Invalid credentials", authErr.Message)
}

func TestRegisterThenLoginLocally(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.Register(ctx, RegisterInput{
		Username:  "newuser",
		Password:  "hunter22",
		FirstName: "New",
		LastName:  "User",
	})
	require.NoError(t, err)
	require.Equal(t, "user", sess.Role)
	require.Equal(t, "newuser@example.com", sess.Email)
	require.Contains(t, sess.AccessToken, "demo-token-")

	// A registered user can come back through the normal login path.
	again, err := store.Login(ctx, "newuser", "hunter22")
	require.NoError(t, err)
	require.Equal(t, sess.UserID, again.UserID)
	require.NotEqual(t, sess.ID, again.ID)

	_, err = store.Login(ctx, "newuser", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Register(ctx, RegisterInput{Username: "newuser", Password: "hunter22"})
	require.NoError(t, err)
	_, err = store.Register(ctx, RegisterInput{Username: "newuser", Password: "other"})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestLogoutDeletesSession(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)
	require.NoError(t, store.Logout(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRefreshRotatesTokens(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)

	refreshed, err := store.Refresh(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, "remote-access-2", refreshed.AccessToken)
	require.Equal(t, "remote-refresh-2", refreshed.RefreshToken)
}

func TestRefreshWithoutTokenForcesLogout(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// Registered users have no refresh token, so refresh ends the session.
	sess, err := store.Register(ctx, RegisterInput{Username: "newuser", Password: "hunter22"})
	require.NoError(t, err)

	_, err = store.Refresh(ctx, sess.ID)
	require.ErrorIs(t, err, ErrLoggedOut)

	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRefreshFailureForcesLogout(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.Login(ctx, "emilys", "emilyspass")
	require.NoError(t, err)
	require.NoError(t, store.DB.Model(&models.Session{}).
		Where("id = ?", sess.ID).
		Update("refresh_token", "stale").Error)

	_, err = store.Refresh(ctx, sess.ID)
	require.True(t, errors.Is(err, ErrLoggedOut))
	require.Contains(t, err.Error(), "Invalid refresh token")

	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSignAndParseToken(t *testing.T) {
	store := newStore(t)

	sess, err := store.Login(context.Background(), "emilys", "emilyspass")
	require.NoError(t, err)

	token, err := store.SignToken(sess)
	require.NoError(t, err)

	sid, role, err := ParseToken(token, store.JWTSecret)
	require.NoError(t, err)
	require.Equal(t, sess.ID, sid)
	require.Equal(t, "admin", role)

	_, _, err = ParseToken(token, []byte("wrong-secret"))
	require.Error(t, err)
}
