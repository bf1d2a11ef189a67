package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mashop/storefront/internal/models"
	"github.com/mashop/storefront/internal/session"
)

const (
	CookieName = "sessionToken"
	contextKey = "session"
)

type SessionMiddleware struct {
	Sessions *session.Store
}

// RequireLogin resolves the session cookie into the stored session and puts
// it on the request context. Anonymous requests get a 401.
func (m *SessionMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := m.resolve(c)
		if err != nil {
			return err
		}
		c.Set(contextKey, sess)
		return next(c)
	}
}

// AdminOnly additionally gates on the client-visible admin role.
func (m *SessionMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := m.resolve(c)
		if err != nil {
			return err
		}
		if sess.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights")
		}
		c.Set(contextKey, sess)
		return next(c)
	}
}

func (m *SessionMiddleware) resolve(c echo.Context) (models.Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return models.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}
	if cookie.Value == "" {
		return models.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}

	sid, _, err := session.ParseToken(cookie.Value, m.Sessions.JWTSecret)
	if err != nil {
		return models.Session{}, echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	sess, err := m.Sessions.Get(c.Request().Context(), sid)
	if err != nil {
		return models.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "session expired")
	}
	return sess, nil
}

// CurrentSession reads the session a middleware stored on the context.
func CurrentSession(c echo.Context) (models.Session, bool) {
	sess, ok := c.Get(contextKey).(models.Session)
	return sess, ok
}
