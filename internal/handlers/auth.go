package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mashop/storefront/internal/activity"
	"github.com/mashop/storefront/internal/catalog"
	mwauth "github.com/mashop/storefront/internal/middleware/auth"
	"github.com/mashop/storefront/internal/session"
)

type AuthHandler struct {
	Sessions *session.Store
	Catalog  *catalog.Client
	Activity *activity.Recorder
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.Sessions.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		var authErr *session.AuthError
		switch {
		case errors.Is(err, session.ErrMissingCredentials):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.As(err, &authErr):
			return echo.NewHTTPError(http.StatusUnauthorized, authErr.Message)
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	token, err := h.Sessions.SignToken(sess)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.SetCookie(CreateCookie(mwauth.CookieName, token, "/", time.Now().Add(7*24*time.Hour)))

	record(c, h.Activity, sess.Username, "login",
		fmt.Sprintf("User %s logged in", sess.Username), nil)

	return c.JSON(http.StatusOK, echo.Map{
		"user":     sess,
		"role":     sess.Role,
		"is_admin": sess.Role == "admin",
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req session.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.Sessions.Register(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrMissingCredentials):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, session.ErrUserExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	token, err := h.Sessions.SignToken(sess)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.SetCookie(CreateCookie(mwauth.CookieName, token, "/", time.Now().Add(7*24*time.Hour)))

	record(c, h.Activity, sess.Username, "register",
		fmt.Sprintf("User %s registered", sess.Username), nil)

	return c.JSON(http.StatusOK, echo.Map{"user": sess, "role": sess.Role})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	sess, ok := mwauth.CurrentSession(c)
	if ok {
		if err := h.Sessions.Logout(c.Request().Context(), sess.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(mwauth.CookieName, "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Refresh rotates the remote tokens behind the current session. A failure
// clears the session cookie: the caller is anonymous again.
func (h *AuthHandler) Refresh(c echo.Context) error {
	sess, ok := mwauth.CurrentSession(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}

	refreshed, err := h.Sessions.Refresh(c.Request().Context(), sess.ID)
	if err != nil {
		expired := time.Now().Add(-1 * time.Hour)
		c.SetCookie(CreateCookie(mwauth.CookieName, "", "/", expired))
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"user": refreshed})
}

// Me returns the stored session identity. With ?fresh=true a remote-backed
// session re-reads the profile from the catalog API instead.
func (h *AuthHandler) Me(c echo.Context) error {
	sess, ok := mwauth.CurrentSession(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing auth cookie")
	}

	if c.QueryParam("fresh") == "true" && sess.RefreshToken != "" {
		res := h.Catalog.Me(c.Request().Context(), sess.AccessToken)
		if !res.Success {
			return echo.NewHTTPError(http.StatusBadGateway, res.Error)
		}
		return c.JSON(http.StatusOK, res.Data)
	}

	return c.JSON(http.StatusOK, sess)
}
