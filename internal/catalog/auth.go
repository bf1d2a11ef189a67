package catalog

import (
	"context"
	"net/http"
)

const tokenExpiresInMins = 60

type LoginResponse struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Gender       string `json:"gender"`
	Image        string `json:"image"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (c *Client) Login(ctx context.Context, username, password string) Result[LoginResponse] {
	body := map[string]any{
		"username":      username,
		"password":      password,
		"expiresInMins": tokenExpiresInMins,
	}
	return request[LoginResponse](ctx, c, http.MethodPost, "/auth/login", nil, body, nil, "Login failed")
}

func (c *Client) Me(ctx context.Context, accessToken string) Result[User] {
	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer "+accessToken)
	return request[User](ctx, c, http.MethodGet, "/auth/me", nil, nil, hdr, "Failed to get user")
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) Result[RefreshResponse] {
	body := map[string]any{
		"refreshToken":  refreshToken,
		"expiresInMins": tokenExpiresInMins,
	}
	return request[RefreshResponse](ctx, c, http.MethodPost, "/auth/refresh", nil, body, nil, "Token refresh failed")
}
