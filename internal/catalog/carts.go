package catalog

import (
	"context"
	"fmt"
	"net/http"
)

// RemoteCart is a cart owned by the remote API, distinct from the locally
// persisted cart the storefront maintains.
type RemoteCart struct {
	ID              int                 `json:"id"`
	Products        []RemoteCartProduct `json:"products"`
	Total           float64             `json:"total"`
	DiscountedTotal float64             `json:"discountedTotal"`
	UserID          int                 `json:"userId"`
	TotalProducts   int                 `json:"totalProducts"`
	TotalQuantity   int                 `json:"totalQuantity"`
}

type RemoteCartProduct struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	Total              float64 `json:"total"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Thumbnail          string  `json:"thumbnail"`
}

type RemoteCartList struct {
	Carts []RemoteCart `json:"carts"`
	Total int          `json:"total"`
	Skip  int          `json:"skip"`
	Limit int          `json:"limit"`
}

type RemoteCartPayload struct {
	UserID   int                 `json:"userId"`
	Products []RemoteCartProduct `json:"products"`
}

func (c *Client) Carts(ctx context.Context, opts ListOptions) Result[RemoteCartList] {
	return request[RemoteCartList](ctx, c, http.MethodGet, "/carts", opts.values(), nil, nil, "Failed to fetch carts")
}

func (c *Client) Cart(ctx context.Context, id int) Result[RemoteCart] {
	return request[RemoteCart](ctx, c, http.MethodGet, fmt.Sprintf("/carts/%d", id), nil, nil, nil, "Failed to fetch cart")
}

func (c *Client) CartsByUser(ctx context.Context, userID int) Result[RemoteCartList] {
	return request[RemoteCartList](ctx, c, http.MethodGet, fmt.Sprintf("/carts/user/%d", userID), nil, nil, nil, "Failed to fetch user carts")
}

func (c *Client) AddCart(ctx context.Context, payload RemoteCartPayload) Result[RemoteCart] {
	return request[RemoteCart](ctx, c, http.MethodPost, "/carts/add", nil, payload, nil, "Failed to add cart")
}

func (c *Client) UpdateCart(ctx context.Context, id int, payload RemoteCartPayload) Result[RemoteCart] {
	return request[RemoteCart](ctx, c, http.MethodPut, fmt.Sprintf("/carts/%d", id), nil, payload, nil, "Failed to update cart")
}

func (c *Client) DeleteCart(ctx context.Context, id int) Result[RemoteCart] {
	return request[RemoteCart](ctx, c, http.MethodDelete, fmt.Sprintf("/carts/%d", id), nil, nil, nil, "Failed to delete cart")
}
