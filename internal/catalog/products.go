package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand,omitempty"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (c *Client) Products(ctx context.Context, opts ListOptions) Result[ProductList] {
	return request[ProductList](ctx, c, http.MethodGet, "/products", opts.values(), nil, nil, "Failed to fetch products")
}

func (c *Client) Product(ctx context.Context, id int) Result[Product] {
	return request[Product](ctx, c, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, nil, "Failed to fetch product")
}

func (c *Client) SearchProducts(ctx context.Context, query string, opts ListOptions) Result[ProductList] {
	q := opts.values()
	q.Set("q", query)
	return request[ProductList](ctx, c, http.MethodGet, "/products/search", q, nil, nil, "Search failed")
}

func (c *Client) ProductsByCategory(ctx context.Context, category string, opts ListOptions) Result[ProductList] {
	path := "/products/category/" + url.PathEscape(category)
	return request[ProductList](ctx, c, http.MethodGet, path, opts.values(), nil, nil, "Failed to fetch products by category")
}

func (c *Client) Categories(ctx context.Context) Result[[]Category] {
	return request[[]Category](ctx, c, http.MethodGet, "/products/categories", nil, nil, nil, "Failed to fetch categories")
}

func (c *Client) AddProduct(ctx context.Context, product Product) Result[Product] {
	return request[Product](ctx, c, http.MethodPost, "/products/add", nil, product, nil, "Failed to add product")
}

func (c *Client) UpdateProduct(ctx context.Context, id int, fields map[string]any) Result[Product] {
	return request[Product](ctx, c, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, fields, nil, "Failed to update product")
}

func (c *Client) DeleteProduct(ctx context.Context, id int) Result[Product] {
	return request[Product](ctx, c, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil, "Failed to delete product")
}
