package catalog

import (
	"context"
	"fmt"
	"net/http"
)

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`
	Age       int    `json:"age,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type UserList struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

type Post struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	UserID int      `json:"userId"`
	Tags   []string `json:"tags,omitempty"`
}

type PostList struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

type Todo struct {
	ID        int    `json:"id"`
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

type TodoList struct {
	Todos []Todo `json:"todos"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

func (c *Client) Users(ctx context.Context, opts ListOptions) Result[UserList] {
	return request[UserList](ctx, c, http.MethodGet, "/users", opts.values(), nil, nil, "Failed to fetch users")
}

func (c *Client) User(ctx context.Context, id int) Result[User] {
	return request[User](ctx, c, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, nil, "Failed to fetch user")
}

func (c *Client) SearchUsers(ctx context.Context, query string, opts ListOptions) Result[UserList] {
	q := opts.values()
	q.Set("q", query)
	return request[UserList](ctx, c, http.MethodGet, "/users/search", q, nil, nil, "Search failed")
}

// FilterUsers matches a single remote field exactly, e.g. key "hair.color".
func (c *Client) FilterUsers(ctx context.Context, key, value string, opts ListOptions) Result[UserList] {
	q := opts.values()
	q.Set("key", key)
	q.Set("value", value)
	return request[UserList](ctx, c, http.MethodGet, "/users/filter", q, nil, nil, "Filter failed")
}

func (c *Client) AddUser(ctx context.Context, fields map[string]any) Result[User] {
	return request[User](ctx, c, http.MethodPost, "/users/add", nil, fields, nil, "Failed to add user")
}

func (c *Client) UpdateUser(ctx context.Context, id int, fields map[string]any) Result[User] {
	return request[User](ctx, c, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, fields, nil, "Failed to update user")
}

func (c *Client) DeleteUser(ctx context.Context, id int) Result[User] {
	return request[User](ctx, c, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil, "Failed to delete user")
}

func (c *Client) UserCarts(ctx context.Context, userID int) Result[RemoteCartList] {
	return request[RemoteCartList](ctx, c, http.MethodGet, fmt.Sprintf("/users/%d/carts", userID), nil, nil, nil, "Failed to fetch user carts")
}

func (c *Client) UserPosts(ctx context.Context, userID int, opts ListOptions) Result[PostList] {
	return request[PostList](ctx, c, http.MethodGet, fmt.Sprintf("/users/%d/posts", userID), opts.values(), nil, nil, "Failed to fetch user posts")
}

func (c *Client) UserTodos(ctx context.Context, userID int) Result[TodoList] {
	return request[TodoList](ctx, c, http.MethodGet, fmt.Sprintf("/users/%d/todos", userID), nil, nil, nil, "Failed to fetch user todos")
}
