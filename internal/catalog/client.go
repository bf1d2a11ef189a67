package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mashop/storefront/internal/logging"
	"github.com/mashop/storefront/internal/util"
)

// Client talks to the remote catalog API that owns all product, user,
// category and auth data. Each call is a single fresh round trip: no
// retries, no caching.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ListOptions pass limit/skip through to the remote API verbatim.
// Limit 0 requests the entire collection, unpaginated.
type ListOptions struct {
	Limit  int
	Skip   int
	Select string
	SortBy string
	Order  string
}

func (o ListOptions) values() url.Values {
	limit, skip := util.Clamp(o.Limit, o.Skip)
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	if o.Select != "" {
		q.Set("select", o.Select)
	}
	if o.SortBy != "" {
		q.Set("sortBy", o.SortBy)
		order := o.Order
		if order == "" {
			order = "asc"
		}
		q.Set("order", order)
	}
	return q
}

func request[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, header http.Header, fallback string) Result[T] {
	log := logging.FromContext(ctx)

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			log.Error("catalog: encode request", "path", path, "err", err)
			return fail[T](fallback)
		}
		payload = bytes.NewReader(data)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		log.Error("catalog: build request", "path", path, "err", err)
		return fail[T](fallback)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Warn("catalog: request failed", "method", method, "path", path, "err", err)
		return fail[T](fallback)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("catalog: read response", "path", path, "err", err)
		return fail[T](fallback)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("catalog: remote error", "method", method, "path", path, "status", resp.StatusCode)
		return fail[T](remoteMessage(raw, fallback))
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Warn("catalog: decode response", "path", path, "err", err)
		return fail[T](fallback)
	}
	return ok(data)
}

// remoteMessage pulls the message string out of an error body, falling back
// to the operation-specific default when absent or unparseable.
func remoteMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fallback
}
