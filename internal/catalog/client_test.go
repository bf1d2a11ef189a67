package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestProductsSuccess(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ProductList{
			Products: []Product{{ID: 1, Title: "Wireless Mouse"}},
			Total:    1,
			Limit:    30,
			Skip:     0,
		})
	}))

	res := client.Products(context.Background(), ListOptions{Limit: 30})
	require.True(t, res.Success)
	require.Empty(t, res.Error)
	require.Len(t, res.Data.Products, 1)
	require.Equal(t, "Wireless Mouse", res.Data.Products[0].Title)
	require.Contains(t, gotQuery, "limit=30")
}

func TestLimitZeroRequestsWholeCollection(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ProductList{})
	}))

	res := client.Products(context.Background(), ListOptions{Limit: 0, Skip: 0})
	require.True(t, res.Success)
	require.Contains(t, gotQuery, "limit=0")
	require.Contains(t, gotQuery, "skip=0")
}

func TestNegativeValuesAreClamped(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(ProductList{})
	}))

	client.Products(context.Background(), ListOptions{Limit: -5, Skip: -3})
	require.Contains(t, gotQuery, "limit=100")
	require.Contains(t, gotQuery, "skip=0")
}

func TestRemoteErrorMessageIsExtracted(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Product with id '9999' not found"})
	}))

	res := client.Product(context.Background(), 9999)
	require.False(t, res.Success)
	require.Equal(t, "Product with id '9999' not found", res.Error)
}

func TestRemoteErrorWithoutMessageUsesFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway error</html>"))
	}))

	res := client.Products(context.Background(), ListOptions{})
	require.False(t, res.Success)
	require.Equal(t, "Failed to fetch products", res.Error)
}

func TestNetworkErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(srv.URL)
	srv.Close()

	res := client.Products(context.Background(), ListOptions{})
	require.False(t, res.Success)
	require.Equal(t, "Failed to fetch products", res.Error)
}

func TestMalformedBodyUsesFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))

	res := client.SearchProducts(context.Background(), "mouse", ListOptions{})
	require.False(t, res.Success)
	require.Equal(t, "Search failed", res.Error)
}

func TestSearchSendsQueryParam(t *testing.T) {
	var gotQ string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(ProductList{})
	}))

	res := client.SearchProducts(context.Background(), "wireless mouse", ListOptions{})
	require.True(t, res.Success)
	require.Equal(t, "wireless mouse", gotQ)
}

func TestCategoryPathIsEscaped(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(ProductList{})
	}))

	res := client.ProductsByCategory(context.Background(), "home & garden", ListOptions{})
	require.True(t, res.Success)
	require.Equal(t, "/products/category/home%20&%20garden", gotPath)
}

func TestLoginSendsExpiryAndParsesTokens(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, float64(60), in["expiresInMins"])
		json.NewEncoder(w).Encode(LoginResponse{
			ID:           1,
			Username:     in["username"].(string),
			AccessToken:  "access",
			RefreshToken: "refresh",
		})
	}))

	res := client.Login(context.Background(), "emilys", "emilyspass")
	require.True(t, res.Success)
	require.Equal(t, "access", res.Data.AccessToken)
	require.Equal(t, "refresh", res.Data.RefreshToken)
}

func TestRemoteMessage(t *testing.T) {
	require.Equal(t, "boom", remoteMessage([]byte(`{"message":"boom"}`), "fallback"))
	require.Equal(t, "fallback", remoteMessage([]byte(`{"error":"boom"}`), "fallback"))
	require.Equal(t, "fallback", remoteMessage([]byte("not json"), "fallback"))
}
