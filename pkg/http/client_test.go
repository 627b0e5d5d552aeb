package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/astro-web3/restaurant-api/pkg/http"
)

func TestClientRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"totalItemsCount": 2})
	}))
	t.Cleanup(srv.Close)

	client := httpclient.NewClient(srv.URL, httpclient.WithTimeout(time.Second), httpclient.WithRetryCount(0))

	var out struct {
		TotalItemsCount int `json:"totalItemsCount"`
	}
	resp, err := client.Get(context.Background(), "/api/restaurant",
		httpclient.WithAuthToken("abc"),
		httpclient.WithQuery(map[string]string{"pageSize": "5"}),
		httpclient.WithResult(&out),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, 2, out.TotalItemsCount)
}

func TestClientSendsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "KFC", body["name"])
		w.Header().Set("Location", "/api/restaurant/3")
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	client := httpclient.NewClient(srv.URL, httpclient.WithRetryCount(0))
	resp, err := client.Post(context.Background(), "/api/restaurant",
		httpclient.WithAuthToken(""),
		httpclient.WithBody(map[string]string{"name": "KFC"}),
	)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.Equal(t, "/api/restaurant/3", resp.Header().Get("Location"))
}

func TestClientTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	client := httpclient.NewClient(addr, httpclient.WithTimeout(time.Second), httpclient.WithRetryCount(0))
	_, err := client.Delete(context.Background(), "/api/restaurant/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DELETE /api/restaurant/1")
}
