package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnsplashClient_RequiresAccessKey(t *testing.T) {
	_, err := NewUnsplashClient(UnsplashClientConfig{})
	assert.ErrorIs(t, err, ErrMissingAccessKey)
}

func TestSearchPhotos_Success(t *testing.T) {
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/photos", r.URL.Path)
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total_pages": 4,
			"results": [{"id": "abc", "urls": {"small": "https://img/abc"}, "user": {"username": "jane"}}]
		}`))
	}))
	defer srv.Close()

	client, err := NewUnsplashClient(UnsplashClientConfig{
		BaseURL:   srv.URL,
		AccessKey: "test-key",
		Timeout:   time.Second,
	})
	require.NoError(t, err)

	resp, err := client.SearchPhotos(context.Background(), "rose", 2, 25)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.TotalPages)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "abc", resp.Results[0].ID)

	assert.Equal(t, []string{"rose"}, gotQuery["query"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"25"}, gotQuery["per_page"])
	assert.Equal(t, []string{"test-key"}, gotQuery["client_id"])
}

func TestSearchPhotos_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("Rate Limit Exceeded"))
	}))
	defer srv.Close()

	client, err := NewUnsplashClient(UnsplashClientConfig{BaseURL: srv.URL, AccessKey: "test-key"})
	require.NoError(t, err)

	_, err = client.SearchPhotos(context.Background(), "rose", 1, 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 403")
	assert.Contains(t, err.Error(), "Rate Limit Exceeded")
}

func TestSearchPhotos_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client, err := NewUnsplashClient(UnsplashClientConfig{BaseURL: srv.URL, AccessKey: "test-key"})
	require.NoError(t, err)

	_, err = client.SearchPhotos(context.Background(), "rose", 1, 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode search response")
}

func TestSearchPhotos_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, err := NewUnsplashClient(UnsplashClientConfig{BaseURL: srv.URL, AccessKey: "test-key"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.SearchPhotos(ctx, "rose", 1, 25)
	assert.Error(t, err)
}
