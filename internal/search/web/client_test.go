package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(context.Background(), "test-key", "test-cx",
		option.WithEndpoint(server.URL))
	return client, server
}

func TestSearch(t *testing.T) {
	var gotQuery, gotCx string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCx = r.URL.Query().Get("cx")
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]string{
				{"title": "Gion Matsuri 2025", "snippet": "The festival runs through July."},
				{"title": "Kyoto events", "snippet": "What is on this week."},
			},
		})
	})

	block, ok := client.Search(context.Background(), "festivals kyoto this week", 5)
	require.True(t, ok)
	assert.Equal(t, "festivals kyoto this week", gotQuery)
	assert.Equal(t, "test-cx", gotCx)
	assert.Contains(t, block, "**Gion Matsuri 2025**\nThe festival runs through July.")
	assert.Contains(t, block, "**Kyoto events**")
}

func TestSearchCapsResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		items := make([]map[string]string, 9)
		for i := range items {
			items[i] = map[string]string{"title": "hit", "snippet": "text"}
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	})

	block, ok := client.Search(context.Background(), "news", 5)
	require.True(t, ok)
	assert.Equal(t, 5, strings.Count(block, "**hit**"))
}

func TestSearchServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	block, ok := client.Search(context.Background(), "news", 5)
	assert.False(t, ok)
	assert.Empty(t, block)
}

func TestSearchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // refuse connections

	client := NewClient(context.Background(), "test-key", "test-cx",
		option.WithEndpoint(url))
	_, ok := client.Search(context.Background(), "news", 5)
	assert.False(t, ok)
}

func TestSearchNoItems(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})

	_, ok := client.Search(context.Background(), "news", 5)
	assert.False(t, ok)
}

func TestSearchMissingCredentials(t *testing.T) {
	client := NewClient(context.Background(), "", "")
	_, ok := client.Search(context.Background(), "news", 5)
	assert.False(t, ok)
}
