package places

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
	placesapi "google.golang.org/api/places/v1"

	"github.com/belindamak/japan-trip-chat/internal/models"
)

var tokyo = models.Coordinates{Latitude: 35.6762, Longitude: 139.6503}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(context.Background(), "test-key",
		option.WithEndpoint(server.URL))
	return client, server
}

func TestSearchNearby(t *testing.T) {
	var gotReq placesapi.GoogleMapsPlacesV1SearchTextRequest
	var gotFieldMask string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/places:searchText", r.URL.Path)
		gotFieldMask = r.Header.Get("X-Goog-FieldMask")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		openNow := map[string]any{"openNow": true}
		json.NewEncoder(w).Encode(map[string]any{
			"places": []map[string]any{
				{
					"displayName":         map[string]string{"text": "Ichiran Shibuya"},
					"formattedAddress":    "1-22-7 Jinnan, Shibuya",
					"rating":              4.4,
					"userRatingCount":     21053,
					"priceLevel":          "PRICE_LEVEL_MODERATE",
					"currentOpeningHours": openNow,
					"editorialSummary":    map[string]string{"text": "Famous solo-booth tonkotsu ramen."},
				},
				{
					"displayName":      map[string]string{"text": "Nameless Stand"},
					"formattedAddress": "Backstreet 3",
					"priceLevel":       "PRICE_LEVEL_UNSPECIFIED",
				},
			},
		})
	})

	block, ok := client.SearchNearby(context.Background(), tokyo, "restaurants ramen", 1500)
	require.True(t, ok)

	assert.Contains(t, gotFieldMask, "places.displayName")
	assert.Contains(t, gotFieldMask, "places.currentOpeningHours.openNow")
	assert.Equal(t, "restaurants ramen", gotReq.TextQuery)
	assert.Equal(t, "en", gotReq.LanguageCode)
	assert.Equal(t, int64(10), gotReq.MaxResultCount)
	require.NotNil(t, gotReq.LocationBias)
	require.NotNil(t, gotReq.LocationBias.Circle)
	assert.Equal(t, 35.6762, gotReq.LocationBias.Circle.Center.Latitude)
	assert.Equal(t, 1500.0, gotReq.LocationBias.Circle.Radius)

	assert.Contains(t, block, "1. Ichiran Shibuya [OPEN NOW]")
	assert.Contains(t, block, "Rating: 4.4 (21053 reviews) | Price: $$")
	assert.Contains(t, block, "Famous solo-booth tonkotsu ramen.")
	// No opening hours supplied: no marker either way.
	assert.Contains(t, block, "2. Nameless Stand\n")
	assert.Contains(t, block, "Price: unknown")
}

func TestSearchNearbyCapsAtFive(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		spots := make([]map[string]any, 8)
		for i := range spots {
			spots[i] = map[string]any{
				"displayName":      map[string]string{"text": "Spot"},
				"formattedAddress": "Somewhere",
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"places": spots})
	})

	block, ok := client.SearchNearby(context.Background(), tokyo, "temples", 1500)
	require.True(t, ok)
	assert.Equal(t, 5, strings.Count(block, "Spot"))
	assert.Contains(t, block, "5. Spot")
	assert.NotContains(t, block, "6. Spot")
}

func TestSearchNearbyServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	block, ok := client.SearchNearby(context.Background(), tokyo, "ramen", 1500)
	assert.False(t, ok)
	assert.Empty(t, block)
}

func TestSearchNearbyConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // refuse connections

	client := NewClient(context.Background(), "test-key", option.WithEndpoint(url))
	_, ok := client.SearchNearby(context.Background(), tokyo, "ramen", 1500)
	assert.False(t, ok)
}

func TestSearchNearbyMissingCredentials(t *testing.T) {
	client := NewClient(context.Background(), "")
	_, ok := client.SearchNearby(context.Background(), tokyo, "ramen", 1500)
	assert.False(t, ok)
}

func TestSearchNearbyEmptyResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})

	_, ok := client.SearchNearby(context.Background(), tokyo, "ramen", 1500)
	assert.False(t, ok)
}

func TestMapPriceLevelTotal(t *testing.T) {
	tests := map[string]models.PriceTier{
		"PRICE_LEVEL_FREE":           models.PriceFree,
		"PRICE_LEVEL_INEXPENSIVE":    models.PriceInexpensive,
		"PRICE_LEVEL_MODERATE":       models.PriceModerate,
		"PRICE_LEVEL_EXPENSIVE":      models.PriceExpensive,
		"PRICE_LEVEL_VERY_EXPENSIVE": models.PriceVeryExpensive,
		"PRICE_LEVEL_UNSPECIFIED":    models.PriceUnknown,
		"SOMETHING_NEW":              models.PriceUnknown,
		"":                           models.PriceUnknown,
	}
	for level, want := range tests {
		assert.Equal(t, want, mapPriceLevel(level), "level %q", level)
	}
}
