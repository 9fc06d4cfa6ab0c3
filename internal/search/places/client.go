// Package places adapts the Google Places API (New) text search for prompt
// augmentation. Failures never propagate: the caller just proceeds without
// nearby results.
package places

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/option"
	places "google.golang.org/api/places/v1"

	"github.com/belindamak/japan-trip-chat/internal/models"
)

const (
	// fieldMask limits the response to the fields the prompt needs.
	fieldMask = "places.displayName,places.formattedAddress,places.rating,places.userRatingCount,places.priceLevel,places.types,places.editorialSummary,places.currentOpeningHours.openNow"

	maxResultCount = 10
	topResults     = 5

	searchTimeout = 10 * time.Second
)

// Client issues text searches biased to a circular region.
type Client struct {
	svc *places.Service
}

// NewClient builds a place search client. When the API key is missing the
// client is still usable; every search just reports no results.
func NewClient(ctx context.Context, apiKey string, extraOpts ...option.ClientOption) *Client {
	if apiKey == "" {
		log.Printf("place search disabled: missing GOOGLE_PLACES_API_KEY")
		return &Client{}
	}
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extraOpts...)
	svc, err := places.NewService(ctx, opts...)
	if err != nil {
		log.Printf("place search disabled: %v", err)
		return &Client{}
	}
	return &Client{svc: svc}
}

// SearchNearby runs a text search biased to a circle around the coordinates
// and returns a formatted block of the top results. The boolean is false when
// there is nothing to splice into the prompt: missing credentials, transport
// errors, non-2xx responses, and empty result sets all degrade silently after
// a log line.
func (c *Client) SearchNearby(ctx context.Context, coords models.Coordinates, query string, radiusMeters float64) (string, bool) {
	if c.svc == nil {
		log.Printf("place search skipped: no api key configured")
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	req := &places.GoogleMapsPlacesV1SearchTextRequest{
		TextQuery:      query,
		LanguageCode:   "en",
		MaxResultCount: maxResultCount,
		LocationBias: &places.GoogleMapsPlacesV1SearchTextRequestLocationBias{
			Circle: &places.GoogleMapsPlacesV1Circle{
				Center: &places.GoogleTypeLatLng{
					Latitude:  coords.Latitude,
					Longitude: coords.Longitude,
					// Latitude 0 is a legal coordinate, not an unset field.
					ForceSendFields: []string{"Latitude", "Longitude"},
				},
				Radius: radiusMeters,
			},
		},
	}

	call := c.svc.Places.SearchText(req).Context(ctx)
	call.Header().Set("X-Goog-FieldMask", fieldMask)
	resp, err := call.Do()
	if err != nil {
		log.Printf("place search %q near %.4f,%.4f: %v", query, coords.Latitude, coords.Longitude, err)
		return "", false
	}

	log.Printf("place search %q near %.4f,%.4f: %d places", query, coords.Latitude, coords.Longitude, len(resp.Places))
	if len(resp.Places) == 0 {
		return "", false
	}

	results := make([]models.PlaceResult, 0, topResults)
	for i, p := range resp.Places {
		if i >= topResults {
			break
		}
		results = append(results, toPlaceResult(p))
	}
	return FormatResults(results), true
}

func toPlaceResult(p *places.GoogleMapsPlacesV1Place) models.PlaceResult {
	result := models.PlaceResult{
		Address:     p.FormattedAddress,
		Rating:      p.Rating,
		RatingCount: p.UserRatingCount,
		PriceTier:   mapPriceLevel(p.PriceLevel),
	}
	if p.DisplayName != nil {
		result.Name = p.DisplayName.Text
	}
	if p.EditorialSummary != nil {
		result.Summary = p.EditorialSummary.Text
	}
	if p.CurrentOpeningHours != nil {
		open := p.CurrentOpeningHours.OpenNow
		result.OpenNow = &open
	}
	return result
}

// mapPriceLevel converts the provider enumeration into the five-tier scale.
// The mapping is total: unrecognized codes become unknown, never an error.
func mapPriceLevel(level string) models.PriceTier {
	switch level {
	case "PRICE_LEVEL_FREE":
		return models.PriceFree
	case "PRICE_LEVEL_INEXPENSIVE":
		return models.PriceInexpensive
	case "PRICE_LEVEL_MODERATE":
		return models.PriceModerate
	case "PRICE_LEVEL_EXPENSIVE":
		return models.PriceExpensive
	case "PRICE_LEVEL_VERY_EXPENSIVE":
		return models.PriceVeryExpensive
	default:
		return models.PriceUnknown
	}
}

// FormatResults renders places into the numbered block spliced into the
// system prompt.
func FormatResults(results []models.PlaceResult) string {
	var b bytes.Buffer
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s%s\n", i+1, r.Name, openMarker(r.OpenNow))
		fmt.Fprintf(&b, "   Rating: %.1f (%d reviews) | Price: %s\n", r.Rating, r.RatingCount, r.PriceTier)
		fmt.Fprintf(&b, "   Address: %s\n", r.Address)
		if r.Summary != "" {
			fmt.Fprintf(&b, "   %s\n", r.Summary)
		}
	}
	return b.String()
}

func openMarker(open *bool) string {
	if open == nil {
		return ""
	}
	if *open {
		return " [OPEN NOW]"
	}
	return " [CLOSED]"
}
