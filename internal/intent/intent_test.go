package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		location bool
		web      bool
	}{
		{"location keyword", "what's nearby", true, false},
		{"location phrase", "find ramen near me", true, false},
		{"case folded", "CLOSEST coffee please", true, false},
		{"freshness keyword", "any festivals this week?", false, true},
		{"weather", "what's the weather in Osaka", false, true},
		{"both signals", "what events are happening nearby", true, true},
		{"neither", "tell me about Kyoto", false, false},
		{"empty", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Classify(tt.message)
			assert.Equal(t, tt.location, sig.IsLocationQuery, "IsLocationQuery")
			assert.Equal(t, tt.web, sig.NeedsWebSearch, "NeedsWebSearch")
		})
	}
}

func TestExtractCoordinates(t *testing.T) {
	coords, ok := ExtractCoordinates("I'm at 35.6762, 139.6503, find ramen")
	require.True(t, ok)
	assert.Equal(t, 35.6762, coords.Latitude)
	assert.Equal(t, 139.6503, coords.Longitude)
}

func TestExtractCoordinatesNegative(t *testing.T) {
	coords, ok := ExtractCoordinates("currently at: -33.8688,151.2093")
	require.True(t, ok)
	assert.Equal(t, -33.8688, coords.Latitude)
	assert.Equal(t, 151.2093, coords.Longitude)
}

func TestExtractCoordinatesFirstPairWins(t *testing.T) {
	coords, ok := ExtractCoordinates("between 35.01, 135.76 and 34.69, 135.50")
	require.True(t, ok)
	assert.Equal(t, 35.01, coords.Latitude)
	assert.Equal(t, 135.76, coords.Longitude)
}

func TestExtractCoordinatesNoMatch(t *testing.T) {
	for _, msg := range []string{
		"no numbers here",
		"call me at 555, 1234", // integers only, not decimal pairs
		"",
	} {
		_, ok := ExtractCoordinates(msg)
		assert.False(t, ok, "message %q", msg)
	}
}

func TestExtractCoordinatesNoRangeValidation(t *testing.T) {
	// Out-of-range values pass through untouched; bounds checks are the
	// caller's job.
	coords, ok := ExtractCoordinates("999.9, -999.9")
	require.True(t, ok)
	assert.Equal(t, 999.9, coords.Latitude)
	assert.Equal(t, -999.9, coords.Longitude)
}

func TestBuildSearchQueryNeverEmpty(t *testing.T) {
	for _, msg := range []string{
		"near me",
		"nearby",
		"35.6762, 139.6503",
		"",
		"!!",
	} {
		got := BuildSearchQuery(msg)
		assert.GreaterOrEqual(t, len(got), 3, "message %q", msg)
	}
}

func TestBuildSearchQueryFallback(t *testing.T) {
	// All keyword content; nothing remains after stripping.
	assert.Equal(t, FallbackQuery, BuildSearchQuery("near me"))
}

func TestBuildSearchQueryFoodPrefix(t *testing.T) {
	got := BuildSearchQuery("closest ramen shop")
	require.True(t, strings.HasPrefix(got, "restaurants "), "got %q", got)
	assert.Contains(t, got, "ramen shop")
}

func TestBuildSearchQueryStripsKeywordsAndNumbers(t *testing.T) {
	got := BuildSearchQuery("what temples are nearby coordinates: 35.6762, 139.6503?")
	assert.NotContains(t, got, "nearby")
	assert.NotContains(t, got, "coordinates")
	assert.NotContains(t, got, "35.6762")
	assert.Contains(t, got, "temples")
}

func TestBuildSearchQueryPlain(t *testing.T) {
	assert.Equal(t, "temples", BuildSearchQuery("temples"))
}
