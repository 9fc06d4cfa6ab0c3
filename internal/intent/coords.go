package intent

import (
	"regexp"
	"strconv"

	"github.com/belindamak/japan-trip-chat/internal/models"
)

// coordsPattern matches the first decimal pair like "35.6762, 139.6503".
var coordsPattern = regexp.MustCompile(`(-?\d+\.\d+)\s*,\s*(-?\d+\.\d+)`)

// ExtractCoordinates scans the message for a "lat, lon" shaped pair. Values are
// parsed as-is without range validation; callers needing geofencing guarantees
// must validate separately. The second return is false when no pair is found.
func ExtractCoordinates(message string) (models.Coordinates, bool) {
	match := coordsPattern.FindStringSubmatch(message)
	if match == nil {
		return models.Coordinates{}, false
	}
	lat, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return models.Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return models.Coordinates{}, false
	}
	return models.Coordinates{Latitude: lat, Longitude: lon}, true
}
