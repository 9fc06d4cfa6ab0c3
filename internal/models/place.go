package models

// PriceTier is a coarse five-level encoding of relative cost.
type PriceTier string

const (
	PriceFree          PriceTier = "free"
	PriceInexpensive   PriceTier = "$"
	PriceModerate      PriceTier = "$$"
	PriceExpensive     PriceTier = "$$$"
	PriceVeryExpensive PriceTier = "$$$$"
	PriceUnknown       PriceTier = "unknown"
)

// PlaceResult is one point of interest returned by the place search service,
// reduced to the fields the prompt needs. It lives for a single request.
type PlaceResult struct {
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Rating      float64   `json:"rating"`
	RatingCount int64     `json:"rating_count"`
	PriceTier   PriceTier `json:"price_tier"`
	OpenNow     *bool     `json:"open_now,omitempty"`
	Summary     string    `json:"summary,omitempty"`
}
