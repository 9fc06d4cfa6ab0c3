package intent

import (
	"regexp"
	"strings"
)

// FallbackQuery is used whenever cleanup leaves nothing searchable. The query
// builder never emits an empty phrase.
const FallbackQuery = "restaurants"

// strayTokens are removed from the message alongside the location keywords:
// coordinate prefixes, interrogatives, and filler words.
var strayTokens = []string{
	"coordinates:",
	"currently at:",
	"what",
	"where",
	"find",
	"are",
	"there",
}

// foodTokens trigger the "restaurants" prefix so place search leans toward
// dining results. Includes common cuisine words seen in trip-planning chats.
var foodTokens = []string{
	"restaurant",
	"food",
	"eat",
	"ramen",
	"sushi",
	"noodle",
	"cafe",
	"coffee",
	"breakfast",
	"lunch",
	"dinner",
}

var (
	numberPattern     = regexp.MustCompile(`-?\d+(\.\d+)?`)
	punctPattern      = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// BuildSearchQuery derives a place-search phrase from the raw message by
// stripping classifier keywords, stray tokens, numbers, and punctuation. This
// is best-effort cleanup with one guarantee: the result is never empty or
// shorter than three characters.
func BuildSearchQuery(message string) string {
	query := strings.ToLower(message)
	for _, kw := range locationKeywords {
		query = strings.ReplaceAll(query, kw, " ")
	}
	for _, tok := range strayTokens {
		query = strings.ReplaceAll(query, tok, " ")
	}
	query = numberPattern.ReplaceAllString(query, " ")
	query = punctPattern.ReplaceAllString(query, " ")
	query = strings.TrimSpace(whitespacePattern.ReplaceAllString(query, " "))

	if query != "" && containsAny(query, foodTokens) && !strings.HasPrefix(query, "restaurants") {
		query = "restaurants " + query
	}
	if len(query) < 3 {
		return FallbackQuery
	}
	return query
}
