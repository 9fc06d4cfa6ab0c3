// Package intent holds the request-augmentation heuristics: deciding whether a
// chat message is asking about the user's surroundings or about fresh web
// content, pulling coordinates out of the text, and deriving a search phrase.
// Everything here is a pure function over the message text.
package intent

import "strings"

// locationKeywords mark a message as asking about the user's surroundings.
var locationKeywords = []string{
	"nearby",
	"closest",
	"near me",
	"around here",
	"close to",
	"where i am",
	"current location",
}

// freshnessKeywords mark a message as needing up-to-date web results.
var freshnessKeywords = []string{
	"happening",
	"events",
	"news",
	"current",
	"today",
	"this week",
	"festival",
	"weather",
	"latest",
}

// Signals is the classifier outcome. Both flags may be set; callers branch on
// location first, so the web path only runs when the location path does not.
type Signals struct {
	IsLocationQuery bool
	NeedsWebSearch  bool
}

// Classify inspects the message against the fixed keyword sets.
func Classify(message string) Signals {
	lower := strings.ToLower(message)
	return Signals{
		IsLocationQuery: containsAny(lower, locationKeywords),
		NeedsWebSearch:  containsAny(lower, freshnessKeywords),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
