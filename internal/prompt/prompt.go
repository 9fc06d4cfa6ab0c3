// Package prompt assembles the system prompt sent to the completion service.
// The prompt is modeled as an ordered list of named sections and only rendered
// to a single string at the boundary.
package prompt

import "strings"

// BasePrompt frames the assistant as a trip-itinerary helper. It is always the
// first section of the composed prompt.
const BasePrompt = `You are a travel assistant. Help me organize my trip itinerary by providing transportation options, dining suggestions, and sample costs based on the information I provide regarding flights, hotel reservations, locations, and activities.

## Instructions
- Use the flight information, hotel details, and key destination/activities provided to create a detailed day-by-day itinerary for my trip.
- Include the best transportation options (e.g., buses, trains, or rideshare services) to move between locations. Specify departure/arrival times (if applicable), costs, and the duration of travel.
- Suggest nearby restaurants or eateries aligned with the cuisine I specify and provide sample menu prices for them.
- If specific instructions are provided (e.g., my current location and desired meal type or activity), prioritize those in your response. Restrict dining suggestions within a walking distance of 15-20 minutes unless otherwise specified.`

// TranslatorPrompt is the fixed system prompt for the one-shot translate
// endpoint. No augmentation is ever attached to it.
const TranslatorPrompt = `You are a translator for travelers in Japan. If the given text is in English, translate it to natural Japanese; otherwise translate it to English. Return only the translation, with no explanations.`

const placesInstructions = `Use these real-time results to answer the question. Cross-reference them with the trip itinerary when relevant: prefer options close to planned activities, mention the rating and price tier, and note whether a place is currently open.`

const webInstructions = `Use these current web results to answer the question. Prefer information from the results over your own knowledge when they disagree, and weave relevant findings into the trip plan.`

// Section is one named block of the composed system prompt.
type Section struct {
	Title string
	Body  string
}

// Render concatenates the section under its markdown heading.
func (s Section) Render() string {
	return "## " + s.Title + "\n\n" + s.Body
}

// Compose builds the final system-prompt text from the base prompt and at most
// one augmentation section. Location results win over web results when both
// are supplied; an empty block never produces a section.
func Compose(base string, placesBlock, webBlock string) string {
	sections := []Section{{Title: "", Body: base}}
	switch {
	case placesBlock != "":
		sections = append(sections, Section{
			Title: "Real-Time Nearby Options",
			Body:  placesBlock + "\n\n" + placesInstructions,
		})
	case webBlock != "":
		sections = append(sections, Section{
			Title: "Current Web Information",
			Body:  webBlock + "\n\n" + webInstructions,
		})
	}

	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.Title == "" {
			parts = append(parts, s.Body)
			continue
		}
		parts = append(parts, s.Render())
	}
	return strings.Join(parts, "\n\n")
}
