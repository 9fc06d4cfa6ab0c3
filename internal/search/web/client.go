// Package web adapts Google Custom Search for prompt augmentation. Like the
// place search adapter, failures degrade to "no results" and never propagate.
package web

import (
	"context"
	"log"
	"strings"
	"time"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// DefaultResultCount caps how many results end up in the prompt.
const DefaultResultCount = 5

const searchTimeout = 10 * time.Second

// Client wraps the Custom Search service for a single engine id.
type Client struct {
	engineID string
	svc      *customsearch.Service
}

// NewClient builds a web search client. When the API key or engine id is
// missing the client is still usable; every search just reports no results.
func NewClient(ctx context.Context, apiKey, engineID string, extraOpts ...option.ClientOption) *Client {
	if apiKey == "" || engineID == "" {
		log.Printf("web search disabled: missing GOOGLE_SEARCH_API_KEY or GOOGLE_SEARCH_ENGINE_ID")
		return &Client{}
	}
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, extraOpts...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		log.Printf("web search disabled: %v", err)
		return &Client{}
	}
	return &Client{engineID: engineID, svc: svc}
}

// Search runs the query and formats the first results as "**title**\nsnippet"
// blocks separated by blank lines. The boolean is false on missing
// credentials, transport errors, or an empty result set.
func (c *Client) Search(ctx context.Context, query string, numResults int) (string, bool) {
	if c.svc == nil || c.engineID == "" {
		return "", false
	}
	if numResults <= 0 {
		numResults = DefaultResultCount
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	resp, err := c.svc.Cse.List().
		Cx(c.engineID).
		Q(query).
		Num(int64(numResults)).
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("web search %q: %v", query, err)
		return "", false
	}

	var blocks []string
	for i, item := range resp.Items {
		if i >= DefaultResultCount {
			break
		}
		blocks = append(blocks, "**"+item.Title+"**\n"+item.Snippet+"\n")
	}
	if len(blocks) == 0 {
		return "", false
	}
	return strings.Join(blocks, "\n"), true
}
