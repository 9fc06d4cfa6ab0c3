// Package ai is the client for the hosted Azure OpenAI completion service,
// including the retrieval data source pointing at the trip's search index.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiVersion = "2024-05-01-preview"

// Fixed sampling parameters for the chat flow. These never vary per request.
const (
	chatMaxTokens   = 3308
	chatTemperature = 0.31
	chatTopP        = 0.95

	translateMaxTokens = 500
)

// SearchAuth selects how the retrieval data source authenticates against the
// search index: an explicit api key, or the system-assigned managed identity
// when no key is configured. Resolved once at startup.
type SearchAuth struct {
	apiKey string
}

// APIKeyAuth authenticates the data source with a search api key.
func APIKeyAuth(key string) SearchAuth {
	return SearchAuth{apiKey: key}
}

// ManagedIdentityAuth authenticates the data source with the ambient
// system-assigned identity of the deployment.
func ManagedIdentityAuth() SearchAuth {
	return SearchAuth{}
}

// ResolveSearchAuth picks api-key auth when a key is configured, otherwise the
// managed identity.
func ResolveSearchAuth(key string) SearchAuth {
	if key != "" {
		return APIKeyAuth(key)
	}
	return ManagedIdentityAuth()
}

func (a SearchAuth) toWire() searchAuthentication {
	if a.apiKey != "" {
		return searchAuthentication{Type: "api_key", Key: a.apiKey}
	}
	return searchAuthentication{Type: "system_assigned_managed_identity"}
}

// RetrievalSource describes the external search index the completion service
// consults while generating chat answers.
type RetrievalSource struct {
	Endpoint  string
	IndexName string
	Auth      SearchAuth
}

// Client calls the Azure OpenAI chat completions API for one deployment.
type Client struct {
	endpoint   string
	apiKey     string
	deployment string
	retrieval  *RetrievalSource
	client     *http.Client
}

// NewClient constructs the completion client. retrieval may be nil; chat
// requests then go out without a data source.
func NewClient(endpoint, apiKey, deployment string, timeout time.Duration, retrieval *RetrievalSource) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("completion endpoint is required")
	}
	if apiKey == "" {
		return nil, errors.New("completion api key is required")
	}
	if deployment == "" {
		return nil, errors.New("deployment name is required")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
		deployment: deployment,
		retrieval:  retrieval,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

// Wire types, OpenAI chat-completions shape plus the Azure data_sources block.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
	DataSources      []dataSource  `json:"data_sources,omitempty"`
}

type dataSource struct {
	Type       string           `json:"type"`
	Parameters searchParameters `json:"parameters"`
}

type searchParameters struct {
	Endpoint       string               `json:"endpoint"`
	IndexName      string               `json:"index_name"`
	Authentication searchAuthentication `json:"authentication"`
}

type searchAuthentication struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// completeChat sends the message sequence with the fixed chat sampling
// parameters and the retrieval data source, returning the first completion's
// text. Errors from the hosted service propagate to the caller; no retry.
func (c *Client) completeChat(ctx context.Context, messages []chatMessage) (string, error) {
	req := chatCompletionsRequest{
		Messages:    messages,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
		TopP:        chatTopP,
	}
	if c.retrieval != nil {
		req.DataSources = []dataSource{{
			Type: "azure_search",
			Parameters: searchParameters{
				Endpoint:       c.retrieval.Endpoint,
				IndexName:      c.retrieval.IndexName,
				Authentication: c.retrieval.Auth.toWire(),
			},
		}}
	}
	return c.complete(ctx, req)
}

// Translate performs a one-shot translation with a low token budget. No
// retrieval data source is attached.
func (c *Client) Translate(ctx context.Context, systemPrompt, text string) (string, error) {
	req := chatCompletionsRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens: translateMaxTokens,
	}
	return c.complete(ctx, req)
}

func (c *Client) complete(ctx context.Context, reqBody chatCompletionsRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call completion service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var completions chatCompletionsResponse
	if err := json.Unmarshal(body, &completions); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("completion service returned status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if completions.Error != nil {
			return "", fmt.Errorf("completion service returned status %d: %s", resp.StatusCode, completions.Error.Message)
		}
		return "", fmt.Errorf("completion service returned status %d", resp.StatusCode)
	}
	if len(completions.Choices) == 0 {
		return "", errors.New("completion service returned no choices")
	}
	return completions.Choices[0].Message.Content, nil
}
