package ai

import (
	"context"

	"github.com/belindamak/japan-trip-chat/internal/models"
)

// maxHistoryTurns caps how much client-supplied history is forwarded to the
// completion service. The most recent turns win; order is preserved.
const maxHistoryTurns = 10

// Chat assembles [system, ...history(last 10), user] and sends it with the
// retrieval data source attached.
func (c *Client) Chat(ctx context.Context, systemPrompt string, history []models.ChatTurn, userMessage string) (string, error) {
	return c.completeChat(ctx, buildMessages(systemPrompt, history, userMessage))
}

func buildMessages(systemPrompt string, history []models.ChatTurn, userMessage string) []chatMessage {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: string(models.RoleSystem), Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, chatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: string(models.RoleUser), Content: userMessage})
	return messages
}
