// Package llm is the port to chat-completion models used by resume import.
package llm

import "context"

// ChatModel answers one system+user exchange with the model's text reply.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
