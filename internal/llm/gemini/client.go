// Package gemini builds the Gemini model used by the AI service.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

type generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Model is a Gemini model that accepts system messages
type Model struct {
	llm generator
}

// New connects to Gemini with apiKey. Harmful content is blocked from
// medium probability upwards.
func New(ctx context.Context, apiKey, model string) (*Model, error) {
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
		googleai.WithHarmThreshold(googleai.HarmBlockMediumAndAbove),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Model{llm: client}, nil
}

// GenerateContent folds system messages into the first user message and
// forwards the request.
func (m *Model) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return m.llm.GenerateContent(ctx, foldSystem(messages), options...)
}

func foldSystem(messages []llms.MessageContent) []llms.MessageContent {
	var system []string
	rest := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		if msg.Role != llms.ChatMessageTypeSystem {
			rest = append(rest, msg)
			continue
		}
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok && text.Text != "" {
				system = append(system, text.Text)
			}
		}
	}
	if len(system) == 0 {
		return rest
	}

	instructions := llms.TextPart(strings.Join(system, "\n\n"))
	for i, msg := range rest {
		if msg.Role != llms.ChatMessageTypeHuman {
			continue
		}
		parts := make([]llms.ContentPart, 0, len(msg.Parts)+1)
		parts = append(parts, instructions)
		parts = append(parts, msg.Parts...)
		rest[i] = llms.MessageContent{Role: msg.Role, Parts: parts}
		return rest
	}
	return append([]llms.MessageContent{{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{instructions},
	}}, rest...)
}
