package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aibot/internal/domain"
	"aibot/internal/metrics"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// MaxImageBytes is the largest image accepted for description
const MaxImageBytes = 4 << 20

var (
	// ErrEmptyResponse is returned when the model produced no text
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrImageTooLarge is returned for images over MaxImageBytes
	ErrImageTooLarge = errors.New("image exceeds the size limit")
	// ErrEmptyInput is returned when there is nothing to send to the model
	ErrEmptyInput = errors.New("input text is empty")
)

// Model generates content from a message list
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// AIOptions selects the model names used per request
type AIOptions struct {
	TextModel   string
	VisionModel string
}

// AIService wraps text and vision generation
type AIService struct {
	model  Model
	opts   AIOptions
	logger *zap.Logger
}

// NewAIService creates an AI service
func NewAIService(model Model, opts AIOptions, logger *zap.Logger) *AIService {
	return &AIService{
		model:  model,
		opts:   opts,
		logger: logger,
	}
}

// GenerateText answers prompt, optionally grounded on contextText
func (s *AIService) GenerateText(ctx context.Context, prompt, contextText string) (string, error) {
	return s.generateText(ctx, "generate", prompt, contextText)
}

// Chat replies to a free-form message from userName
func (s *AIService) Chat(ctx context.Context, message, userName string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyInput
	}
	if userName == "" {
		userName = "friend"
	}
	return s.generateText(ctx, "chat", fmt.Sprintf(chatPrompt, userName, message), "")
}

// Summarize condenses text
func (s *AIService) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	return s.generateText(ctx, "summarize", fmt.Sprintf(summarizePrompt, text), "")
}

// Translate renders text in targetLang. Unknown codes are passed through as-is.
func (s *AIService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	name := targetLang
	if lang, ok := domain.LookupLanguage(targetLang); ok {
		name = lang.Name
	}
	return s.generateText(ctx, "translate", fmt.Sprintf(translatePrompt, name, text), "")
}

// Answer responds to question, using contextText when given
func (s *AIService) Answer(ctx context.Context, question, contextText string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyInput
	}
	return s.generateText(ctx, "answer", fmt.Sprintf(answerPrompt, question), contextText)
}

// DescribeImage describes an image. Images over MaxImageBytes are rejected
// without contacting the model.
func (s *AIService) DescribeImage(ctx context.Context, data []byte, mimeType, prompt string) (string, error) {
	if len(data) > MaxImageBytes {
		metrics.AIRequestsTotal.WithLabelValues("image", metrics.ResultError).Inc()
		return "", ErrImageTooLarge
	}
	if len(data) == 0 {
		return "", ErrEmptyInput
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultImagePrompt
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, imageSystemPrompt),
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
				llms.BinaryPart(mimeType, data),
			},
		},
	}
	return s.generate(ctx, "image", s.opts.VisionModel, messages)
}

// Ping checks that the model answers at all
func (s *AIService) Ping(ctx context.Context) error {
	_, err := s.generateText(ctx, "ping", "Reply with the single word: OK", "")
	return err
}

func (s *AIService) generateText(ctx context.Context, op, prompt, contextText string) (string, error) {
	if strings.TrimSpace(contextText) != "" {
		prompt = fmt.Sprintf(contextBlock, contextText, prompt)
	}
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	return s.generate(ctx, op, s.opts.TextModel, messages)
}

func (s *AIService) generate(ctx context.Context, op, model string, messages []llms.MessageContent) (string, error) {
	options := []llms.CallOption{
		llms.WithTemperature(0.7),
		llms.WithTopP(0.8),
		llms.WithTopK(40),
		llms.WithMaxTokens(2048),
		llms.WithCandidateCount(1),
	}
	if model != "" {
		options = append(options, llms.WithModel(model))
	}

	resp, err := s.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues(op, metrics.ResultError).Inc()
		s.logger.Error("Model request failed", zap.String("op", op), zap.Error(err))
		return "", fmt.Errorf("generate %s: %w", op, err)
	}

	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		metrics.AIRequestsTotal.WithLabelValues(op, metrics.ResultError).Inc()
		s.logger.Warn("Model returned no content", zap.String("op", op))
		return "", ErrEmptyResponse
	}

	metrics.AIRequestsTotal.WithLabelValues(op, metrics.ResultOK).Inc()
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
