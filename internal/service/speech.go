package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"aibot/internal/domain"
	"aibot/internal/metrics"

	"go.uber.org/zap"
)

// MaxSpeechRunes caps the text sent for synthesis
const MaxSpeechRunes = 1000

const truncationMarker = "..."

var (
	// ErrEmptyText is returned when nothing speakable is left after cleaning
	ErrEmptyText = errors.New("no text to synthesize")
	// ErrNoAudio is returned when the synthesizer produced no bytes
	ErrNoAudio = errors.New("synthesizer returned no audio")
)

var (
	emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F900}-\x{1FAFF}\x{1F1E0}-\x{1F1FF}\x{2600}-\x{27BF}\x{FE0F}\x{200D}]+`)
	symbolPattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\x{0600}-\x{06FF}.,!?;:]`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// Synthesizer turns text into MP3 audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// SpeechService prepares text and converts it to voice
type SpeechService struct {
	synth           Synthesizer
	voiceLanguage   string
	defaultLanguage string
	logger          *zap.Logger
}

// NewSpeechService creates a speech service. voiceLanguage is used when the
// requested language is unsupported; defaultLanguage when detection finds no letters.
func NewSpeechService(synth Synthesizer, voiceLanguage, defaultLanguage string, logger *zap.Logger) *SpeechService {
	return &SpeechService{
		synth:           synth,
		voiceLanguage:   voiceLanguage,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// Clean strips emoji and symbols, keeping letters, digits and basic punctuation
func Clean(text string) string {
	text = emojiPattern.ReplaceAllString(text, " ")
	text = symbolPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// PrepareText cleans text and caps it at MaxSpeechRunes
func PrepareText(text string) string {
	text = Clean(text)
	runes := []rune(text)
	if len(runes) > MaxSpeechRunes {
		text = string(runes[:MaxSpeechRunes]) + truncationMarker
	}
	return text
}

// DetectLanguage guesses ar or en from the script mix of text
func (s *SpeechService) DetectLanguage(text string) string {
	var arabic, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Arabic, r) && unicode.IsLetter(r):
			arabic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	switch {
	case arabic > latin:
		return "ar"
	case latin > 0:
		return "en"
	default:
		return s.defaultLanguage
	}
}

// Synthesize converts text to speech in lang
func (s *SpeechService) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if !domain.IsSupportedLanguage(lang) {
		lang = s.voiceLanguage
	}

	prepared := PrepareText(text)
	if prepared == "" {
		return nil, ErrEmptyText
	}

	audio, err := s.synth.Synthesize(ctx, prepared, lang)
	if err != nil {
		metrics.TTSRequestsTotal.WithLabelValues(metrics.ResultError).Inc()
		s.logger.Error("Speech synthesis failed", zap.String("lang", lang), zap.Error(err))
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	if len(audio) == 0 {
		metrics.TTSRequestsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, ErrNoAudio
	}

	metrics.TTSRequestsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return audio, nil
}

// SynthesizeAuto detects the language of text and synthesizes it
func (s *SpeechService) SynthesizeAuto(ctx context.Context, text string) ([]byte, error) {
	return s.Synthesize(ctx, text, s.DetectLanguage(text))
}
