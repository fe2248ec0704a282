package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"aibot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "Hello, world!",
			expected: "Hello, world!",
		},
		{
			name:     "emoji removed",
			input:    "Great job 🎉🔥 thanks 👍",
			expected: "Great job thanks",
		},
		{
			name:     "symbols replaced",
			input:    "price: $5 #deal *now*",
			expected: "price: 5 deal now",
		},
		{
			name:     "arabic kept",
			input:    "مرحبا بك، كيف حالك؟",
			expected: "مرحبا بك، كيف حالك؟",
		},
		{
			name:     "whitespace collapsed",
			input:    "  one\n\n two\tthree  ",
			expected: "one two three",
		},
		{
			name:     "cjk kept",
			input:    "你好 世界",
			expected: "你好 世界",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestPrepareText_Truncates(t *testing.T) {
	long := strings.Repeat("a", MaxSpeechRunes+250)

	prepared := PrepareText(long)

	assert.Equal(t, MaxSpeechRunes+len(truncationMarker), utf8.RuneCountInString(prepared))
	assert.True(t, strings.HasSuffix(prepared, truncationMarker))
	assert.Equal(t, strings.Repeat("a", 10), PrepareText(strings.Repeat("a", 10)))
}

func TestSpeechService_DetectLanguage(t *testing.T) {
	svc := NewSpeechService(nil, "ar", "fr", testutil.NewTestLogger())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "arabic", input: "مرحبا كيف الحال", expected: "ar"},
		{name: "english", input: "good morning", expected: "en"},
		{name: "mostly arabic", input: "مرحبا بالعالم ok", expected: "ar"},
		{name: "mostly latin", input: "hello there مرحبا", expected: "en"},
		{name: "no letters", input: "12345 !!", expected: "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.DetectLanguage(tt.input))
		})
	}
}

func TestSpeechService_Synthesize_TruncatesBeforeSynthesis(t *testing.T) {
	synth := new(testutil.MockSynthesizer)
	var sent string
	synth.On("Synthesize", mock.Anything, mock.Anything, "en").
		Run(func(args mock.Arguments) { sent = args.String(1) }).
		Return([]byte("mp3"), nil).Once()

	svc := NewSpeechService(synth, "ar", "ar", testutil.NewTestLogger())
	audio, err := svc.Synthesize(context.Background(), strings.Repeat("b", 1500), "en")

	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio)
	assert.Equal(t, strings.Repeat("b", MaxSpeechRunes)+truncationMarker, sent)
	synth.AssertExpectations(t)
}

func TestSpeechService_Synthesize(t *testing.T) {
	synthErr := errors.New("endpoint unavailable")

	tests := []struct {
		name         string
		text         string
		lang         string
		expectedLang string
		audio        []byte
		synthErr     error
		expectCall   bool
		expectedErr  error
	}{
		{
			name:         "supported language",
			text:         "bonjour",
			lang:         "fr",
			expectedLang: "fr",
			audio:        []byte("mp3"),
			expectCall:   true,
		},
		{
			name:         "unsupported language falls back",
			text:         "olá",
			lang:         "pt",
			expectedLang: "ar",
			audio:        []byte("mp3"),
			expectCall:   true,
		},
		{
			name:        "only emoji",
			text:        "🎉🎉",
			lang:        "en",
			expectCall:  false,
			expectedErr: ErrEmptyText,
		},
		{
			name:         "empty audio",
			text:         "hello",
			lang:         "en",
			expectedLang: "en",
			audio:        []byte{},
			expectCall:   true,
			expectedErr:  ErrNoAudio,
		},
		{
			name:         "client error is wrapped",
			text:         "hello",
			lang:         "en",
			expectedLang: "en",
			synthErr:     synthErr,
			expectCall:   true,
			expectedErr:  synthErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synth := new(testutil.MockSynthesizer)
			if tt.expectCall {
				if tt.synthErr != nil {
					synth.On("Synthesize", mock.Anything, mock.Anything, tt.expectedLang).Return(nil, tt.synthErr)
				} else {
					synth.On("Synthesize", mock.Anything, mock.Anything, tt.expectedLang).Return(tt.audio, nil)
				}
			}

			svc := NewSpeechService(synth, "ar", "ar", testutil.NewTestLogger())
			audio, err := svc.Synthesize(context.Background(), tt.text, tt.lang)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, audio)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.audio, audio)
			}
			if !tt.expectCall {
				synth.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything, mock.Anything)
			}
			synth.AssertExpectations(t)
		})
	}
}

func TestSpeechService_SynthesizeAuto(t *testing.T) {
	synth := new(testutil.MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "مرحبا", "ar").Return([]byte("mp3"), nil).Once()

	svc := NewSpeechService(synth, "en", "en", testutil.NewTestLogger())
	_, err := svc.SynthesizeAuto(context.Background(), "مرحبا")

	require.NoError(t, err)
	synth.AssertExpectations(t)
}
