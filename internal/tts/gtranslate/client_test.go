package gtranslate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		max      int
		expected []string
	}{
		{
			name:     "short text",
			text:     "hello world",
			max:      100,
			expected: []string{"hello world"},
		},
		{
			name:     "split at spaces",
			text:     "aaa bbb ccc",
			max:      7,
			expected: []string{"aaa bbb", "ccc"},
		},
		{
			name:     "long word is cut",
			text:     "abcdefghij xy",
			max:      4,
			expected: []string{"abcd", "efgh", "ij", "xy"},
		},
		{
			name:     "multibyte runes",
			text:     "مرحبا بالعالم",
			max:      6,
			expected: []string{"مرحبا", "بالعال", "م"},
		},
		{
			name:     "blank",
			text:     "   ",
			max:      10,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitChunks(tt.text, tt.max)
			assert.Equal(t, tt.expected, chunks)
			for _, c := range chunks {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), tt.max)
			}
		})
	}
}

func TestClient_Synthesize(t *testing.T) {
	var mu sync.Mutex
	var queries []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Query().Get("q"))
		mu.Unlock()

		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		assert.Equal(t, "tw-ob", r.URL.Query().Get("client"))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("[" + r.URL.Query().Get("idx") + "]"))
	}))
	defer srv.Close()

	client := New(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	text := strings.Repeat("word ", 50)

	audio, err := client.Synthesize(context.Background(), text, "en")
	require.NoError(t, err)

	require.Len(t, queries, 3)
	assert.Equal(t, "[0][1][2]", string(audio))
	for _, q := range queries {
		assert.LessOrEqual(t, utf8.RuneCountInString(q), maxChunkRunes)
	}
}

func TestClient_Synthesize_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(WithBaseURL(srv.URL))
	audio, err := client.Synthesize(context.Background(), "hello", "en")

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Nil(t, audio)
}

func TestClient_Synthesize_Empty(t *testing.T) {
	client := New(WithBaseURL("http://127.0.0.1:0"))

	audio, err := client.Synthesize(context.Background(), "  ", "en")
	assert.NoError(t, err)
	assert.Empty(t, audio)
}
