package handler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aibot/internal/config"
	"aibot/internal/domain"
	"aibot/internal/middleware"
	"aibot/internal/service"
	"aibot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	tele "gopkg.in/telebot.v3"
)

const adminID int64 = 1

type testEnv struct {
	h      *Handler
	repo   *testutil.MockUserRepository
	sender *testutil.MockSender
	model  *testutil.MockModel
	synth  *testutil.MockSynthesizer
	states *service.MemoryStateStore
}

func newTestEnv(t *testing.T, profiles ...domain.UserProfile) *testEnv {
	t.Helper()

	repo := new(testutil.MockUserRepository)
	repo.On("LoadAll", mock.Anything).Return(profiles, nil)
	repo.On("SaveProfile", mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := &config.Config{
		AdminChatID:      adminID,
		MaxMessageLength: 4000,
		VoiceLanguage:    "ar",
		DefaultLanguage:  "ar",
	}
	logger := testutil.NewTestLogger()

	env := &testEnv{
		repo:   repo,
		sender: new(testutil.MockSender),
		model:  new(testutil.MockModel),
		synth:  new(testutil.MockSynthesizer),
		states: service.NewMemoryStateStore(),
	}

	registry := service.NewRegistry(context.Background(), repo, logger)
	env.h = NewHandler(context.Background(), nil, cfg, Services{
		Registry:  registry,
		States:    env.states,
		Broadcast: service.NewBroadcastService(registry, env.sender, 0, logger),
		AI:        service.NewAIService(env.model, service.AIOptions{}, logger),
		Speech:    service.NewSpeechService(env.synth, cfg.VoiceLanguage, cfg.DefaultLanguage, logger),
	}, logger)
	return env
}

// expectPrompt records the prompt text of every model call
func (e *testEnv) expectPrompt(reply string) *string {
	var prompt string
	e.model.On("GenerateContent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			prompt = testutil.MessageText(args.Get(1).([]llms.MessageContent))
		}).
		Return(testutil.NewTextResponse(reply), nil)
	return &prompt
}

func TestHandleText_ChatWhenNothingAwaited(t *testing.T) {
	env := newTestEnv(t)
	prompt := env.expectPrompt("Hi Huda!")

	c := testutil.NewTextContext(5, "Huda", "hello there")
	require.NoError(t, env.h.handleText(c))

	assert.Equal(t, []string{"Hi Huda!"}, c.SentTexts())
	assert.Contains(t, *prompt, "Huda")
	assert.Contains(t, *prompt, "hello there")
}

func TestHandleText_AwaitingFlows(t *testing.T) {
	tests := []struct {
		name   string
		flag   domain.AwaitingFlag
		text   string
		setup  func(e *testEnv) *string
		verify func(t *testing.T, e *testEnv, c *testutil.FakeContext, prompt *string)
	}{
		{
			name: "voice",
			flag: domain.AwaitingVoiceText,
			text: "good morning",
			setup: func(e *testEnv) *string {
				e.synth.On("Synthesize", mock.Anything, "good morning", "en").Return([]byte("mp3"), nil).Once()
				return nil
			},
			verify: func(t *testing.T, e *testEnv, c *testutil.FakeContext, _ *string) {
				require.Len(t, c.Sent, 1)
				audio, ok := c.Sent[0].(*tele.Audio)
				require.True(t, ok)
				assert.Equal(t, "audio/mpeg", audio.MIME)
				e.synth.AssertExpectations(t)
				e.model.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
			},
		},
		{
			name: "summary",
			flag: domain.AwaitingSummaryText,
			text: "a very long article",
			setup: func(e *testEnv) *string {
				return e.expectPrompt("short version")
			},
			verify: func(t *testing.T, e *testEnv, c *testutil.FakeContext, prompt *string) {
				assert.Equal(t, []string{msgSummaryHeader + "short version"}, c.SentTexts())
				assert.Contains(t, *prompt, "Summarize")
				assert.Contains(t, *prompt, "a very long article")
			},
		},
		{
			name: "arabic is translated to english",
			flag: domain.AwaitingTranslationText,
			text: "صباح الخير",
			setup: func(e *testEnv) *string {
				return e.expectPrompt("Good morning")
			},
			verify: func(t *testing.T, e *testEnv, c *testutil.FakeContext, prompt *string) {
				assert.Contains(t, *prompt, "into English")
				assert.Equal(t, "🌐 Translation (English):\n\nGood morning", c.LastText())
			},
		},
		{
			name: "other text is translated to arabic",
			flag: domain.AwaitingTranslationText,
			text: "good morning",
			setup: func(e *testEnv) *string {
				return e.expectPrompt("صباح الخير")
			},
			verify: func(t *testing.T, e *testEnv, c *testutil.FakeContext, prompt *string) {
				assert.Contains(t, *prompt, "into Arabic")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			prompt := tt.setup(env)
			env.states.SetAwaiting(5, tt.flag)

			c := testutil.NewTextContext(5, "Huda", tt.text)
			require.NoError(t, env.h.handleText(c))

			tt.verify(t, env, c, prompt)
			_, pending := env.states.Awaiting(5)
			assert.False(t, pending, "flag must be cleared after the flow runs")
		})
	}
}

func TestHandleText_Broadcast(t *testing.T) {
	env := newTestEnv(t,
		testutil.NewTestProfile(adminID, "admin", 3),
		testutil.NewTestProfile(20, "b", 1),
		testutil.NewTestProfile(30, "c", 1),
	)
	env.sender.On("SendText", mock.Anything, adminID, "Server maintenance tonight").Return(nil).Once()
	env.sender.On("SendText", mock.Anything, int64(20), "Server maintenance tonight").Return(errors.New("blocked")).Once()
	env.sender.On("SendText", mock.Anything, int64(30), "Server maintenance tonight").Return(nil).Once()
	env.states.SetAwaiting(adminID, domain.AwaitingBroadcastText)

	c := testutil.NewTextContext(adminID, "Admin", "Server maintenance tonight")
	require.NoError(t, env.h.handleText(c))

	env.sender.AssertExpectations(t)
	assert.Equal(t, domain.BroadcastResult{Sent: 2, Failed: 1, Total: 3}.Summary(), c.LastText())
	assert.False(t, env.states.IsAwaiting(adminID, domain.AwaitingBroadcastText))
}

func TestHandleText_BroadcastEmptyBodyKeepsFlag(t *testing.T) {
	env := newTestEnv(t, testutil.NewTestProfile(adminID, "admin", 1))
	env.states.SetAwaiting(adminID, domain.AwaitingBroadcastText)

	c := testutil.NewTextContext(adminID, "Admin", "   ")
	require.NoError(t, env.h.handleText(c))

	assert.Equal(t, []string{msgBroadcastEmpty}, c.SentTexts())
	assert.True(t, env.states.IsAwaiting(adminID, domain.AwaitingBroadcastText))
	env.sender.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleText_BroadcastFromNonAdminDenied(t *testing.T) {
	env := newTestEnv(t, testutil.NewTestProfile(20, "b", 1))
	env.states.SetAwaiting(20, domain.AwaitingBroadcastText)

	c := testutil.NewTextContext(20, "Guest", "spam")
	require.NoError(t, env.h.handleText(c))

	assert.Equal(t, []string{middleware.DenyMessage}, c.SentTexts())
	env.sender.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleText_ModelFailure(t *testing.T) {
	env := newTestEnv(t)
	env.model.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))

	c := testutil.NewTextContext(5, "Huda", "hello")
	require.NoError(t, env.h.handleText(c))

	assert.Equal(t, []string{msgTemporaryError}, c.SentTexts())
}

func TestFlowButtons_SetAwaitingFlag(t *testing.T) {
	tests := []struct {
		name    string
		handler func(h *Handler) tele.HandlerFunc
		flag    domain.AwaitingFlag
		prompt  string
	}{
		{
			name:    "voice",
			handler: func(h *Handler) tele.HandlerFunc { return h.handleVoiceButton },
			flag:    domain.AwaitingVoiceText,
			prompt:  msgVoicePrompt,
		},
		{
			name:    "summarize",
			handler: func(h *Handler) tele.HandlerFunc { return h.handleSummarizeButton },
			flag:    domain.AwaitingSummaryText,
			prompt:  msgSummaryPrompt,
		},
		{
			name:    "translate",
			handler: func(h *Handler) tele.HandlerFunc { return h.handleTranslateButton },
			flag:    domain.AwaitingTranslationText,
			prompt:  msgTranslationPrompt,
		},
		{
			name:    "admin broadcast",
			handler: func(h *Handler) tele.HandlerFunc { return h.handleAdminBroadcast },
			flag:    domain.AwaitingBroadcastText,
			prompt:  msgBroadcastPrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			c := testutil.NewCallbackContext(adminID, "x")

			require.NoError(t, tt.handler(env.h)(c))

			assert.True(t, env.states.IsAwaiting(adminID, tt.flag))
			assert.Equal(t, []interface{}{tt.prompt}, c.Edited)
			assert.Len(t, c.Responses, 1)
		})
	}
}

func TestHandleCancel_ClearsFlag(t *testing.T) {
	env := newTestEnv(t)
	env.states.SetAwaiting(5, domain.AwaitingVoiceText)

	c := testutil.NewCallbackContext(5, "cancel")
	require.NoError(t, env.h.handleCancel(c))

	_, pending := env.states.Awaiting(5)
	assert.False(t, pending)
	assert.Equal(t, msgCancelled, c.LastText())
}

func TestShowScreen_EditFallsBackToSend(t *testing.T) {
	env := newTestEnv(t)

	t.Run("not modified is acknowledged", func(t *testing.T) {
		c := testutil.NewCallbackContext(5, "help")
		c.EditErr = errors.New("telegram: Bad Request: message is not modified (400)")

		require.NoError(t, env.h.handleHelp(c))
		assert.Empty(t, c.Sent)
		assert.Len(t, c.Responses, 1)
	})

	t.Run("other edit errors send a new message", func(t *testing.T) {
		c := testutil.NewCallbackContext(5, "help")
		c.EditErr = errors.New("telegram: message to edit not found (400)")

		require.NoError(t, env.h.handleHelp(c))
		assert.Equal(t, []string{msgHelp}, c.SentTexts())
	})

	t.Run("commands send directly", func(t *testing.T) {
		c := testutil.NewTextContext(5, "Huda", "/help")

		require.NoError(t, env.h.handleHelp(c))
		assert.Equal(t, []string{msgHelp}, c.SentTexts())
	})
}

func TestCommands_WithPayload(t *testing.T) {
	t.Run("ask", func(t *testing.T) {
		env := newTestEnv(t)
		prompt := env.expectPrompt("Paris")

		c := testutil.NewTextContext(5, "Huda", "/ask capital of France?")
		c.Msg.Payload = "capital of France?"
		require.NoError(t, env.h.handleAsk(c))

		assert.Equal(t, []string{"Paris"}, c.SentTexts())
		assert.Contains(t, *prompt, "capital of France?")
	})

	t.Run("ask without question", func(t *testing.T) {
		env := newTestEnv(t)

		c := testutil.NewTextContext(5, "Huda", "/ask")
		require.NoError(t, env.h.handleAsk(c))

		assert.Equal(t, []string{msgAskUsage}, c.SentTexts())
	})

	t.Run("translate with explicit language", func(t *testing.T) {
		env := newTestEnv(t)
		prompt := env.expectPrompt("Bonjour")

		c := testutil.NewTextContext(5, "Huda", "/translate fr hello")
		c.Msg.Payload = "fr hello"
		require.NoError(t, env.h.handleTranslateCommand(c))

		assert.Contains(t, *prompt, "into French")
		assert.True(t, strings.HasSuffix(c.LastText(), "Bonjour"))
	})

	t.Run("summarize without text waits for it", func(t *testing.T) {
		env := newTestEnv(t)

		c := testutil.NewTextContext(5, "Huda", "/summarize")
		require.NoError(t, env.h.handleSummarizeCommand(c))

		assert.True(t, env.states.IsAwaiting(5, domain.AwaitingSummaryText))
		assert.Equal(t, []string{msgSummaryPrompt}, c.SentTexts())
	})
}

func TestHandleStats(t *testing.T) {
	env := newTestEnv(t,
		testutil.NewTestProfile(adminID, "admin", 1),
		testutil.NewTestProfile(5, "Huda", 2),
		testutil.NewTestProfile(6, "Sami", 3),
	)

	t.Run("admin sees aggregate", func(t *testing.T) {
		c := testutil.NewTextContext(adminID, "Admin", "/stats")
		require.NoError(t, env.h.handleStats(c))

		text := c.LastText()
		assert.Contains(t, text, "Users: 3")
		assert.Contains(t, text, "Messages: 6")
		assert.Contains(t, text, "Average per user: 2.00")
	})

	t.Run("user sees own profile", func(t *testing.T) {
		c := testutil.NewTextContext(6, "Sami", "/stats")
		require.NoError(t, env.h.handleStats(c))

		assert.Contains(t, c.LastText(), "Messages: 3")
	})

	t.Run("unknown user", func(t *testing.T) {
		c := testutil.NewTextContext(99, "New", "/stats")
		require.NoError(t, env.h.handleStats(c))

		assert.Equal(t, msgNoStats, c.LastText())
	})
}

func TestHandleStart_ClearsFlag(t *testing.T) {
	env := newTestEnv(t)
	env.states.SetAwaiting(5, domain.AwaitingSummaryText)

	c := testutil.NewTextContext(5, "Huda", "/start")
	require.NoError(t, env.h.handleStart(c))

	_, pending := env.states.Awaiting(5)
	assert.False(t, pending)
	assert.Contains(t, c.LastText(), "Hello, Huda!")
}

func TestCommands(t *testing.T) {
	names := make([]string, 0, len(Commands()))
	for _, cmd := range Commands() {
		names = append(names, cmd.Text)
	}
	assert.ElementsMatch(t, []string{"start", "help", "ask", "voice", "translate", "summarize", "stats", "admin"}, names)
}
