package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context that records replies. Methods it does not
// override panic through the nil embedded interface.
type FakeContext struct {
	tele.Context

	User *tele.User
	Msg  *tele.Message
	Cb   *tele.Callback

	// EditErr is returned from Edit
	EditErr error
	// SendErr is returned from Send
	SendErr error

	Sent      []interface{}
	SentOpts  [][]interface{}
	Edited    []interface{}
	Replies   []interface{} // sent and edited, in order
	Responses []*tele.CallbackResponse
	Actions   []tele.ChatAction
}

// NewTextContext creates a context for a private text message
func NewTextContext(userID int64, firstName, text string) *FakeContext {
	user := &tele.User{ID: userID, FirstName: firstName}
	return &FakeContext{
		User: user,
		Msg: &tele.Message{
			Sender: user,
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
			Text:   text,
		},
	}
}

// NewCallbackContext creates a context for an inline button press
func NewCallbackContext(userID int64, unique string) *FakeContext {
	user := &tele.User{ID: userID, FirstName: "user"}
	return &FakeContext{
		User: user,
		Cb: &tele.Callback{
			ID:     "cb",
			Sender: user,
			Unique: unique,
			Message: &tele.Message{
				Chat: &tele.Chat{ID: userID, Type: tele.ChatPrivate},
			},
		},
	}
}

func (c *FakeContext) Sender() *tele.User { return c.User }

func (c *FakeContext) Message() *tele.Message {
	if c.Msg == nil && c.Cb != nil {
		return c.Cb.Message
	}
	return c.Msg
}

func (c *FakeContext) Callback() *tele.Callback { return c.Cb }

func (c *FakeContext) Chat() *tele.Chat {
	if m := c.Message(); m != nil {
		return m.Chat
	}
	return nil
}

func (c *FakeContext) Text() string {
	if m := c.Message(); m != nil {
		return m.Text
	}
	return ""
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, what)
	c.Replies = append(c.Replies, what)
	c.SentOpts = append(c.SentOpts, opts)
	return c.SendErr
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.Edited = append(c.Edited, what)
	c.Replies = append(c.Replies, what)
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		c.Responses = append(c.Responses, nil)
		return nil
	}
	c.Responses = append(c.Responses, resp...)
	return nil
}

func (c *FakeContext) Notify(action tele.ChatAction) error {
	c.Actions = append(c.Actions, action)
	return nil
}

// SentTexts returns every string reply in order
func (c *FakeContext) SentTexts() []string {
	var texts []string
	for _, s := range c.Sent {
		if text, ok := s.(string); ok {
			texts = append(texts, text)
		}
	}
	return texts
}

// LastText returns the most recent string reply, sent or edited
func (c *FakeContext) LastText() string {
	for i := len(c.Replies) - 1; i >= 0; i-- {
		if text, ok := c.Replies[i].(string); ok {
			return text
		}
	}
	return ""
}
