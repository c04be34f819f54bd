// Package chat implements the portfolio chat widget: a per-session
// transcript of user questions and backend answers.
package chat

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/folio/page"
)

// Apology is the bot reply whenever the backend cannot answer.
const Apology = "Sorry, there was an error processing your request."

// ErrEmptyQuery is returned for blank input; nothing is recorded.
var ErrEmptyQuery = errors.New("chat: empty query")

// Role identifies who sent a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one chat bubble.
type Message struct {
	Role      Role
	Text      string
	CreatedAt time.Time
}

// Store persists transcripts per chat session.
type Store interface {
	Append(ctx context.Context, session string, m Message) error
	Messages(ctx context.Context, session string) ([]Message, error)
}

// Asker answers a question. *backend.Client implements it.
type Asker interface {
	Query(ctx context.Context, q string) (string, error)
}

// Widget drives the conversation for every session.
type Widget struct {
	store  Store
	asker  Asker
	owner  string
	logger *zap.Logger
}

// NewWidget creates a Widget greeting visitors on behalf of owner.
func NewWidget(store Store, asker Asker, owner string, logger *zap.Logger) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Widget{store: store, asker: asker, owner: owner, logger: logger}
}

// Greeting is the first bot message of every transcript.
func Greeting(owner string) Message {
	return Message{Role: RoleBot, Text: "Hello. Ask me anything about " + owner + "."}
}

// Submit records the user's message, asks the backend and records its reply.
// A backend failure is logged and answered with Apology; the returned error
// covers only blank input and storage failures.
func (w *Widget) Submit(ctx context.Context, session, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyQuery
	}
	if err := w.store.Append(ctx, session, Message{Role: RoleUser, Text: text, CreatedAt: time.Now()}); err != nil {
		return Message{}, err
	}

	reply := Message{Role: RoleBot, Text: Apology}
	if w.asker == nil {
		w.logger.Warn("chat query without backend")
	} else if answer, err := w.asker.Query(ctx, text); err != nil {
		w.logger.Error("chat query", zap.String("session", session), zap.Error(err))
	} else {
		reply.Text = answer
	}
	reply.CreatedAt = time.Now()

	if err := w.store.Append(ctx, session, reply); err != nil {
		return Message{}, err
	}
	return reply, nil
}

// Transcript returns the greeting followed by the session's messages.
func (w *Widget) Transcript(ctx context.Context, session string) ([]Message, error) {
	out := []Message{Greeting(w.owner)}
	if session == "" {
		return out, nil
	}
	msgs, err := w.store.Messages(ctx, session)
	if err != nil {
		return out, err
	}
	return append(out, msgs...), nil
}

// Bubble renders one message.
func Bubble(m Message) string {
	class := "bot-message"
	if m.Role == RoleUser {
		class = "user-message"
	}
	return `<div class="message ` + class + `">` + html.EscapeString(m.Text) + `</div>`
}

// Display renders msgs into the page's chat history container, if any.
func Display(doc *page.Document, msgs []Message) bool {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Bubble(m))
	}
	return doc.Display(page.ChatHistory, out)
}
