package chatbot

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrMessageNotFound = errors.New("chat message not found")
	ErrNotBotMessage   = errors.New("feedback applies to bot messages only")
	ErrInvalidFeedback = errors.New("feedback must be positive or negative")
	ErrEmptyMessage    = errors.New("empty message")
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type Feedback string

const (
	FeedbackNone     Feedback = ""
	FeedbackPositive Feedback = "positive"
	FeedbackNegative Feedback = "negative"
)

func ParseFeedback(s string) (Feedback, error) {
	switch f := Feedback(s); f {
	case FeedbackPositive, FeedbackNegative:
		return f, nil
	}
	return FeedbackNone, ErrInvalidFeedback
}

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Key       NodeKey   `json:"key,omitempty"`
	Options   []Option  `json:"options,omitempty"`
	Feedback  Feedback  `json:"feedback,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn is one exchange. User is nil when a quick reply had no label to echo.
type Turn struct {
	User *Message `json:"user,omitempty"`
	Key  NodeKey  `json:"key"`
	Bot  Message  `json:"bot"`
}

// MaxHistory bounds a session's transcript. Older messages are dropped first.
const MaxHistory = 200

// Session is one conversation. It is safe for concurrent use.
type Session struct {
	id  string
	now func() time.Time

	mu         sync.Mutex
	messages   []Message
	lastActive time.Time
}

func NewSession(now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{id: uuid.NewString(), now: now}
	s.Reset()
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Reset drops the history and starts over at the greeting.
func (s *Session) Reset() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = s.messages[:0]
	s.lastActive = s.now()
	return s.appendBot(Resolve(NodeGreeting))
}

// Send routes free text through the intent matcher.
func (s *Session) Send(text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyMessage
	}
	key := Match(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()
	user := s.appendUser(text)
	bot := s.appendBot(Resolve(key))
	return Turn{User: &user, Key: bot.Key, Bot: bot}, nil
}

// Choose follows a quick reply by value. Unknown values land on the default node.
func (s *Session) Choose(value NodeKey) Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()

	var turn Turn
	if label, ok := optionLabel(value); ok {
		user := s.appendUser(label)
		turn.User = &user
	}
	turn.Bot = s.appendBot(Resolve(value))
	turn.Key = turn.Bot.Key
	return turn
}

// Feedback records a thumbs up/down on a bot message.
func (s *Session) Feedback(messageID string, f Feedback) (Message, error) {
	if f != FeedbackPositive && f != FeedbackNegative {
		return Message{}, ErrInvalidFeedback
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID != messageID {
			continue
		}
		if s.messages[i].Role != RoleBot {
			return Message{}, ErrNotBotMessage
		}
		s.messages[i].Feedback = f
		return s.messages[i], nil
	}
	return Message{}, ErrMessageNotFound
}

func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	for i, m := range s.messages {
		m.Options = slices.Clone(m.Options)
		out[i] = m
	}
	return out
}

func (s *Session) appendUser(text string) Message {
	m := Message{ID: uuid.NewString(), Role: RoleUser, Content: text, Timestamp: s.now()}
	s.push(m)
	return m
}

func (s *Session) appendBot(n Node) Message {
	m := Message{
		ID:        uuid.NewString(),
		Role:      RoleBot,
		Content:   n.Content,
		Key:       n.Key,
		Options:   slices.Clone(n.Options),
		Timestamp: s.now(),
	}
	s.push(m)
	return m
}

func (s *Session) push(m Message) {
	s.messages = append(s.messages, m)
	if over := len(s.messages) - MaxHistory; over > 0 {
		s.messages = slices.Delete(s.messages, 0, over)
	}
}
