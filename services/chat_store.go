package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Greeting seeds every transcript; clearing a session restores it.
const Greeting = "Hi there! I'm your Autogenics virtual assistant. How can I help you with your car detailing needs today?"

// HistoryWindow is how many prior turns accompany a chat completion request.
const HistoryWindow = 6

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a session transcript. Transcripts live only
// in memory; nothing is persisted across restarts.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type chatSession struct {
	messages []ChatMessage
	busy     bool
}

// ChatStore holds per-session conversation transcripts. One completion
// request may be in flight per session at a time.
type ChatStore struct {
	mu       sync.Mutex
	sessions map[string]*chatSession
}

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrSessionBusy     = errors.New("a reply is already being generated for this session")
)

// NewChatStore creates an empty session store
func NewChatStore() *ChatStore {
	return &ChatStore{sessions: make(map[string]*chatSession)}
}

func newGreeting() ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   Greeting,
		CreatedAt: time.Now(),
	}
}

// CreateSession starts a new transcript seeded with the greeting and
// returns its id.
func (s *ChatStore) CreateSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &chatSession{messages: []ChatMessage{newGreeting()}}
	return id
}

// Messages returns a copy of the session transcript.
func (s *ChatStore) Messages(sessionID string) ([]ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := make([]ChatMessage, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

// BeginTurn appends the user message optimistically, marks the session
// busy, and returns the history window to send upstream. The window is the
// last HistoryWindow messages as they stood before the new user message,
// mirroring what the booking site sent.
func (s *ChatStore) BeginTurn(sessionID, content string) ([]ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.busy {
		return nil, ErrSessionBusy
	}

	history := sess.messages
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	window := make([]ChatMessage, len(history))
	copy(window, history)

	sess.messages = append(sess.messages, ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	})
	sess.busy = true

	return window, nil
}

// FinishTurn appends the assistant reply and releases the session.
func (s *ChatStore) FinishTurn(sessionID, reply string) (ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ChatMessage{}, ErrSessionNotFound
	}

	msg := ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	sess.messages = append(sess.messages, msg)
	sess.busy = false
	return msg, nil
}

// Clear resets the transcript to just the seed greeting.
func (s *ChatStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.messages = []ChatMessage{newGreeting()}
	sess.busy = false
	return nil
}
