package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	chatmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/chat"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSender   = errors.New("invalid message sender")
)

// Service owns the append-only transcripts of every open conversation.
// Messages are never updated or deleted; ids within a session are assigned
// in append order and are strictly increasing.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]chatmodel.Session
	messages map[string][]chatmodel.Message
	greeting string
}

// NewService bootstraps the in-memory store. Every session it creates is
// seeded with the supplied greeting as the first bot message.
func NewService(greeting string) *Service {
	return &Service{
		sessions: make(map[string]chatmodel.Session),
		messages: make(map[string][]chatmodel.Message),
		greeting: greeting,
	}
}

// CreateSession provisions a session whose transcript already holds the
// greeting message.
func (s *Service) CreateSession(_ context.Context) (chatmodel.Session, error) {
	now := time.Now().UTC()
	session := chatmodel.Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		LastActive: now,
	}

	seed := chatmodel.Message{
		ID:        1,
		SessionID: session.ID,
		Sender:    chatmodel.SenderBot,
		Text:      s.greeting,
		CreatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = append(make([]chatmodel.Message, 0, 16), seed)
	s.mu.Unlock()

	return session, nil
}

// AppendMessage adds a message to the end of the session transcript,
// assigning the next sequential id and the current time. An unknown sender
// is a programming defect and rejects the whole call.
func (s *Service) AppendMessage(_ context.Context, sessionID string, sender chatmodel.Sender, text string) (chatmodel.Message, error) {
	if !sender.Valid() {
		return chatmodel.Message{}, ErrInvalidSender
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chatmodel.Message{}, ErrSessionNotFound
	}

	transcript := s.messages[sessionID]
	message := chatmodel.Message{
		ID:        int64(len(transcript)) + 1,
		SessionID: sessionID,
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.messages[sessionID] = append(transcript, message)

	session.LastActive = message.CreatedAt
	s.sessions[sessionID] = session

	return message, nil
}

// GetSession retrieves session metadata by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chatmodel.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chatmodel.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Transcript returns an ordered copy of the session messages. Mutating the
// returned slice has no effect on the store.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chatmodel.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chatmodel.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// CloseSession discards the session and its transcript.
func (s *Service) CloseSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.messages, sessionID)
	return nil
}

// IdleSessions lists sessions without activity for at least maxIdle.
func (s *Service) IdleSessions(maxIdle time.Duration) []string {
	cutoff := time.Now().UTC().Add(-maxIdle)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var idle []string
	for id, session := range s.sessions {
		if session.LastActive.Before(cutoff) {
			idle = append(idle, id)
		}
	}
	return idle
}
