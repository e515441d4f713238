package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/mzansigossip/backend/internal/models"
)

func validMessageType(t string) bool {
	switch t {
	case models.MessageText, models.MessageVoice, models.MessageImage, models.MessageVideo, models.MessageSong:
		return true
	}
	return false
}

// NewMessageParams carries one outgoing direct message. Text messages need
// a body; media messages need a media reference.
type NewMessageParams struct {
	ToUserID    string
	Message     string
	MediaURL    string
	MessageType string
}

// SendMessage appends a direct message with read=false. Ordering is
// append order within this process; there is no delivery acknowledgement.
func (s *Store) SendMessage(_ context.Context, fromID string, params NewMessageParams) (models.ChatMessage, error) {
	messageType := params.MessageType
	if messageType == "" {
		messageType = models.MessageText
	}
	if !validMessageType(messageType) {
		return models.ChatMessage{}, fmt.Errorf("unknown message type %q: %w", messageType, ErrInvalid)
	}

	body := strings.TrimSpace(params.Message)
	if messageType == models.MessageText && body == "" {
		return models.ChatMessage{}, fmt.Errorf("message text is required: %w", ErrInvalid)
	}
	if messageType != models.MessageText && params.MediaURL == "" {
		return models.ChatMessage{}, fmt.Errorf("%s message needs a media reference: %w", messageType, ErrInvalid)
	}
	if fromID == params.ToUserID {
		return models.ChatMessage{}, fmt.Errorf("cannot message yourself: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(fromID); err != nil {
		return models.ChatMessage{}, err
	}
	if _, err := s.userByIDLocked(params.ToUserID); err != nil {
		return models.ChatMessage{}, err
	}

	message := models.ChatMessage{
		ID:          uuid.NewString(),
		FromUserID:  fromID,
		ToUserID:    params.ToUserID,
		Message:     body,
		MediaURL:    params.MediaURL,
		MessageType: messageType,
		CreatedAt:   s.now(),
		Read:        false,
	}
	s.messages = append(s.messages, message)
	s.saveLocked(keyChatMessages)

	return message, nil
}

// OpenThread returns the conversation between the caller and another user
// in append order and marks every message from that user to the caller as
// read. Messages in the other direction are untouched.
func (s *Store) OpenThread(_ context.Context, userID, withID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(withID); err != nil {
		return nil, err
	}

	changed := false
	var thread []models.ChatMessage
	for i := range s.messages {
		m := &s.messages[i]
		switch {
		case m.FromUserID == withID && m.ToUserID == userID:
			if !m.Read {
				m.Read = true
				changed = true
			}
			thread = append(thread, *m)
		case m.FromUserID == userID && m.ToUserID == withID:
			thread = append(thread, *m)
		}
	}
	if changed {
		s.saveLocked(keyChatMessages)
	}
	return thread, nil
}

// UnreadCounts scans all messages addressed to the user and groups the
// unread ones by sender. Linear in the message count, which stays small.
func (s *Store) UnreadCounts(_ context.Context, userID string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for i := range s.messages {
		if s.messages[i].ToUserID == userID && !s.messages[i].Read {
			counts[s.messages[i].FromUserID]++
		}
	}
	return counts
}

// ThreadSummary describes one conversation in the inbox view.
type ThreadSummary struct {
	UserID      string             `json:"userId"`
	LastMessage models.ChatMessage `json:"lastMessage"`
	Unread      int                `json:"unread"`
}

// Threads summarises the user's conversations, most recent activity first.
func (s *Store) Threads(_ context.Context, userID string) []ThreadSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser := make(map[string]*ThreadSummary)
	for i := range s.messages {
		m := s.messages[i]

		var other string
		switch {
		case m.FromUserID == userID:
			other = m.ToUserID
		case m.ToUserID == userID:
			other = m.FromUserID
		default:
			continue
		}

		summary, ok := byUser[other]
		if !ok {
			summary = &ThreadSummary{UserID: other}
			byUser[other] = summary
		}
		// messages are append-ordered, so the latest seen wins
		summary.LastMessage = m
		if m.ToUserID == userID && !m.Read {
			summary.Unread++
		}
	}

	out := make([]ThreadSummary, 0, len(byUser))
	for _, summary := range byUser {
		out = append(out, *summary)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessage.CreatedAt.After(out[j].LastMessage.CreatedAt)
	})
	return out
}
