package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mzansigossip/backend/internal/models"
)

// DefaultProfilePic is assigned to fabricated and new accounts.
const DefaultProfilePic = "/placeholder.svg?height=40&width=40"

// NewUserParams carries the signup fields.
type NewUserParams struct {
	Email       string
	DisplayName string
	Gender      string
	Bio         string
	Interests   []string
}

// CreateUser registers a new account. Email uniqueness is enforced
// unconditionally; displayName is required.
func (s *Store) CreateUser(_ context.Context, params NewUserParams) (models.User, error) {
	email := strings.TrimSpace(strings.ToLower(params.Email))
	displayName := strings.TrimSpace(params.DisplayName)
	if email == "" {
		return models.User{}, fmt.Errorf("email is required: %w", ErrInvalid)
	}
	if displayName == "" {
		return models.User{}, fmt.Errorf("display name is required: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByEmailLocked(email); ok {
		return models.User{}, fmt.Errorf("email %s: %w", email, ErrConflict)
	}

	now := s.now()
	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		ProfilePic:  DefaultProfilePic,
		Gender:      strings.TrimSpace(params.Gender),
		Bio:         strings.TrimSpace(params.Bio),
		Interests:   params.Interests,
		IsOnline:    true,
		Friends:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.users = append(s.users, user)
	s.saveLocked(keyUsers)

	return user, nil
}

// EnsureUser implements the login identity rule: reuse the account matching
// the email when one exists, otherwise fabricate one named after the email
// local-part. Either way the user comes back marked online.
func (s *Store) EnsureUser(_ context.Context, email string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return models.User{}, fmt.Errorf("email is required: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.userByEmailLocked(email); ok {
		s.users[i].IsOnline = true
		s.users[i].UpdatedAt = s.now()
		s.saveLocked(keyUsers)
		return s.users[i], nil
	}

	displayName := email
	if at := strings.Index(email, "@"); at > 0 {
		displayName = email[:at]
	}

	now := s.now()
	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: displayName,
		ProfilePic:  DefaultProfilePic,
		IsOnline:    true,
		Friends:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.users = append(s.users, user)
	s.saveLocked(keyUsers)

	return user, nil
}

// UserByID fetches a user record.
func (s *Store) UserByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.userByIDLocked(id)
	if err != nil {
		return models.User{}, err
	}
	return cloneUser(s.users[i]), nil
}

// SearchUsers returns users whose display name or email contains the query,
// case-insensitively. An empty query matches nobody.
func (s *Store) SearchUsers(_ context.Context, query string) []models.User {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.User
	for i := range s.users {
		if strings.Contains(strings.ToLower(s.users[i].DisplayName), query) ||
			strings.Contains(strings.ToLower(s.users[i].Email), query) {
			out = append(out, cloneUser(s.users[i]))
		}
	}
	return out
}

// ProfileUpdate carries optional profile edits; nil fields are untouched.
type ProfileUpdate struct {
	DisplayName *string
	ProfilePic  *string
	Bio         *string
	Gender      *string
	Interests   *[]string
}

// UpdateProfile edits the user record in place. No fan-out is needed:
// posts, comments, and messages reference the user by id and resolve
// display data at read time.
func (s *Store) UpdateProfile(_ context.Context, id string, update ProfileUpdate) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.userByIDLocked(id)
	if err != nil {
		return models.User{}, err
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return models.User{}, fmt.Errorf("display name is required: %w", ErrInvalid)
		}
		s.users[i].DisplayName = name
	}
	if update.ProfilePic != nil {
		s.users[i].ProfilePic = *update.ProfilePic
	}
	if update.Bio != nil {
		s.users[i].Bio = *update.Bio
	}
	if update.Gender != nil {
		s.users[i].Gender = *update.Gender
	}
	if update.Interests != nil {
		s.users[i].Interests = *update.Interests
	}
	s.users[i].UpdatedAt = s.now()
	s.saveLocked(keyUsers)

	return cloneUser(s.users[i]), nil
}

// SetOnline records the user's presence flag.
func (s *Store) SetOnline(_ context.Context, id string, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.userByIDLocked(id)
	if err != nil {
		return err
	}
	s.users[i].IsOnline = online
	s.saveLocked(keyUsers)
	return nil
}

func (s *Store) userByEmailLocked(email string) (int, bool) {
	for i := range s.users {
		if s.users[i].Email == email {
			return i, true
		}
	}
	return -1, false
}

func cloneUser(u models.User) models.User {
	out := u
	out.Friends = append([]string(nil), u.Friends...)
	out.Interests = append([]string(nil), u.Interests...)
	return out
}
