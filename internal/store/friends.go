package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/mzansigossip/backend/internal/models"
)

// SendFriendRequest creates a pending request from one user to another. It
// rejects self-requests, unknown targets, pairs that are already friends,
// and a duplicate while a pending request for the same ordered pair exists.
// A previously declined request does not block resubmission. The mutual
// friend count is computed now and frozen on the request.
func (s *Store) SendFriendRequest(_ context.Context, fromID, toID string) (models.FriendRequest, error) {
	if fromID == toID {
		return models.FriendRequest{}, fmt.Errorf("cannot friend yourself: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.userByIDLocked(fromID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	to, err := s.userByIDLocked(toID)
	if err != nil {
		return models.FriendRequest{}, err
	}

	if s.users[from].HasFriend(toID) {
		return models.FriendRequest{}, fmt.Errorf("already friends: %w", ErrConflict)
	}
	for i := range s.friendRequests {
		r := &s.friendRequests[i]
		if r.FromUserID == fromID && r.ToUserID == toID && r.Status == models.FriendRequestPending {
			return models.FriendRequest{}, fmt.Errorf("request already pending: %w", ErrConflict)
		}
	}

	request := models.FriendRequest{
		ID:            uuid.NewString(),
		FromUserID:    fromID,
		ToUserID:      toID,
		Status:        models.FriendRequestPending,
		MutualFriends: intersectionSize(s.users[from].Friends, s.users[to].Friends),
		CreatedAt:     s.now(),
	}
	s.friendRequests = append(s.friendRequests, request)

	s.appendNotificationLocked(models.Notification{
		Type:       models.NotificationFriendRequest,
		FromUserID: fromID,
		ToUserID:   toID,
		Message:    "sent you a friend request",
	})
	s.saveLocked(keyFriendRequests, keyNotifications)

	return request, nil
}

// AcceptFriendRequest flips a pending request to accepted and makes the
// friend edge symmetric: both users' friend sets gain the other's id within
// the same locked mutation, so no interleaving can observe one side only.
// Only the receiver may accept.
func (s *Store) AcceptFriendRequest(_ context.Context, requestID, actorID string) (models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.friendRequestLocked(requestID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	request := &s.friendRequests[i]

	if request.ToUserID != actorID {
		return models.FriendRequest{}, fmt.Errorf("only the receiver may respond: %w", ErrForbidden)
	}
	if request.Status != models.FriendRequestPending {
		return models.FriendRequest{}, fmt.Errorf("request already %s: %w", request.Status, ErrConflict)
	}

	from, err := s.userByIDLocked(request.FromUserID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	to, err := s.userByIDLocked(request.ToUserID)
	if err != nil {
		return models.FriendRequest{}, err
	}

	now := s.now()
	request.Status = models.FriendRequestAccepted
	request.RespondedAt = &now

	if !s.users[from].HasFriend(request.ToUserID) {
		s.users[from].Friends = append(s.users[from].Friends, request.ToUserID)
	}
	if !s.users[to].HasFriend(request.FromUserID) {
		s.users[to].Friends = append(s.users[to].Friends, request.FromUserID)
	}

	s.appendNotificationLocked(models.Notification{
		Type:       models.NotificationFriendAccept,
		FromUserID: actorID,
		ToUserID:   request.FromUserID,
		Message:    "accepted your friend request",
	})
	s.saveLocked(keyFriendRequests, keyUsers, keyNotifications)

	return *request, nil
}

// DeclineFriendRequest flips a pending request to declined. The record
// remains in the collection as history; the state is terminal.
func (s *Store) DeclineFriendRequest(_ context.Context, requestID, actorID string) (models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.friendRequestLocked(requestID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	request := &s.friendRequests[i]

	if request.ToUserID != actorID {
		return models.FriendRequest{}, fmt.Errorf("only the receiver may respond: %w", ErrForbidden)
	}
	if request.Status != models.FriendRequestPending {
		return models.FriendRequest{}, fmt.Errorf("request already %s: %w", request.Status, ErrConflict)
	}

	now := s.now()
	request.Status = models.FriendRequestDeclined
	request.RespondedAt = &now
	s.saveLocked(keyFriendRequests)

	return *request, nil
}

// FriendRequestsFor returns requests where the user is sender or receiver,
// newest first.
func (s *Store) FriendRequestsFor(_ context.Context, userID string) []models.FriendRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.FriendRequest
	for i := range s.friendRequests {
		if s.friendRequests[i].FromUserID == userID || s.friendRequests[i].ToUserID == userID {
			out = append(out, s.friendRequests[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// FriendsOf resolves the user's friend ids to user records.
func (s *Store) FriendsOf(_ context.Context, userID string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.userByIDLocked(userID)
	if err != nil {
		return nil, err
	}

	var out []models.User
	for _, friendID := range s.users[i].Friends {
		if j, err := s.userByIDLocked(friendID); err == nil {
			out = append(out, cloneUser(s.users[j]))
		}
	}
	return out, nil
}

// MutualFriends recomputes the live intersection of both users' friend
// sets, unlike the frozen count carried on a request.
func (s *Store) MutualFriends(_ context.Context, aID, bID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.userByIDLocked(aID)
	if err != nil {
		return 0, err
	}
	b, err := s.userByIDLocked(bID)
	if err != nil {
		return 0, err
	}
	return intersectionSize(s.users[a].Friends, s.users[b].Friends), nil
}

func (s *Store) friendRequestLocked(id string) (int, error) {
	for i := range s.friendRequests {
		if s.friendRequests[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("friend request %s: %w", id, ErrNotFound)
}

func intersectionSize(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	count := 0
	for _, id := range b {
		if _, ok := set[id]; ok {
			count++
		}
	}
	return count
}
