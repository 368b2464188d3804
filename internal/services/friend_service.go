package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"friend-service/internal/models"
	"friend-service/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReceiverNotFound   = errors.New("receiver not found")
	ErrSelfRequest        = errors.New("cannot send a friend request to yourself")
	ErrRequestAlreadySent = errors.New("friend request already sent")
	ErrRateLimited        = errors.New("too many friend requests")
	ErrRequestNotFound    = errors.New("friend request not found")
	ErrNotReceiver        = errors.New("caller is not the receiver of this request")
	ErrFriendshipExists   = errors.New("friendship already exists")
	ErrAlreadyRejected    = errors.New("friend request already rejected")
	ErrNotPending         = errors.New("friend request is not pending")
	ErrNoPendingRequests  = errors.New("no pending friend requests")
)

type FriendService struct {
	friends   repository.FriendRepository
	users     repository.UserRepository
	publisher EventPublisher
	limit     int
	window    time.Duration
	now       func() time.Time
}

// NewFriendService allows at most limit sends per sender within window.
func NewFriendService(
	friends repository.FriendRepository,
	users repository.UserRepository,
	publisher EventPublisher,
	limit int,
	window time.Duration,
) *FriendService {
	return &FriendService{
		friends:   friends,
		users:     users,
		publisher: publisher,
		limit:     limit,
		window:    window,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *FriendService) RequestLimit() (int, time.Duration) {
	return s.limit, s.window
}

// SendRequest validates in order: receiver exists, not self, no earlier
// request in this direction, sender under the rate limit.
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID uint) (*models.FriendRequestResponse, error) {
	if receiverID == 0 {
		return nil, ErrReceiverNotFound
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("failed to load receiver: %w", err)
	}
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	now := s.now()
	var created *models.FriendRequest

	err := s.friends.Transaction(ctx, func(tx repository.FriendRepository) error {
		exists, err := tx.RequestExists(ctx, senderID, receiverID)
		if err != nil {
			return fmt.Errorf("failed to check existing request: %w", err)
		}
		if exists {
			return ErrRequestAlreadySent
		}

		sent, err := tx.CountSentSince(ctx, senderID, now.Add(-s.window))
		if err != nil {
			return fmt.Errorf("failed to count recent requests: %w", err)
		}
		if sent >= int64(s.limit) {
			return ErrRateLimited
		}

		req := &models.FriendRequest{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     models.FriendRequestPending,
			Timestamp:  now,
		}
		if err := tx.CreateRequest(ctx, req); err != nil {
			if errors.Is(err, repository.ErrRequestExists) {
				return ErrRequestAlreadySent
			}
			return err
		}

		created, err = tx.FindRequestByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Friend request sent", "requestID", created.ID, "senderID", senderID, "receiverID", receiverID)
	s.publish(ctx, models.EventFriendRequestSent, created)

	resp := models.NewFriendRequestResponse(created)
	return &resp, nil
}

// AcceptRequest marks the request accepted and records the friendship.
func (s *FriendService) AcceptRequest(ctx context.Context, callerID, requestID uint) error {
	var accepted *models.FriendRequest

	err := s.friends.Transaction(ctx, func(tx repository.FriendRepository) error {
		req, err := s.loadForReceiver(ctx, tx, callerID, requestID)
		if err != nil {
			return err
		}

		exists, err := tx.FriendshipExists(ctx, req.SenderID, req.ReceiverID)
		if err != nil {
			return fmt.Errorf("failed to check friendship: %w", err)
		}
		if exists {
			return ErrFriendshipExists
		}
		if req.Status != models.FriendRequestPending {
			return ErrNotPending
		}

		if err := s.transition(ctx, tx, req, models.FriendRequestAccepted); err != nil {
			return err
		}

		friendship := &models.Friendship{User1ID: req.SenderID, User2ID: req.ReceiverID}
		if err := tx.CreateFriendship(ctx, friendship); err != nil {
			if errors.Is(err, repository.ErrFriendshipExists) {
				return ErrFriendshipExists
			}
			return err
		}

		accepted = req
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Friend request accepted", "requestID", requestID, "userID", callerID)
	s.publish(ctx, models.EventFriendRequestAccepted, accepted)
	return nil
}

// RejectRequest moves a pending or accepted request to rejected. An existing
// friendship is left in place.
func (s *FriendService) RejectRequest(ctx context.Context, callerID, requestID uint) error {
	var rejected *models.FriendRequest

	err := s.friends.Transaction(ctx, func(tx repository.FriendRepository) error {
		req, err := s.loadForReceiver(ctx, tx, callerID, requestID)
		if err != nil {
			return err
		}

		if req.Status == models.FriendRequestRejected {
			return ErrAlreadyRejected
		}

		if err := s.transition(ctx, tx, req, models.FriendRequestRejected); err != nil {
			return err
		}
		rejected = req
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Friend request rejected", "requestID", requestID, "userID", callerID)
	s.publish(ctx, models.EventFriendRequestRejected, rejected)
	return nil
}

// ListPending treats an empty result as ErrNoPendingRequests.
func (s *FriendService) ListPending(ctx context.Context, userID uint) ([]models.FriendRequestResponse, error) {
	requests, err := s.friends.ListReceivedByStatus(ctx, userID, models.FriendRequestPending)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, ErrNoPendingRequests
	}
	return models.NewFriendRequestResponses(requests), nil
}

// ListReceived returns every request addressed to the user, any status.
func (s *FriendService) ListReceived(ctx context.Context, userID uint) ([]models.FriendRequestResponse, error) {
	requests, err := s.friends.ListReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewFriendRequestResponses(requests), nil
}

// GetReceived hides requests addressed to someone else behind ErrRequestNotFound.
func (s *FriendService) GetReceived(ctx context.Context, userID, requestID uint) (*models.FriendRequestResponse, error) {
	req, err := s.friends.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to load friend request: %w", err)
	}
	if req.ReceiverID != userID {
		return nil, ErrRequestNotFound
	}
	resp := models.NewFriendRequestResponse(req)
	return &resp, nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]models.UserResponse, error) {
	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewUserResponses(friends), nil
}

func (s *FriendService) loadForReceiver(ctx context.Context, tx repository.FriendRepository, callerID, requestID uint) (*models.FriendRequest, error) {
	req, err := tx.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to load friend request: %w", err)
	}
	if req.ReceiverID != callerID {
		return nil, ErrNotReceiver
	}
	return req, nil
}

func (s *FriendService) transition(ctx context.Context, tx repository.FriendRepository, req *models.FriendRequest, to models.FriendRequestStatus) error {
	if err := tx.TransitionStatus(ctx, req.ID, req.Status, to); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return ErrNotPending
		}
		return err
	}
	req.Status = to
	return nil
}

// publish is best effort: the transition is already committed.
func (s *FriendService) publish(ctx context.Context, eventType models.EventType, req *models.FriendRequest) {
	if s.publisher == nil {
		return
	}
	event := models.FriendRequestEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		RequestID:  req.ID,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Status:     req.Status,
		Timestamp:  s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish friend request event", "type", eventType, "requestID", req.ID, "error", err)
	}
}
