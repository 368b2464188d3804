package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"friend-service/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Serializable transactions abort with this SQLSTATE when they conflict.
const sqlStateSerializationFailure = "40001"

const (
	maxTxAttempts  = 5
	txRetryBackoff = 10 * time.Millisecond
)

var (
	ErrRequestExists    = errors.New("friend request already exists")
	ErrFriendshipExists = errors.New("friendship already exists")
	// ErrStatusChanged means the request left the expected status between read and write.
	ErrStatusChanged = errors.New("friend request status changed concurrently")
)

type FriendRepository interface {
	// Transaction runs fn against a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(tx FriendRepository) error) error

	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	RequestExists(ctx context.Context, senderID, receiverID uint) (bool, error)
	CountSentSince(ctx context.Context, senderID uint, since time.Time) (int64, error)
	FindRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	TransitionStatus(ctx context.Context, id uint, from, to models.FriendRequestStatus) error
	ListReceived(ctx context.Context, receiverID uint) ([]models.FriendRequest, error)
	ListReceivedByStatus(ctx context.Context, receiverID uint, status models.FriendRequestStatus) ([]models.FriendRequest, error)

	FriendshipExists(ctx context.Context, userA, userB uint) (bool, error)
	CreateFriendship(ctx context.Context, friendship *models.Friendship) error
	ListFriends(ctx context.Context, userID uint) ([]models.User, error)
}

type friendRepository struct {
	db     *gorm.DB
	txOpts []*sql.TxOptions
}

// NewFriendRepository returns a gorm backed ledger. With serializable set,
// transactions run at SERIALIZABLE isolation.
func NewFriendRepository(db *gorm.DB, serializable bool) FriendRepository {
	r := &friendRepository{db: db}
	if serializable {
		r.txOpts = []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}
	return r
}

// Transaction reruns fn from scratch when the database aborts it as a
// serialization failure, up to maxTxAttempts times.
func (r *friendRepository) Transaction(ctx context.Context, fn func(tx FriendRepository) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&friendRepository{db: tx})
		}, r.txOpts...)
		if !isSerializationFailure(err) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * txRetryBackoff):
		}
	}
	return fmt.Errorf("transaction conflicted %d times: %w", maxTxAttempts, err)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlStateSerializationFailure
}

func (r *friendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRequestExists
		}
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// RequestExists only looks at the sender -> receiver direction.
func (r *friendRepository) RequestExists(ctx context.Context, senderID, receiverID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) CountSentSince(ctx context.Context, senderID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("sender_id = ? AND sent_at >= ?", senderID, since).
		Count(&count).Error
	return count, err
}

func (r *friendRepository) FindRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *friendRepository) TransitionStatus(ctx context.Context, id uint, from, to models.FriendRequestStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("failed to update friend request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *friendRepository) ListReceived(ctx context.Context, receiverID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("receiver_id = ?", receiverID).
		Order("sent_at DESC, id DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return requests, nil
}

func (r *friendRepository) ListReceivedByStatus(ctx context.Context, receiverID uint, status models.FriendRequestStatus) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("receiver_id = ? AND status = ?", receiverID, status).
		Order("sent_at, id").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s friend requests: %w", status, err)
	}
	return requests, nil
}

// FriendshipExists checks the unordered pair.
func (r *friendRepository) FriendshipExists(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("pair_key = ?", models.PairKey(userA, userB)).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) CreateFriendship(ctx context.Context, friendship *models.Friendship) error {
	if err := r.db.WithContext(ctx).Create(friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrFriendshipExists
		}
		return fmt.Errorf("failed to create friendship: %w", err)
	}
	return nil
}

// ListFriends returns every user linked to userID by an accepted request in
// either direction, each once.
func (r *friendRepository) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)

	asReceiver := db.Model(&models.FriendRequest{}).
		Select("sender_id").
		Where("receiver_id = ? AND status = ?", userID, models.FriendRequestAccepted)
	asSender := db.Model(&models.FriendRequest{}).
		Select("receiver_id").
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestAccepted)

	var friends []models.User
	err := db.Where("id IN (?) OR id IN (?)", asReceiver, asSender).
		Order("id").
		Find(&friends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}
