package models

import "time"

// FriendRequestStatus is the state of a friend request.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a directed proposal from Sender to Receiver. At most one
// row exists per ordered (sender, receiver) pair.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	SenderID   uint                `gorm:"not null;uniqueIndex:idx_friend_requests_pair,priority:1;index:idx_friend_requests_sender_sent_at,priority:1" json:"sender_id"`
	ReceiverID uint                `gorm:"not null;uniqueIndex:idx_friend_requests_pair,priority:2;index:idx_friend_requests_receiver_status,priority:1" json:"receiver_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_friend_requests_receiver_status,priority:2" json:"status"`
	Timestamp  time.Time           `gorm:"column:sent_at;not null;index:idx_friend_requests_sender_sent_at,priority:2" json:"timestamp"`

	Sender   User `gorm:"foreignKey:SenderID;references:ID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID" json:"-"`
}

// FriendRequestResponse is the public representation of a request.
type FriendRequestResponse struct {
	ID        uint                `json:"id"`
	Sender    UserResponse        `json:"sender"`
	Receiver  UserResponse        `json:"receiver"`
	Status    FriendRequestStatus `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
}

// SendFriendRequest is the body of the send endpoint. A missing receiver_id
// decodes to 0 and is reported as an unknown receiver.
type SendFriendRequest struct {
	ReceiverID uint `json:"receiver_id"`
}

// NewFriendRequestResponse expects Sender and Receiver to be loaded.
func NewFriendRequestResponse(fr *FriendRequest) FriendRequestResponse {
	return FriendRequestResponse{
		ID:        fr.ID,
		Sender:    NewUserResponse(&fr.Sender),
		Receiver:  NewUserResponse(&fr.Receiver),
		Status:    fr.Status,
		Timestamp: fr.Timestamp,
	}
}

func NewFriendRequestResponses(requests []FriendRequest) []FriendRequestResponse {
	out := make([]FriendRequestResponse, len(requests))
	for i := range requests {
		out[i] = NewFriendRequestResponse(&requests[i])
	}
	return out
}
