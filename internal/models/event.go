package models

import "time"

type EventType string

const (
	EventFriendRequestSent     EventType = "friend_request.sent"
	EventFriendRequestAccepted EventType = "friend_request.accepted"
	EventFriendRequestRejected EventType = "friend_request.rejected"
)

// FriendRequestEvent describes one transition of a friend request.
type FriendRequestEvent struct {
	ID         string              `json:"id"`
	Type       EventType           `json:"type"`
	RequestID  uint                `json:"request_id"`
	SenderID   uint                `json:"sender_id"`
	ReceiverID uint                `json:"receiver_id"`
	Status     FriendRequestStatus `json:"status"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Recipient is the user who should be notified: the receiver learns about
// new requests, the sender learns how their request was answered.
func (e FriendRequestEvent) Recipient() uint {
	if e.Type == EventFriendRequestSent {
		return e.ReceiverID
	}
	return e.SenderID
}
