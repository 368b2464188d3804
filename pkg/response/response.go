package response

const (
	StatusSuccess = "success"

	MsgFriendsListed   = "Friends list retrieved successfully."
	MsgPendingListed   = "Pending friend requests retrieved successfully."
	MsgLoginSuccessful = "LogIn Successful"
	MsgLoggedOut       = "Logged out"
	MsgRequestAccepted = "Friend request accepted"
	MsgRequestRejected = "Friend request rejected"
)

// Envelope wraps list payloads as {status, data, message}.
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func Success(data interface{}, message string) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Message: message}
}
