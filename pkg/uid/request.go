package uid

import "github.com/google/uuid"

// NewRequestID tags one decision request in logs and responses.
func NewRequestID() string {
	return uuid.NewString()
}

// NewConnectionID tags a websocket connection; every request on it gets
// its own request ID as well.
func NewConnectionID() string {
	return "conn-" + uuid.NewString()
}
