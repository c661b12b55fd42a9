package entity

// SessionData is the payload stored for an authenticated session.
type SessionData struct {
	UserID int `json:"user_id"`
}

// Session is the row mirrored into the sessions table on login.
type Session struct {
	SessionID string `json:"session_id"`
	UserID    int    `json:"user_id"`
}

// Message is the confirmation body returned by update and delete operations.
type Message struct {
	Message string `json:"message"`
}
