package storage

import (
	"context"
	"time"
)

// SessionStorage defines interface for persisting the console session
// on the client. The token is stored as-is: it is an opaque bearer
// credential, its validity is decided by the server (a 401 on any
// authenticated call is what ends the session).
type SessionStorage interface {
	// SaveSession stores session data, replacing any previous session
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes the stored session (logout or 401)
	DeleteSession(ctx context.Context) error

	// IsAuthenticated reports whether a session is present.
	// Presence alone grants access, no client-side expiry check.
	IsAuthenticated(ctx context.Context) (bool, error)
}

// SessionData представляет сохраненную сессию консоли
type SessionData struct {
	Username    string    `json:"username"`
	AccessToken string    `json:"access_token"`
	CreatedAt   time.Time `json:"created_at"`
}
