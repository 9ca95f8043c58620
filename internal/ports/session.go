package ports

import (
	"context"
	"time"
)

// SessionStore resolves widget session cookies to company ids. Sessions are
// minted by the domain-confirmation flow, which lives outside this service;
// here they are only resolved and refreshed.
type SessionStore interface {
	// Get returns the company id bound to the session; ("", nil) when the
	// session is unknown or expired.
	Get(ctx context.Context, sessionID string) (string, error)

	// Set binds a session id to a company id for the given lifetime.
	Set(ctx context.Context, sessionID, companyID string, ttl time.Duration) error

	// Delete drops a session.
	Delete(ctx context.Context, sessionID string) error
}
