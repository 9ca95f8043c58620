package domain

import "context"

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const (
	companyIDKey contextKey = "company_id"
	sessionIDKey contextKey = "session_id"
)

// WithCompanyID attaches the session's company id to the context.
func WithCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, companyIDKey, companyID)
}

// CompanyIDFromContext returns the session's company id, or "" when the
// request carried no confirmed session.
func CompanyIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(companyIDKey).(string); ok {
		return v
	}
	return ""
}

// WithSessionID attaches the resolved session id to the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// SessionIDFromContext returns the session id, or "" when absent.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}
