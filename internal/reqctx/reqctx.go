// Package reqctx carries a scrape session's identity through a context.
package reqctx

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const sessionKey key = 0

// SessionContext identifies one scrape session
type SessionContext struct {
	SessionID string
	StartTime time.Time
}

// WithSession attaches a new session ID to ctx
func WithSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey, &SessionContext{
		SessionID: uuid.NewString(),
		StartTime: time.Now(),
	})
}

// FromContext returns the session attached to ctx, or an "unknown" placeholder
func FromContext(ctx context.Context) *SessionContext {
	if sc, ok := ctx.Value(sessionKey).(*SessionContext); ok {
		return sc
	}
	return &SessionContext{
		SessionID: "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the global logger tagged with the session ID
func Logger(ctx context.Context) zerolog.Logger {
	return log.With().Str("session_id", FromContext(ctx).SessionID).Logger()
}

// SessionError wraps an error with the session it happened in
type SessionError struct {
	SessionID string
	Err       error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("[%s] %v", e.SessionID, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError tags err with the session in ctx
func NewSessionError(ctx context.Context, err error) error {
	return &SessionError{
		SessionID: FromContext(ctx).SessionID,
		Err:       err,
	}
}
