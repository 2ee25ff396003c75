package context

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// userIDKey holds the authenticated caller's id in a request context.
var userIDKey = ctxKey{}

// Manager stores and retrieves the caller's user ID on request contexts.
// The authentication middleware sets the ID and activity handlers read it.
type Manager struct{}

// NewManager creates a new context manager instance.
//
// Returns a pointer to the newly created Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a copy of ctx carrying userID.
//
// Parameters:
//   - ctx: The request context to derive from
//   - userID: The authenticated caller's ID
//
// Returns the derived context carrying the user ID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext returns the user ID set by SetUserIDToContext.
//
// Parameters:
//   - ctx: The request context to read from
//
// Returns the user ID and true, or uuid.Nil and false when no ID or a nil ID
// is present.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
