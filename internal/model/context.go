package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated caller through a request.
// GetUserIDFromContext reports false when no caller was attached.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
