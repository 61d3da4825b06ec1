package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated principal through a single
// request's context. Nothing outlives the request.
type ContextManager interface {
	SetUserID(ctx context.Context, userID uuid.UUID) context.Context
	UserID(ctx context.Context) (uuid.UUID, bool)
}
