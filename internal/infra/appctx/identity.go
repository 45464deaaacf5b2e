package appctx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"
	usnKey    ctxKey = "usn"
	roleKey   ctxKey = "role"
)

// WithIdentity stores the authenticated caller's identity in the context.
func WithIdentity(ctx context.Context, id uuid.UUID, usn, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, id)
	ctx = context.WithValue(ctx, usnKey, usn)
	return context.WithValue(ctx, roleKey, role)
}

func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func USN(ctx context.Context) (string, bool) {
	usn, ok := ctx.Value(usnKey).(string)
	return usn, ok
}

func Role(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}
