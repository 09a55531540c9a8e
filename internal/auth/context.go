package auth

import (
	"context"

	"hearth/internal/model"
)

type contextKey struct{}

type AuthContext struct {
	UserID         int64
	ActiveFamilyID string
	Persona        model.Member
	Token          string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func UserID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.UserID
}

// FamilyID returns the caller's active family id, or "" when none is active.
func FamilyID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.ActiveFamilyID
}

func Persona(ctx context.Context) model.Member {
	ac, ok := FromContext(ctx)
	if !ok {
		return model.Member{}
	}
	return ac.Persona
}
