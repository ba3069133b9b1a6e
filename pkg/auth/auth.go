package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the JWT payload issued on login and parsed by the auth middleware.
type Claims struct {
	Profile struct {
		UserID  int    `json:"userId"`
		Name    string `json:"name"`
		IsAdmin bool   `json:"isAdmin"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the caller resolved for the current request.
type Identity struct {
	UserID  int
	Name    string
	IsAdmin bool
}

type ctxKey struct{}

func SetAuthContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

func UserID(ctx context.Context) int {
	id, _ := FromContext(ctx)
	return id.UserID
}

func UserName(ctx context.Context) string {
	id, _ := FromContext(ctx)
	return id.Name
}

func IsAdmin(ctx context.Context) bool {
	id, _ := FromContext(ctx)
	return id.IsAdmin
}
