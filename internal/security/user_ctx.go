// Package security turns request tokens into the acting user.
package security

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidToken = errors.New("invalid auth token")

// UserCtx identifies the caller of a repository operation.
type UserCtx struct {
	UserID int64
}

// UserCtxFromToken decodes a token. Tokens are currently the decimal user id.
// TODO: verify signed tokens once an identity provider is wired in.
func UserCtxFromToken(token string) (*UserCtx, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &UserCtx{UserID: id}, nil
}

type userCtxKey struct{}

func WithUserCtx(ctx context.Context, utx *UserCtx) context.Context {
	return context.WithValue(ctx, userCtxKey{}, utx)
}

func UserCtxFrom(ctx context.Context) (*UserCtx, bool) {
	utx, ok := ctx.Value(userCtxKey{}).(*UserCtx)
	return utx, ok && utx != nil
}
