// Package auth defines the session identity attached to every request.
//
// The identity provider itself is external: this service only verifies
// bearer tokens it is handed and extracts the user id and role from them.
package auth

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
)

// Role distinguishes regular shoppers from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session identifies the acting user for the duration of one operation.
// It is always passed explicitly; nothing reads identity from globals.
type Session struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// ErrUnauthenticated is returned when a token is missing, expired, or
// malformed.
var ErrUnauthenticated = errors.New("unauthenticated")

type sessionKey struct{}

// WithSession returns a context carrying the given session.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom extracts the session from the context. The second return value
// is false when the request was not authenticated.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// ParseToken verifies an HS256 bearer token and extracts the session from its
// claims. The subject claim carries the user id; a "role" claim of "admin"
// grants administrator rights, anything else is a regular user.
func ParseToken(tokenString string, secret []byte) (Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Session{}, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrUnauthenticated
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Session{}, ErrUnauthenticated
	}

	role := RoleUser
	if r, _ := claims["role"].(string); r == string(RoleAdmin) {
		role = RoleAdmin
	}

	return Session{UserID: sub, Role: role}, nil
}

// SignToken issues an HS256 token for the given session. Used by the seed
// tool to mint bootstrap credentials; production tokens come from the
// identity provider.
func SignToken(s Session, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  s.UserID,
		"role": string(s.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}
