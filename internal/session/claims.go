package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is display-only information decoded from the bearer token. The
// token is parsed without signature verification — the backend is the only
// party that validates it; the console just shows what it carries.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Claims decodes the current token. Returns an error when no token is set
// or the token is not a JWT (opaque tokens are legal; callers should treat
// this as "nothing to display").
func (s *Store) Claims() (*Claims, error) {
	tok := s.gw.Token()
	if tok == "" {
		return nil, fmt.Errorf("no active session")
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	out := &Claims{}
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if iat, err := parsed.Claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
