package admin

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "mealshare/pkg/domain-errors"
)

const (
	tokenIssuer = "mealshare-gateway"
	adminScope  = "admin"
)

type claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Tokens signs and parses HS256 session tokens.
type Tokens struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokens(signingKey string, ttl time.Duration) *Tokens {
	return &Tokens{signingKey: []byte(signingKey), ttl: ttl}
}

// Issue signs a new session token valid from now for the configured TTL.
func (t *Tokens) Issue(now time.Time) (string, Session, error) {
	session := Session{
		ID:        uuid.NewString(),
		IssuedAt:  now.Truncate(time.Second),
		ExpiresAt: now.Add(t.ttl).Truncate(time.Second),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Scope: adminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})
	signed, err := token.SignedString(t.signingKey)
	if err != nil {
		return "", Session{}, err
	}
	return signed, session, nil
}

// Parse verifies signature, issuer and expiry as of now.
func (t *Tokens) Parse(tokenString string, now time.Time) (Session, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		return t.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "admin session has expired")
		}
		return Session{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid admin session")
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Scope != adminScope || c.ID == "" {
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, "invalid admin session")
	}
	return Session{
		ID:        c.ID,
		IssuedAt:  c.IssuedAt.Time,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
