package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

// TokenTTL is the fixed lifetime of every identity token. There is no refresh.
const TokenTTL = 7 * 24 * time.Hour

// Claims is the identity token payload. The account id travels as the JWT
// subject; issued-at and expiry as iat/exp.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AccountID returns the subject of the token.
func (c *Claims) AccountID() string { return c.Subject }

// TokenService signs and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for accountID with role, expiring TokenTTL from now.
func (s *TokenService) Issue(accountID string, role domain.Role) (string, error) {
	if accountID == "" {
		return "", errors.New("issue token: empty account id")
	}
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature, structure and expiry. Every failure is reported
// as domain.ErrTokenInvalid so callers cannot tell which check failed.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
