package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const issuer = "laporrt-service"

// Claims is the payload of a session token.
type Claims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// Issue signs a token for s, valid until s.ExpiresAt.
func (t *Tokens) Issue(s *Session, now time.Time) (string, error) {
	claims := Claims{
		SessionID: s.ID,
		Role:      string(s.Account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Account.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies signature, issuer and expiry.
func (t *Tokens) Parse(tokenString string) (*Claims, error) {
	return t.parse(tokenString)
}

// ParseUnverifiedExpiry verifies the signature but accepts expired tokens,
// so that logout works after expiry.
func (t *Tokens) ParseUnverifiedExpiry(tokenString string) (*Claims, error) {
	return t.parse(tokenString, jwt.WithoutClaimsValidation())
}

func (t *Tokens) parse(tokenString string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, errors.New("malformed session token")
	}
	return claims, nil
}
