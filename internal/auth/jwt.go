package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window for issued tokens.
const TokenTTL = 600 * time.Second

var (
	// ErrMissingCredentials means username or password was empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials means the pair did not match the configured one.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Claims represents the claims in our JWT token
type Claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// Service issues and verifies bearer tokens for the single configured
// credential pair. Tokens are self-contained: verification is a pure
// function of the token bytes, the secret and the current time, so there
// is no revocation before natural expiry.
type Service struct {
	secret   []byte
	username string
	password string
	now      func() time.Time
}

// NewService creates a token service signing with the given secret.
func NewService(secret, username, password string) *Service {
	return &Service{
		secret:   []byte(secret),
		username: username,
		password: password,
		now:      time.Now,
	}
}

// IssueToken checks the credential pair and returns a signed token
// embedding the username, valid for TokenTTL.
func (s *Service) IssueToken(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}
	if username != s.username || password != s.password {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := &Claims{
		User: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates a token and returns its claims. It fails closed:
// a bad signature, a tampered payload and an expired token are all the
// same single rejection.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// TTLSeconds reports the token validity window for the issuance response.
func (s *Service) TTLSeconds() int {
	return int(TokenTTL / time.Second)
}
