package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrNoToken        = errors.New("no session token")
	ErrMalformedToken = errors.New("malformed session token")
	ErrExpiredToken   = errors.New("session token expired")
	ErrUnknownRole    = errors.New("session token carries an unknown role")
	ErrNoSecret       = errors.New("session secret is empty")
)

// Session is the decoded identity carried by a valid session token.
type Session struct {
	Subject   string      `json:"subject"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == domain.RoleAdmin
}

type claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthToken signs and verifies HS256 session tokens.
type AuthToken struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthToken(secretKey string) *AuthToken {
	return &AuthToken{
		secretKey: []byte(secretKey),
		ttl:       DefaultTTL,
		now:       time.Now,
	}
}

// WithTTL allows customising the expiration duration.
func (at *AuthToken) WithTTL(ttl time.Duration) *AuthToken {
	if ttl > 0 {
		at.ttl = ttl
	}
	return at
}

// GenerateToken issues a token for user.
func (at *AuthToken) GenerateToken(user domain.User) (string, error) {
	if len(at.secretKey) == 0 {
		return "", ErrNoSecret
	}

	now := at.now()
	c := claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(at.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(at.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates tokenString and returns its session. Tokens whose
// role is not one the storefront knows are rejected with ErrUnknownRole.
func (at *AuthToken) VerifyToken(tokenString string) (*Session, error) {
	if len(at.secretKey) == 0 {
		return nil, ErrNoSecret
	}
	if tokenString == "" {
		return nil, ErrNoToken
	}

	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return at.secretKey, nil
	}, jwt.WithTimeFunc(at.now), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformedToken)
	}

	role := domain.Role(c.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, c.Role)
	}

	s := &Session{
		Subject: c.Subject,
		Email:   c.Email,
		Name:    c.Name,
		Role:    role,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}
