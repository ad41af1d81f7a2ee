package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenIssuer = errors.New("invalid token issuer")
	ErrTokenUserGone      = errors.New("user no longer exists")
)

// userLookupTimeout bounds the existence check made for every authenticated
// request.
const userLookupTimeout = 2 * time.Second

// TokenService issues and verifies the bearer tokens that authenticate API
// calls. Tokens are HS256-signed and carry only registered claims: sub is the
// user id, iss must match the configured issuer, exp is always required.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	users  domain.UserRepository
	now    func() time.Time
}

func NewTokenService(secret, issuer string, ttl time.Duration, users domain.UserRepository) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		users:  users,
		now:    time.Now,
	}
}

// GenerateToken signs a token for userID that expires after the configured TTL.
func (s *TokenService) GenerateToken(userID string) (string, error) {
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token service: sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature, algorithm, expiry and issuer, then makes
// sure the subject still has an account. It returns the user id.
func (s *TokenService) ValidateToken(ctx context.Context, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "", ErrInvalidTokenIssuer
	case err != nil:
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	case claims.Subject == "":
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	ctx, cancel := context.WithTimeout(ctx, userLookupTimeout)
	defer cancel()

	if _, err := s.users.GetByID(ctx, claims.Subject); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", ErrTokenUserGone
		}
		return "", fmt.Errorf("token service: look up user: %w", err)
	}
	return claims.Subject, nil
}
