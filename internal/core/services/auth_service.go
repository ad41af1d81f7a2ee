package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/google/uuid"
)

type AuthService struct {
	repo   domain.UserRepository
	tokens *TokenService
}

func NewAuthService(repo domain.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	id := uuid.NewString()
	user, err := domain.NewUser(id, input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns a signed token. Unknown emails and
// wrong passwords both map to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("auth service: failed to load user: %w", err)
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(user.ID)
}
