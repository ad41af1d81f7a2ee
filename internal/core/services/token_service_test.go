package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-coach/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "kanso-test"
	userID := "user-123-uuid"
	ctx := context.Background()

	setup := func() (*TokenService, *MockUserRepository) {
		mockRepo := new(MockUserRepository)
		return NewTokenService(secret, issuer, 1*time.Hour, mockRepo), mockRepo
	}

	t.Run("Success: Should generate and validate a token", func(t *testing.T) {
		service, mockRepo := setup()

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		extractedID, err := service.ValidateToken(ctx, tokenString)
		assert.NoError(t, err)
		assert.Equal(t, userID, extractedID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject valid token if user is deleted (DB check)", func(t *testing.T) {
		service, mockRepo := setup()

		mockRepo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrUserNotFound)

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)

		extractedID, err := service.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrTokenUserGone)
		assert.Empty(t, extractedID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should surface lookup failures separately from deleted users", func(t *testing.T) {
		service, mockRepo := setup()
		dbErr := errors.New("connection refused")

		mockRepo.On("GetByID", mock.Anything, userID).Return(nil, dbErr)

		tokenString, _ := service.GenerateToken(userID)
		_, err := service.ValidateToken(ctx, tokenString)

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrTokenUserGone)
	})

	t.Run("Fail: Should reject expired token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewTokenService(secret, issuer, -1*time.Second, mockRepo)

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)

		extractedID, err := service.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject token with wrong secret (Tampered)", func(t *testing.T) {
		service, _ := setup()
		tokenString, _ := service.GenerateToken(userID)

		mockRepoAttacker := new(MockUserRepository)
		attackerService := NewTokenService("wrong-key", issuer, 1*time.Hour, mockRepoAttacker)

		extractedID, err := attackerService.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject token with wrong issuer", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		serviceA := NewTokenService(secret, "correct-issuer", 1*time.Hour, mockRepo)
		tokenString, _ := serviceA.GenerateToken(userID)

		serviceB := NewTokenService(secret, "wrong-issuer", 1*time.Hour, mockRepo)

		extractedID, err := serviceB.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidTokenIssuer)
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject 'None' algorithm attack", func(t *testing.T) {
		token := jwt.New(jwt.SigningMethodNone)
		claims := token.Claims.(jwt.MapClaims)
		claims["sub"] = userID
		claims["iss"] = issuer

		fakeTokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

		service, _ := setup()
		_, err := service.ValidateToken(ctx, fakeTokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Fail: Should reject a token without expiry", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: userID, Issuer: issuer})
		tokenString, _ := token.SignedString([]byte(secret))

		service, _ := setup()
		_, err := service.ValidateToken(ctx, tokenString)

		assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
	})

	t.Run("Fail: Should reject a token without subject", func(t *testing.T) {
		service, mockRepo := setup()
		tokenString, _ := service.GenerateToken("")

		_, err := service.ValidateToken(ctx, tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Success: Expiry follows the service clock", func(t *testing.T) {
		service, mockRepo := setup()
		issued := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
		service.now = func() time.Time { return issued }
		tokenString, _ := service.GenerateToken(userID)

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)
		service.now = func() time.Time { return issued.Add(59 * time.Minute) }
		_, err := service.ValidateToken(ctx, tokenString)
		assert.NoError(t, err)

		service.now = func() time.Time { return issued.Add(61 * time.Minute) }
		_, err = service.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Fail: Should reject malformed token string", func(t *testing.T) {
		service, _ := setup()

		extractedID, err := service.ValidateToken(ctx, "this-is-not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Empty(t, extractedID)
	})
}
