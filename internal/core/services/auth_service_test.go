package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/config"
	"assettrack/internal/core/domain"
	"assettrack/internal/pkg/password"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:           "test-secret",
		RefreshSecret:    "test-refresh-secret",
		AccessTokenMins:  60,
		RefreshTokenDays: 7,
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := password.Hash("secret-pass")

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockRefreshTokenRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "secret-pass",
			setupMock: func(users *MockUserRepository, tokens *MockRefreshTokenRepository) {
				users.On("GetByUsername", mock.Anything, "alice").Return(&models.User{
					ID:           1,
					Username:     "alice",
					PasswordHash: hash,
					Role:         "USER",
				}, nil)
				tokens.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)
			},
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(users *MockUserRepository, tokens *MockRefreshTokenRepository) {
				users.On("GetByUsername", mock.Anything, "alice").Return(&models.User{
					ID:           1,
					Username:     "alice",
					PasswordHash: hash,
				}, nil)
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "secret-pass",
			setupMock: func(users *MockUserRepository, tokens *MockRefreshTokenRepository) {
				users.On("GetByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tokenRepo := new(MockRefreshTokenRepository)
			tt.setupMock(userRepo, tokenRepo)

			service := NewAuthService(userRepo, tokenRepo, testJWTConfig())
			result, err := service.Login(context.Background(), &LoginRequest{
				Username: tt.username,
				Password: tt.password,
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
				assert.Equal(t, "alice", result.User.Username)
			}
			userRepo.AssertExpectations(t)
			tokenRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh_RevokedTokenRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	// Issue a real pair first so the refresh token parses
	hash, _ := password.Hash("secret-pass")
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(&models.User{
		ID:           1,
		Username:     "alice",
		PasswordHash: hash,
	}, nil)
	tokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	service := NewAuthService(userRepo, tokenRepo, testJWTConfig())
	login, err := service.Login(context.Background(), &LoginRequest{Username: "alice", Password: "secret-pass"})
	assert.NoError(t, err)

	revokedAt := time.Now()
	tokenRepo.On("GetByTokenHash", mock.Anything, mock.AnythingOfType("string")).Return(&models.RefreshToken{
		ID:        1,
		UserID:    1,
		ExpiresAt: time.Now().Add(24 * time.Hour),
		RevokedAt: &revokedAt,
	}, nil)

	_, err = service.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	service := NewAuthService(userRepo, tokenRepo, testJWTConfig())

	// Garbage token logs out cleanly
	err := service.Logout(context.Background(), "not-a-token")
	assert.NoError(t, err)
}
