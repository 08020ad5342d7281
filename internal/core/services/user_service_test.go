package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/core/domain"
)

func superAdminActor() *domain.AuthUser {
	return &domain.AuthUser{UserID: 1, Username: "root", Role: domain.RoleSuperAdmin}
}

func adminActor() *domain.AuthUser {
	return &domain.AuthUser{UserID: 2, Username: "admin", Role: domain.RoleAdmin}
}

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name          string
		actor         *domain.AuthUser
		req           *CreateUserRequest
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "admin creates regular user",
			actor: adminActor(),
			req:   &CreateUserRequest{Username: "alice", Password: "secret-pass", Role: "USER"},
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "alice", uint(0)).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
		},
		{
			name:          "admin cannot create admin",
			actor:         adminActor(),
			req:           &CreateUserRequest{Username: "bob", Password: "secret-pass", Role: "ADMIN"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: domain.ErrRoleNotAllowed,
		},
		{
			name:  "super admin creates admin",
			actor: superAdminActor(),
			req:   &CreateUserRequest{Username: "bob", Password: "secret-pass", Role: "ADMIN"},
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "bob", uint(0)).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
		},
		{
			name:          "super admin role never created via API",
			actor:         superAdminActor(),
			req:           &CreateUserRequest{Username: "eve", Password: "secret-pass", Role: "SUPER_ADMIN"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: domain.ErrRoleNotAllowed,
		},
		{
			name:          "short password rejected",
			actor:         adminActor(),
			req:           &CreateUserRequest{Username: "carol", Password: "short", Role: "USER"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:  "username taken",
			actor: adminActor(),
			req:   &CreateUserRequest{Username: "alice", Password: "secret-pass", Role: "USER"},
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "alice", uint(0)).Return(true, nil)
			},
			expectedError: domain.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tokenRepo := new(MockRefreshTokenRepository)
			tt.setupMock(userRepo)

			service := NewUserService(userRepo, tokenRepo)
			user, err := service.Create(context.Background(), tt.actor, tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.Username, user.Username)
				assert.Equal(t, tt.req.Role, user.Role)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Update_SuperAdminImmutable(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{
		ID:       1,
		Username: "root",
		Role:     string(domain.RoleSuperAdmin),
	}, nil)

	name := "hacked"
	service := NewUserService(userRepo, tokenRepo)
	_, err := service.Update(context.Background(), adminActor(), 1, &UpdateUserRequest{Username: &name})

	assert.ErrorIs(t, err, domain.ErrSuperAdminImmutable)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Update_RoleChangeRequiresSuperAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)

	userRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.User{
		ID:       5,
		Username: "alice",
		Role:     string(domain.RoleUser),
	}, nil)

	role := "ADMIN"
	service := NewUserService(userRepo, tokenRepo)
	_, err := service.Update(context.Background(), adminActor(), 5, &UpdateUserRequest{Role: &role})

	assert.ErrorIs(t, err, domain.ErrRoleNotAllowed)
}

func TestUserService_Delete(t *testing.T) {
	t.Run("super admin cannot be deleted", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{
			ID:   1,
			Role: string(domain.RoleSuperAdmin),
		}, nil)

		service := NewUserService(userRepo, tokenRepo)
		err := service.Delete(context.Background(), superAdminActor(), 1)

		assert.ErrorIs(t, err, domain.ErrSuperAdminImmutable)
	})

	t.Run("self delete blocked", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{
			ID:   2,
			Role: string(domain.RoleAdmin),
		}, nil)

		service := NewUserService(userRepo, tokenRepo)
		err := service.Delete(context.Background(), adminActor(), 2)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("delete revokes tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenRepo := new(MockRefreshTokenRepository)
		userRepo.On("GetByID", mock.Anything, uint(5)).Return(&models.User{
			ID:   5,
			Role: string(domain.RoleUser),
		}, nil)
		userRepo.On("SoftDelete", mock.Anything, uint(5)).Return(nil)
		tokenRepo.On("RevokeAllByUserID", mock.Anything, uint(5)).Return(nil)

		service := NewUserService(userRepo, tokenRepo)
		err := service.Delete(context.Background(), adminActor(), 5)

		assert.NoError(t, err)
		tokenRepo.AssertExpectations(t)
	})
}
