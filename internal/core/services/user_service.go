package services

import (
	"context"
	"errors"
	"strings"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/adapters/persistence/repositories"
	"assettrack/internal/core/domain"
	"assettrack/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles user administration
type UserService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository) *UserService {
	return &UserService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// CreateUserRequest is the create user payload
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest is the update user payload. Nil fields keep the
// current value.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Create creates a new user. SUPER_ADMIN accounts exist only through
// seeding; ADMIN accounts require a SUPER_ADMIN actor.
func (s *UserService) Create(ctx context.Context, actor *domain.AuthUser, req *CreateUserRequest) (*models.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidInput
	}
	if !password.Validate(req.Password) {
		return nil, domain.ErrInvalidInput
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = string(domain.RoleUser)
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	if role == string(domain.RoleSuperAdmin) {
		return nil, domain.ErrRoleNotAllowed
	}
	if role == string(domain.RoleAdmin) && actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrRoleNotAllowed
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// GetByID gets a live user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// List lists all live users
func (s *UserService) List(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

// Update updates a user. Users may change their own username and
// password; role changes require SUPER_ADMIN, and SUPER_ADMIN accounts
// themselves cannot be changed through the API.
func (s *UserService) Update(ctx context.Context, actor *domain.AuthUser, id uint, req *UpdateUserRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role == string(domain.RoleSuperAdmin) && actor.UserID != user.ID {
		return nil, domain.ErrSuperAdminImmutable
	}
	if actor.UserID != user.ID && actor.Role == domain.RoleUser {
		return nil, domain.ErrForbidden
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, domain.ErrInvalidInput
		}
		taken, err := s.userRepo.ExistsByUsername(ctx, username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrUsernameTaken
		}
		user.Username = username
	}

	if req.Password != nil {
		if !password.Validate(*req.Password) {
			return nil, domain.ErrInvalidInput
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if req.Role != nil && *req.Role != user.Role {
		if actor.Role != domain.RoleSuperAdmin {
			return nil, domain.ErrRoleNotAllowed
		}
		if !domain.ValidRole(*req.Role) {
			return nil, domain.ErrInvalidInput
		}
		if *req.Role == string(domain.RoleSuperAdmin) || user.Role == string(domain.RoleSuperAdmin) {
			return nil, domain.ErrRoleNotAllowed
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Delete soft deletes a user and revokes their refresh tokens.
// SUPER_ADMIN accounts and the actor's own account cannot be deleted.
func (s *UserService) Delete(ctx context.Context, actor *domain.AuthUser, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.Role == string(domain.RoleSuperAdmin) {
		return domain.ErrSuperAdminImmutable
	}
	if actor.UserID == user.ID {
		return domain.ErrForbidden
	}

	if err := s.userRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	return s.tokenRepo.RevokeAllByUserID(ctx, id)
}
