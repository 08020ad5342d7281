package services

import (
	"context"
	"errors"
	"strings"

	"assettrack/internal/adapters/persistence/repositories"
	"assettrack/internal/core/domain"

	"gorm.io/gorm"
)

// DependencyCheck counts live records that still reference a master
// entity. A non-zero count blocks deletion.
type DependencyCheck struct {
	Label string
	Count func(ctx context.Context, id uint) (int64, error)
}

// MasterServiceConfig wires one master entity type into the shared
// CRUD behavior: how to build one, which error to raise when it is
// missing and what blocks its deletion.
type MasterServiceConfig[T any] struct {
	Make        func(name, description string) *T
	NotFoundErr error
	DepChecks   []DependencyCheck
}

// MasterService is the shared service behind Branch, Category and
// Department. All three share the same lifecycle: unique name among
// live rows, partial updates and dependency-blocked soft delete.
type MasterService[T any] struct {
	repo repositories.MasterRepository[T]
	cfg  MasterServiceConfig[T]
}

// NewMasterService creates a master entity service
func NewMasterService[T any](repo repositories.MasterRepository[T], cfg MasterServiceConfig[T]) *MasterService[T] {
	return &MasterService[T]{repo: repo, cfg: cfg}
}

// MasterRequest is the create/update payload of a master entity
type MasterRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create creates a new entity after checking name uniqueness among live rows
func (s *MasterService[T]) Create(ctx context.Context, req *MasterRequest) (*T, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	taken, err := s.repo.ExistsByName(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrNameTaken
	}

	entity := s.cfg.Make(name, strings.TrimSpace(req.Description))
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// GetByID gets a live entity by ID
func (s *MasterService[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.cfg.NotFoundErr
		}
		return nil, err
	}
	return entity, nil
}

// List lists all live entities
func (s *MasterService[T]) List(ctx context.Context) ([]*T, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update. A nil field keeps the current value.
func (s *MasterService[T]) Update(ctx context.Context, id uint, name, description *string) (*T, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, domain.ErrInvalidInput
		}
		taken, err := s.repo.ExistsByName(ctx, trimmed, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrNameTaken
		}
		updates["name"] = trimmed
	}
	if description != nil {
		updates["description"] = strings.TrimSpace(*description)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.GetByID(ctx, id)
}

// Delete soft deletes an entity unless live records still reference it
func (s *MasterService[T]) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	for _, check := range s.cfg.DepChecks {
		count, err := check.Count(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrHasDependents
		}
	}

	return s.repo.SoftDelete(ctx, id)
}
