package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/adapters/persistence/repositories"
	"assettrack/internal/core/domain"

	"gorm.io/gorm"
)

// AssignmentService handles the product assignment lifecycle. At most
// one active assignment may exist per product; every write that could
// violate that runs inside a transaction holding the product row lock.
type AssignmentService struct {
	txManager      repositories.TxManager
	assignmentRepo repositories.AssignmentRepository
	productRepo    repositories.ProductRepository
	employeeRepo   repositories.EmployeeRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(
	txManager repositories.TxManager,
	assignmentRepo repositories.AssignmentRepository,
	productRepo repositories.ProductRepository,
	employeeRepo repositories.EmployeeRepository,
) *AssignmentService {
	return &AssignmentService{
		txManager:      txManager,
		assignmentRepo: assignmentRepo,
		productRepo:    productRepo,
		employeeRepo:   employeeRepo,
	}
}

// AssignRequest is the assign payload. Nil notes keep the current
// notes on a refresh; an empty string clears them.
type AssignRequest struct {
	ProductID        uint       `json:"product_id"`
	EmployeeID       uint       `json:"employee_id"`
	ExpectedReturnAt *time.Time `json:"expected_return_at"`
	Notes            *string    `json:"notes"`
}

// BulkAssignRequest assigns a batch of products, each to its own
// employee, in one atomic unit
type BulkAssignRequest struct {
	Items []AssignRequest `json:"items"`
}

// ReturnRequest is the return payload
type ReturnRequest struct {
	Condition *string `json:"condition"`
	Notes     *string `json:"notes"`
}

// UpdateAssignmentRequest adjusts an active assignment. Nil fields
// keep the current value.
type UpdateAssignmentRequest struct {
	ExpectedReturnAt *time.Time `json:"expected_return_at"`
	Notes            *string    `json:"notes"`
}

// Assign assigns a product to an employee. Re-assigning to the same
// employee refreshes the active assignment in place; assigning to a
// different employee auto-returns the active assignment first.
func (s *AssignmentService) Assign(ctx context.Context, actor *domain.AuthUser, req *AssignRequest) (*models.ProductAssignment, error) {
	if req.ProductID == 0 || req.EmployeeID == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validateExpectedReturn(req.ExpectedReturnAt); err != nil {
		return nil, err
	}

	var result *models.ProductAssignment
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		assignment, err := s.assignInTx(txCtx, actor, req)
		if err != nil {
			return err
		}
		result = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, result.ID)
}

// BulkAssign assigns a batch of products atomically. Every entry goes
// through the same refresh/transfer logic as a single Assign; any
// failure rolls the whole batch back.
func (s *AssignmentService) BulkAssign(ctx context.Context, actor *domain.AuthUser, req *BulkAssignRequest) ([]*models.ProductAssignment, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for i := range req.Items {
		if req.Items[i].ProductID == 0 || req.Items[i].EmployeeID == 0 {
			return nil, domain.ErrInvalidInput
		}
		if err := validateExpectedReturn(req.Items[i].ExpectedReturnAt); err != nil {
			return nil, err
		}
	}

	var created []*models.ProductAssignment
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		for i := range req.Items {
			assignment, err := s.assignInTx(txCtx, actor, &req.Items[i])
			if err != nil {
				return err
			}
			created = append(created, assignment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]*models.ProductAssignment, 0, len(created))
	for _, a := range created {
		full, err := s.GetByID(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, full)
	}
	return results, nil
}

// assignInTx performs one assignment under the product row lock.
// Must be called inside a transaction.
func (s *AssignmentService) assignInTx(ctx context.Context, actor *domain.AuthUser, req *AssignRequest) (*models.ProductAssignment, error) {
	if _, err := s.productRepo.GetByIDForUpdate(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	active, err := s.assignmentRepo.FindActiveByProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if active != nil {
		if active.EmployeeID == req.EmployeeID {
			// Same holder: refresh the active assignment in place
			active.AssignedAt = time.Now()
			active.AssignedByID = actor.UserID
			active.ExpectedReturnAt = req.ExpectedReturnAt
			if req.Notes != nil {
				active.Notes = strings.TrimSpace(*req.Notes)
			}
			if err := s.assignmentRepo.Update(ctx, active); err != nil {
				return nil, err
			}
			return active, nil
		}

		// Different holder: close the old assignment before opening the new one
		now := time.Now()
		active.Status = models.AssignmentStatusReturned
		active.ReturnedAt = &now
		active.Notes = models.AutoReturnNote
		if err := s.assignmentRepo.Update(ctx, active); err != nil {
			return nil, err
		}
	}

	notes := ""
	if req.Notes != nil {
		notes = strings.TrimSpace(*req.Notes)
	}
	assignment := &models.ProductAssignment{
		ProductID:        req.ProductID,
		EmployeeID:       req.EmployeeID,
		AssignedByID:     actor.UserID,
		Status:           models.AssignmentStatusAssigned,
		AssignedAt:       time.Now(),
		ExpectedReturnAt: req.ExpectedReturnAt,
		Notes:            notes,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Return closes an active assignment
func (s *AssignmentService) Return(ctx context.Context, id uint, req *ReturnRequest) (*models.ProductAssignment, error) {
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		assignment, err := s.assignmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAssignmentNotFound
			}
			return err
		}
		if !assignment.IsActive() {
			return domain.ErrAlreadyReturned
		}

		now := time.Now()
		assignment.Status = models.AssignmentStatusReturned
		assignment.ReturnedAt = &now
		assignment.Condition = req.Condition
		if req.Notes != nil && strings.TrimSpace(*req.Notes) != "" {
			assignment.Notes = strings.TrimSpace(*req.Notes)
		}
		return s.assignmentRepo.Update(txCtx, assignment)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Update adjusts an active assignment. Returned assignments are
// immutable history.
func (s *AssignmentService) Update(ctx context.Context, id uint, req *UpdateAssignmentRequest) (*models.ProductAssignment, error) {
	if err := validateExpectedReturn(req.ExpectedReturnAt); err != nil {
		return nil, err
	}

	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		assignment, err := s.assignmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAssignmentNotFound
			}
			return err
		}
		if !assignment.IsActive() {
			return domain.ErrReturnedImmutable
		}

		if req.ExpectedReturnAt != nil {
			assignment.ExpectedReturnAt = req.ExpectedReturnAt
		}
		if req.Notes != nil {
			assignment.Notes = strings.TrimSpace(*req.Notes)
		}
		return s.assignmentRepo.Update(txCtx, assignment)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// GetByID gets an assignment with its product, employee and assigner
func (s *AssignmentService) GetByID(ctx context.Context, id uint) (*models.ProductAssignment, error) {
	assignment, err := s.assignmentRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// ListActive lists active assignments with pagination
func (s *AssignmentService) ListActive(ctx context.Context, offset, limit int) ([]*models.ProductAssignment, int64, error) {
	return s.assignmentRepo.ListActive(ctx, offset, limit)
}

// ListHistory lists returned assignments with pagination, optionally
// bounded by an assignment date range
func (s *AssignmentService) ListHistory(ctx context.Context, from, to *time.Time, offset, limit int) ([]*models.ProductAssignment, int64, error) {
	return s.assignmentRepo.ListHistory(ctx, from, to, offset, limit)
}

// ListByEmployee lists every assignment of an employee
func (s *AssignmentService) ListByEmployee(ctx context.Context, employeeID uint) ([]*models.ProductAssignment, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return s.assignmentRepo.ListByEmployee(ctx, employeeID)
}

// ListByProduct lists every assignment of a product. A product that
// was never assigned yields ErrNoAssignmentsForProduct.
func (s *AssignmentService) ListByProduct(ctx context.Context, productID uint) ([]*models.ProductAssignment, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return nil, domain.ErrNoAssignmentsForProduct
	}
	return assignments, nil
}

// validateExpectedReturn rejects expected return dates in the past.
// The check runs before any write so a bad date never half-applies.
func validateExpectedReturn(t *time.Time) error {
	if t != nil && t.Before(time.Now()) {
		return domain.ErrPastExpectedReturn
	}
	return nil
}
