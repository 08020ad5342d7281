package services

import (
	"context"
	"errors"
	"strings"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/adapters/persistence/repositories"
	"assettrack/internal/core/domain"

	"gorm.io/gorm"
)

// EmployeeService handles employee management
type EmployeeService struct {
	employeeRepo   repositories.EmployeeRepository
	branchRepo     repositories.MasterRepository[models.Branch]
	assignmentRepo repositories.AssignmentRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo repositories.EmployeeRepository,
	branchRepo repositories.MasterRepository[models.Branch],
	assignmentRepo repositories.AssignmentRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo:   employeeRepo,
		branchRepo:     branchRepo,
		assignmentRepo: assignmentRepo,
	}
}

// CreateEmployeeRequest is the create employee payload
type CreateEmployeeRequest struct {
	EmpID      string `json:"emp_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	BranchID   *uint  `json:"branch_id"`
}

// UpdateEmployeeRequest is the update employee payload. Nil fields
// keep the current value.
type UpdateEmployeeRequest struct {
	EmpID      *string `json:"emp_id"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	BranchID   *uint   `json:"branch_id"`
}

// EmployeeDetail is an employee with their assignment history
type EmployeeDetail struct {
	*models.Employee
	Assignments []*models.ProductAssignment `json:"assignments"`
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, req *CreateEmployeeRequest) (*models.Employee, error) {
	empID := strings.TrimSpace(req.EmpID)
	name := strings.TrimSpace(req.Name)
	if empID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}

	taken, err := s.employeeRepo.ExistsByEmpID(ctx, empID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmpIDTaken
	}

	if req.BranchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrBranchNotFound
			}
			return nil, err
		}
	}

	employee := &models.Employee{
		EmpID:      empID,
		Name:       name,
		Email:      strings.TrimSpace(req.Email),
		Department: strings.TrimSpace(req.Department),
		Position:   strings.TrimSpace(req.Position),
		BranchID:   req.BranchID,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, employee.ID)
}

// GetByID gets a live employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// GetDetail gets a live employee with their full assignment history
func (s *EmployeeService) GetDetail(ctx context.Context, id uint) (*EmployeeDetail, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EmployeeDetail{Employee: employee, Assignments: assignments}, nil
}

// List lists live employees, optionally filtered by search text and branch
func (s *EmployeeService) List(ctx context.Context, search string, branchID *uint) ([]*models.Employee, error) {
	return s.employeeRepo.List(ctx, strings.TrimSpace(search), branchID)
}

// Update updates an employee
func (s *EmployeeService) Update(ctx context.Context, id uint, req *UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EmpID != nil {
		empID := strings.TrimSpace(*req.EmpID)
		if empID == "" {
			return nil, domain.ErrInvalidInput
		}
		taken, err := s.employeeRepo.ExistsByEmpID(ctx, empID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrEmpIDTaken
		}
		employee.EmpID = empID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		employee.Name = name
	}
	if req.Email != nil {
		employee.Email = strings.TrimSpace(*req.Email)
	}
	if req.Department != nil {
		employee.Department = strings.TrimSpace(*req.Department)
	}
	if req.Position != nil {
		employee.Position = strings.TrimSpace(*req.Position)
	}
	if req.BranchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrBranchNotFound
			}
			return nil, err
		}
		employee.BranchID = req.BranchID
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete soft deletes an employee. Any assignment row, active or
// returned, blocks deletion to keep history resolvable.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.assignmentRepo.CountByEmployee(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrHasDependents
	}

	return s.employeeRepo.SoftDelete(ctx, id)
}
