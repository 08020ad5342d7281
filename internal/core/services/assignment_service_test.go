package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/core/domain"
)

func newAssignmentService(assignmentRepo *MockAssignmentRepository, productRepo *MockProductRepository, employeeRepo *MockEmployeeRepository) *AssignmentService {
	return NewAssignmentService(fakeTxManager{}, assignmentRepo, productRepo, employeeRepo)
}

func testActor() *domain.AuthUser {
	return &domain.AuthUser{UserID: 99, Username: "admin", Role: domain.RoleAdmin}
}

func TestAssignmentService_Assign_NewAssignment(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	productRepo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(&models.Product{ID: 1}, nil)
	employeeRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.Employee{ID: 2}, nil)
	assignmentRepo.On("FindActiveByProduct", mock.Anything, uint(1)).Return(nil, nil)
	assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.ProductAssignment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.ProductAssignment).ID = 10
		}).Return(nil)
	assignmentRepo.On("GetByIDWithRelations", mock.Anything, uint(10)).Return(&models.ProductAssignment{
		ID:         10,
		ProductID:  1,
		EmployeeID: 2,
		Status:     models.AssignmentStatusAssigned,
	}, nil)

	notes := "for onboarding"
	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	result, err := service.Assign(context.Background(), testActor(), &AssignRequest{
		ProductID:  1,
		EmployeeID: 2,
		Notes:      &notes,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(10), result.ID)
	assert.Equal(t, models.AssignmentStatusAssigned, result.Status)
	assignmentRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	employeeRepo.AssertExpectations(t)
}

func TestAssignmentService_Assign_SameEmployeeRefreshes(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	active := &models.ProductAssignment{
		ID:         5,
		ProductID:  1,
		EmployeeID: 2,
		Status:     models.AssignmentStatusAssigned,
		Notes:      "original notes",
	}

	productRepo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(&models.Product{ID: 1}, nil)
	employeeRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.Employee{ID: 2}, nil)
	assignmentRepo.On("FindActiveByProduct", mock.Anything, uint(1)).Return(active, nil)
	assignmentRepo.On("Update", mock.Anything, active).Return(nil)
	assignmentRepo.On("GetByIDWithRelations", mock.Anything, uint(5)).Return(active, nil)

	expected := time.Now().Add(48 * time.Hour)
	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	result, err := service.Assign(context.Background(), testActor(), &AssignRequest{
		ProductID:        1,
		EmployeeID:       2,
		ExpectedReturnAt: &expected,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(5), result.ID)
	assert.Equal(t, &expected, active.ExpectedReturnAt)
	assert.Equal(t, uint(99), active.AssignedByID)
	// Omitted notes keep the existing ones
	assert.Equal(t, "original notes", active.Notes)
	// No new row is created on a same-employee refresh
	assignmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assignmentRepo.AssertExpectations(t)
}

func TestAssignmentService_Assign_RefreshEmptyNotesClear(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	active := &models.ProductAssignment{
		ID:         5,
		ProductID:  1,
		EmployeeID: 2,
		Status:     models.AssignmentStatusAssigned,
		Notes:      "original notes",
	}

	productRepo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(&models.Product{ID: 1}, nil)
	employeeRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.Employee{ID: 2}, nil)
	assignmentRepo.On("FindActiveByProduct", mock.Anything, uint(1)).Return(active, nil)
	assignmentRepo.On("Update", mock.Anything, active).Return(nil)
	assignmentRepo.On("GetByIDWithRelations", mock.Anything, uint(5)).Return(active, nil)

	empty := ""
	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	_, err := service.Assign(context.Background(), testActor(), &AssignRequest{
		ProductID:  1,
		EmployeeID: 2,
		Notes:      &empty,
	})

	assert.NoError(t, err)
	// An explicit empty string clears the notes
	assert.Equal(t, "", active.Notes)
	assignmentRepo.AssertExpectations(t)
}

func TestAssignmentService_Assign_TransferAutoReturns(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	active := &models.ProductAssignment{
		ID:         5,
		ProductID:  1,
		EmployeeID: 2,
		Status:     models.AssignmentStatusAssigned,
		Notes:      "operator-entered note",
	}

	productRepo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(&models.Product{ID: 1}, nil)
	employeeRepo.On("GetByID", mock.Anything, uint(3)).Return(&models.Employee{ID: 3}, nil)
	assignmentRepo.On("FindActiveByProduct", mock.Anything, uint(1)).Return(active, nil)
	assignmentRepo.On("Update", mock.Anything, active).Return(nil)
	assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.ProductAssignment")).
		Run(func(args mock.Arguments) {
			created := args.Get(1).(*models.ProductAssignment)
			created.ID = 11
			assert.Equal(t, uint(3), created.EmployeeID)
			assert.Equal(t, uint(99), created.AssignedByID)
		}).Return(nil)
	assignmentRepo.On("GetByIDWithRelations", mock.Anything, uint(11)).Return(&models.ProductAssignment{
		ID:         11,
		ProductID:  1,
		EmployeeID: 3,
		Status:     models.AssignmentStatusAssigned,
	}, nil)

	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	result, err := service.Assign(context.Background(), testActor(), &AssignRequest{
		ProductID:  1,
		EmployeeID: 3,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(11), result.ID)
	// The old assignment was closed and its notes replaced with
	// exactly the auto-return note
	assert.Equal(t, models.AssignmentStatusReturned, active.Status)
	assert.NotNil(t, active.ReturnedAt)
	assert.Equal(t, models.AutoReturnNote, active.Notes)
	assignmentRepo.AssertExpectations(t)
}

func TestAssignmentService_Assign_PastExpectedReturnRejected(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	past := time.Now().Add(-24 * time.Hour)
	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	result, err := service.Assign(context.Background(), testActor(), &AssignRequest{
		ProductID:        1,
		EmployeeID:       2,
		ExpectedReturnAt: &past,
	})

	assert.ErrorIs(t, err, domain.ErrPastExpectedReturn)
	assert.Nil(t, result)
	// Rejected before touching the database
	productRepo.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	assignmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssignmentService_Assign_ProductNotFound(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	productRepo.On("GetByIDForUpdate", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	_, err := service.Assign(context.Background(), testActor(), &AssignRequest{
		ProductID:  42,
		EmployeeID: 2,
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAssignmentService_BulkAssign(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	var nextID uint = 20
	created := make(map[uint]uint)
	for _, productID := range []uint{1, 2} {
		productRepo.On("GetByIDForUpdate", mock.Anything, productID).Return(&models.Product{ID: productID}, nil)
		assignmentRepo.On("FindActiveByProduct", mock.Anything, productID).Return(nil, nil)
	}
	employeeRepo.On("GetByID", mock.Anything, uint(7)).Return(&models.Employee{ID: 7}, nil)
	employeeRepo.On("GetByID", mock.Anything, uint(8)).Return(&models.Employee{ID: 8}, nil)
	assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.ProductAssignment")).
		Run(func(args mock.Arguments) {
			a := args.Get(1).(*models.ProductAssignment)
			a.ID = nextID
			created[a.ProductID] = a.EmployeeID
			nextID++
		}).Return(nil).Times(2)
	assignmentRepo.On("GetByIDWithRelations", mock.Anything, uint(20)).Return(&models.ProductAssignment{ID: 20}, nil)
	assignmentRepo.On("GetByIDWithRelations", mock.Anything, uint(21)).Return(&models.ProductAssignment{ID: 21}, nil)

	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	results, err := service.BulkAssign(context.Background(), testActor(), &BulkAssignRequest{
		Items: []AssignRequest{
			{ProductID: 1, EmployeeID: 7},
			{ProductID: 2, EmployeeID: 8},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	// Each entry went to its own employee
	assert.Equal(t, uint(7), created[1])
	assert.Equal(t, uint(8), created[2])
	assignmentRepo.AssertExpectations(t)
}

func TestAssignmentService_Return(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	assignment := &models.ProductAssignment{
		ID:         5,
		ProductID:  1,
		EmployeeID: 2,
		Status:     models.AssignmentStatusAssigned,
		Notes:      "old notes",
	}

	assignmentRepo.On("GetByID", mock.Anything, uint(5)).Return(assignment, nil)
	assignmentRepo.On("Update", mock.Anything, assignment).Return(nil)
	assignmentRepo.On("GetByIDWithRelations", mock.Anything, uint(5)).Return(assignment, nil)

	condition := "minor scratches"
	notes := "returned at front desk"
	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	result, err := service.Return(context.Background(), 5, &ReturnRequest{
		Condition: &condition,
		Notes:     &notes,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusReturned, result.Status)
	assert.NotNil(t, result.ReturnedAt)
	assert.Equal(t, &condition, result.Condition)
	assert.Equal(t, notes, result.Notes)
	assignmentRepo.AssertExpectations(t)
}

func TestAssignmentService_Return_KeepsNotesWhenOmitted(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	assignment := &models.ProductAssignment{
		ID:     5,
		Status: models.AssignmentStatusAssigned,
		Notes:  "assignment notes",
	}

	assignmentRepo.On("GetByID", mock.Anything, uint(5)).Return(assignment, nil)
	assignmentRepo.On("Update", mock.Anything, assignment).Return(nil)
	assignmentRepo.On("GetByIDWithRelations", mock.Anything, uint(5)).Return(assignment, nil)

	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	result, err := service.Return(context.Background(), 5, &ReturnRequest{})

	assert.NoError(t, err)
	assert.Equal(t, "assignment notes", result.Notes)
}

func TestAssignmentService_Return_AlreadyReturned(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	returnedAt := time.Now()
	assignment := &models.ProductAssignment{
		ID:         5,
		Status:     models.AssignmentStatusReturned,
		ReturnedAt: &returnedAt,
	}

	assignmentRepo.On("GetByID", mock.Anything, uint(5)).Return(assignment, nil)

	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	_, err := service.Return(context.Background(), 5, &ReturnRequest{})

	assert.ErrorIs(t, err, domain.ErrAlreadyReturned)
	assignmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssignmentService_Update_ReturnedIsImmutable(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	returnedAt := time.Now()
	assignment := &models.ProductAssignment{
		ID:         5,
		Status:     models.AssignmentStatusReturned,
		ReturnedAt: &returnedAt,
	}

	assignmentRepo.On("GetByID", mock.Anything, uint(5)).Return(assignment, nil)

	notes := "new notes"
	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	_, err := service.Update(context.Background(), 5, &UpdateAssignmentRequest{Notes: &notes})

	assert.ErrorIs(t, err, domain.ErrReturnedImmutable)
	assignmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssignmentService_ListByProduct_NoRows(t *testing.T) {
	assignmentRepo := new(MockAssignmentRepository)
	productRepo := new(MockProductRepository)
	employeeRepo := new(MockEmployeeRepository)

	productRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Product{ID: 1}, nil)
	assignmentRepo.On("ListByProduct", mock.Anything, uint(1)).Return([]*models.ProductAssignment{}, nil)

	service := newAssignmentService(assignmentRepo, productRepo, employeeRepo)
	_, err := service.ListByProduct(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrNoAssignmentsForProduct)
}
