package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/adapters/persistence/repositories"
	"assettrack/internal/core/domain"
	"assettrack/internal/pkg/pagination"
	"assettrack/internal/pkg/qrcode"

	"gorm.io/gorm"
)

// ProductService handles product management
type ProductService struct {
	productRepo    repositories.ProductRepository
	categoryRepo   repositories.MasterRepository[models.Category]
	branchRepo     repositories.MasterRepository[models.Branch]
	departmentRepo repositories.MasterRepository[models.Department]
	assignmentRepo repositories.AssignmentRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repositories.ProductRepository,
	categoryRepo repositories.MasterRepository[models.Category],
	branchRepo repositories.MasterRepository[models.Branch],
	departmentRepo repositories.MasterRepository[models.Department],
	assignmentRepo repositories.AssignmentRepository,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		branchRepo:     branchRepo,
		departmentRepo: departmentRepo,
		assignmentRepo: assignmentRepo,
	}
}

// CreateProductRequest is the create product payload
type CreateProductRequest struct {
	Name             string     `json:"name"`
	Model            string     `json:"model"`
	CategoryID       uint       `json:"category_id"`
	BranchID         uint       `json:"branch_id"`
	DepartmentID     *uint      `json:"department_id"`
	WarrantyDate     *time.Time `json:"warranty_date"`
	ComplianceStatus bool       `json:"compliance_status"`
	Notes            string     `json:"notes"`
}

// UpdateProductRequest is the update product payload. Nil fields keep
// the current value.
type UpdateProductRequest struct {
	Name             *string    `json:"name"`
	Model            *string    `json:"model"`
	CategoryID       *uint      `json:"category_id"`
	BranchID         *uint      `json:"branch_id"`
	DepartmentID     *uint      `json:"department_id"`
	WarrantyDate     *time.Time `json:"warranty_date"`
	ComplianceStatus *bool      `json:"compliance_status"`
	Notes            *string    `json:"notes"`
}

// ProductDetail is a product with its assignment state and history
type ProductDetail struct {
	*models.Product
	IsAssigned        bool                       `json:"is_assigned"`
	CurrentAssignment *models.ProductAssignment  `json:"current_assignment"`
	History           []models.ProductAssignment `json:"history"`
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	model := strings.TrimSpace(req.Model)
	if name == "" || model == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := s.checkReferences(ctx, &req.CategoryID, &req.BranchID, req.DepartmentID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:             name,
		Model:            model,
		CategoryID:       req.CategoryID,
		BranchID:         req.BranchID,
		DepartmentID:     req.DepartmentID,
		WarrantyDate:     req.WarrantyDate,
		ComplianceStatus: req.ComplianceStatus,
		Notes:            strings.TrimSpace(req.Notes),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, product.ID)
}

// GetByID gets a live product by ID
func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetDetail gets a live product with its assignment state and history
func (s *ProductService) GetDetail(ctx context.Context, id uint) (*ProductDetail, error) {
	product, err := s.productRepo.GetByIDWithHistory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	detail := &ProductDetail{
		Product: product,
		History: product.Assignments,
	}
	for i := range product.Assignments {
		if product.Assignments[i].IsActive() {
			detail.IsAssigned = true
			detail.CurrentAssignment = &product.Assignments[i]
			break
		}
	}
	return detail, nil
}

// List lists live products with filters and pagination. Each item is
// annotated with its current assignment state.
func (s *ProductService) List(ctx context.Context, filter *repositories.ProductFilter, params *pagination.Params) ([]*models.ProductListItem, int64, error) {
	products, total, err := s.productRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*models.ProductListItem, 0, len(products))
	for _, p := range products {
		item := &models.ProductListItem{Product: p}
		for i := range p.Assignments {
			if p.Assignments[i].IsActive() {
				item.IsAssigned = true
				item.CurrentAssignment = &p.Assignments[i]
				break
			}
		}
		p.Assignments = nil
		items = append(items, item)
	}
	return items, total, nil
}

// ListAssigned lists live products that currently have an active assignment
func (s *ProductService) ListAssigned(ctx context.Context) ([]*models.ProductListItem, error) {
	products, err := s.productRepo.ListAssigned(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*models.ProductListItem, 0, len(products))
	for _, p := range products {
		item := &models.ProductListItem{Product: p, IsAssigned: true}
		for i := range p.Assignments {
			if p.Assignments[i].IsActive() {
				item.CurrentAssignment = &p.Assignments[i]
				break
			}
		}
		p.Assignments = nil
		items = append(items, item)
	}
	return items, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uint, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.BranchID, req.DepartmentID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if req.Model != nil {
		model := strings.TrimSpace(*req.Model)
		if model == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Model = model
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.BranchID != nil {
		product.BranchID = *req.BranchID
	}
	if req.DepartmentID != nil {
		product.DepartmentID = req.DepartmentID
	}
	if req.WarrantyDate != nil {
		product.WarrantyDate = req.WarrantyDate
	}
	if req.ComplianceStatus != nil {
		product.ComplianceStatus = *req.ComplianceStatus
	}
	if req.Notes != nil {
		product.Notes = strings.TrimSpace(*req.Notes)
	}

	// Clear preloaded relations so Save does not upsert them
	product.Category = nil
	product.Branch = nil
	product.Department = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete soft deletes a product. Any assignment row, active or
// returned, blocks deletion to keep history resolvable.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.assignmentRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrHasDependents
	}

	return s.productRepo.SoftDelete(ctx, id)
}

// QRCode renders a product label QR code as a PNG data URL
func (s *ProductService) QRCode(ctx context.Context, id uint, baseURL string) (string, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	content := fmt.Sprintf("%s/products/%d", strings.TrimRight(baseURL, "/"), product.ID)
	return qrcode.DataURL(content)
}

func (s *ProductService) checkReferences(ctx context.Context, categoryID, branchID, departmentID *uint) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCategoryNotFound
			}
			return err
		}
	}
	if branchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *branchID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBranchNotFound
			}
			return err
		}
	}
	if departmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *departmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDepartmentNotFound
			}
			return err
		}
	}
	return nil
}
