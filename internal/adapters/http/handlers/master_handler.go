package handlers

import (
	"errors"

	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/core/domain"
	"assettrack/internal/core/services"
	"assettrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler handles master data endpoints (branches, categories,
// departments). All three entities share one lifecycle; the handler
// only differs in messages.
type MasterHandler struct {
	branchService     *services.MasterService[models.Branch]
	categoryService   *services.MasterService[models.Category]
	departmentService *services.MasterService[models.Department]
}

// NewMasterHandler creates a new master handler
func NewMasterHandler(
	branchService *services.MasterService[models.Branch],
	categoryService *services.MasterService[models.Category],
	departmentService *services.MasterService[models.Department],
) *MasterHandler {
	return &MasterHandler{
		branchService:     branchService,
		categoryService:   categoryService,
		departmentService: departmentService,
	}
}

// UpdateMasterRequest is the partial update payload of a master entity
type UpdateMasterRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// masterError maps master service errors onto HTTP responses
func masterError(c *fiber.Ctx, err error, label, deleteBlockedMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Name is required")
	case errors.Is(err, domain.ErrNameTaken):
		return response.Conflict(c, label+" name already exists")
	case errors.Is(err, domain.ErrHasDependents):
		return response.Conflict(c, deleteBlockedMsg)
	case errors.Is(err, domain.ErrBranchNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrDepartmentNotFound):
		return response.NotFound(c, label+" not found")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}

// ============================================================
// Branches
// ============================================================

// ListBranches lists all branches
// @Summary List branches
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /branches [get]
func (h *MasterHandler) ListBranches(c *fiber.Ctx) error {
	branches, err := h.branchService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list branches")
	}
	return response.Success(c, branches)
}

// GetBranch gets a branch by ID
// @Summary Get branch
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /branches/{id} [get]
func (h *MasterHandler) GetBranch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid branch ID")
	}
	branch, err := h.branchService.GetByID(c.Context(), id)
	if err != nil {
		return masterError(c, err, "Branch", "")
	}
	return response.Success(c, branch)
}

// CreateBranch creates a new branch
// @Summary Create branch
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MasterRequest true "Branch data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /branches [post]
func (h *MasterHandler) CreateBranch(c *fiber.Ctx) error {
	var req services.MasterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	branch, err := h.branchService.Create(c.Context(), &req)
	if err != nil {
		return masterError(c, err, "Branch", "")
	}
	return response.Created(c, branch)
}

// UpdateBranch updates a branch
// @Summary Update branch
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Param body body UpdateMasterRequest true "Branch data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /branches/{id} [put]
func (h *MasterHandler) UpdateBranch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid branch ID")
	}
	var req UpdateMasterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	branch, err := h.branchService.Update(c.Context(), id, req.Name, req.Description)
	if err != nil {
		return masterError(c, err, "Branch", "")
	}
	return response.Success(c, branch)
}

// DeleteBranch soft deletes a branch
// @Summary Delete branch
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /branches/{id} [delete]
func (h *MasterHandler) DeleteBranch(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid branch ID")
	}
	if err := h.branchService.Delete(c.Context(), id); err != nil {
		return masterError(c, err, "Branch", "Cannot delete branch with associated products or employees")
	}
	return response.SuccessMessage(c, "Branch deleted successfully")
}

// ============================================================
// Categories
// ============================================================

// ListCategories lists all categories
// @Summary List categories
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *MasterHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}
	return response.Success(c, categories)
}

// GetCategory gets a category by ID
// @Summary Get category
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [get]
func (h *MasterHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}
	category, err := h.categoryService.GetByID(c.Context(), id)
	if err != nil {
		return masterError(c, err, "Category", "")
	}
	return response.Success(c, category)
}

// CreateCategory creates a new category
// @Summary Create category
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MasterRequest true "Category data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categories [post]
func (h *MasterHandler) CreateCategory(c *fiber.Ctx) error {
	var req services.MasterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	category, err := h.categoryService.Create(c.Context(), &req)
	if err != nil {
		return masterError(c, err, "Category", "")
	}
	return response.Created(c, category)
}

// UpdateCategory updates a category
// @Summary Update category
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body UpdateMasterRequest true "Category data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categories/{id} [put]
func (h *MasterHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}
	var req UpdateMasterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	category, err := h.categoryService.Update(c.Context(), id, req.Name, req.Description)
	if err != nil {
		return masterError(c, err, "Category", "")
	}
	return response.Success(c, category)
}

// DeleteCategory soft deletes a category
// @Summary Delete category
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categories/{id} [delete]
func (h *MasterHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}
	if err := h.categoryService.Delete(c.Context(), id); err != nil {
		return masterError(c, err, "Category", "Cannot delete category with associated products")
	}
	return response.SuccessMessage(c, "Category deleted successfully")
}

// ============================================================
// Departments
// ============================================================

// ListDepartments lists all departments
// @Summary List departments
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /departments [get]
func (h *MasterHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.departmentService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list departments")
	}
	return response.Success(c, departments)
}

// GetDepartment gets a department by ID
// @Summary Get department
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [get]
func (h *MasterHandler) GetDepartment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}
	department, err := h.departmentService.GetByID(c.Context(), id)
	if err != nil {
		return masterError(c, err, "Department", "")
	}
	return response.Success(c, department)
}

// CreateDepartment creates a new department
// @Summary Create department
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MasterRequest true "Department data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departments [post]
func (h *MasterHandler) CreateDepartment(c *fiber.Ctx) error {
	var req services.MasterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	department, err := h.departmentService.Create(c.Context(), &req)
	if err != nil {
		return masterError(c, err, "Department", "")
	}
	return response.Created(c, department)
}

// UpdateDepartment updates a department
// @Summary Update department
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param body body UpdateMasterRequest true "Department data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [put]
func (h *MasterHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}
	var req UpdateMasterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	department, err := h.departmentService.Update(c.Context(), id, req.Name, req.Description)
	if err != nil {
		return masterError(c, err, "Department", "")
	}
	return response.Success(c, department)
}

// DeleteDepartment soft deletes a department
// @Summary Delete department
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departments/{id} [delete]
func (h *MasterHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}
	if err := h.departmentService.Delete(c.Context(), id); err != nil {
		return masterError(c, err, "Department", "Cannot delete department with associated products")
	}
	return response.SuccessMessage(c, "Department deleted successfully")
}
