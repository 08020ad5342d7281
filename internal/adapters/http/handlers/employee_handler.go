package handlers

import (
	"errors"

	"assettrack/internal/core/domain"
	"assettrack/internal/core/services"
	"assettrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func employeeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return response.NotFound(c, "Employee not found")
	case errors.Is(err, domain.ErrBranchNotFound):
		return response.BadRequest(c, "Branch not found")
	case errors.Is(err, domain.ErrEmpIDTaken):
		return response.Conflict(c, "Employee ID already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Employee ID and name are required")
	case errors.Is(err, domain.ErrHasDependents):
		return response.Conflict(c, "Cannot delete employee with assignment history")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}

// List lists employees
// @Summary List employees
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name, employee ID or email"
// @Param branch_id query int false "Filter by branch"
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	branchID, err := parseUintQuery(c, "branch_id")
	if err != nil {
		return response.BadRequest(c, "Invalid branch_id")
	}

	employees, err := h.employeeService.List(c.Context(), c.Query("search"), branchID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}
	return response.Success(c, employees)
}

// Get gets an employee with their assignment history
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	detail, err := h.employeeService.GetDetail(c.Context(), id)
	if err != nil {
		return employeeError(c, err)
	}
	return response.Success(c, detail)
}

// Create creates a new employee
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateEmployeeRequest true "Employee data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req services.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Create(c.Context(), &req)
	if err != nil {
		return employeeError(c, err)
	}
	return response.Created(c, employee)
}

// Update updates an employee
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.UpdateEmployeeRequest true "Employee data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var req services.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Update(c.Context(), id, &req)
	if err != nil {
		return employeeError(c, err)
	}
	return response.Success(c, employee)
}

// Delete soft deletes an employee
// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.Delete(c.Context(), id); err != nil {
		return employeeError(c, err)
	}
	return response.SuccessMessage(c, "Employee deleted successfully")
}
