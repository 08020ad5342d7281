package handlers

import (
	"errors"
	"time"

	"assettrack/internal/adapters/http/middleware"
	"assettrack/internal/core/domain"
	"assettrack/internal/core/services"
	"assettrack/internal/pkg/pagination"
	"assettrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssignmentHandler handles product assignment endpoints
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

func assignmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Product and employee are required")
	case errors.Is(err, domain.ErrProductNotFound):
		return response.NotFound(c, "Product not found")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return response.NotFound(c, "Employee not found")
	case errors.Is(err, domain.ErrAssignmentNotFound):
		return response.NotFound(c, "Assignment not found")
	case errors.Is(err, domain.ErrPastExpectedReturn):
		return response.BadRequest(c, "Expected return date cannot be in the past")
	case errors.Is(err, domain.ErrAlreadyReturned):
		return response.Conflict(c, "Product has already been returned")
	case errors.Is(err, domain.ErrReturnedImmutable):
		return response.Conflict(c, "Returned assignments cannot be modified")
	case errors.Is(err, domain.ErrNoAssignmentsForProduct):
		return response.NotFound(c, "No assignments found for this product")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter,
// trying each name in order and using the first one present
func parseDateQuery(c *fiber.Ctx, names ...string) (*time.Time, error) {
	for _, name := range names {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fiber.ErrBadRequest
		}
		return &t, nil
	}
	return nil, nil
}

// Assign assigns a product to an employee
// @Summary Assign product
// @Description Assign a product to an employee. An active assignment held by another employee is auto-returned first.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AssignRequest true "Assignment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/assign [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	assignment, err := h.assignmentService.Assign(c.Context(), actor, &req)
	if err != nil {
		return assignmentError(c, err)
	}
	return response.Created(c, assignment)
}

// BulkAssign assigns a batch of products
// @Summary Bulk assign products
// @Description Assign a batch of products, each to its own employee, atomically
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BulkAssignRequest true "Bulk assignment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/bulk-assign [post]
func (h *AssignmentHandler) BulkAssign(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.BulkAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	assignments, err := h.assignmentService.BulkAssign(c.Context(), actor, &req)
	if err != nil {
		return assignmentError(c, err)
	}
	return response.Created(c, assignments)
}

// Return closes an active assignment
// @Summary Return product
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param body body services.ReturnRequest true "Return data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /assignments/return/{id} [post]
func (h *AssignmentHandler) Return(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	var req services.ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	assignment, err := h.assignmentService.Return(c.Context(), id, &req)
	if err != nil {
		return assignmentError(c, err)
	}
	return response.Success(c, assignment)
}

// Update adjusts an active assignment
// @Summary Update assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Param body body services.UpdateAssignmentRequest true "Assignment data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	var req services.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	assignment, err := h.assignmentService.Update(c.Context(), id, &req)
	if err != nil {
		return assignmentError(c, err)
	}
	return response.Success(c, assignment)
}

// Get gets an assignment by ID
// @Summary Get assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid assignment ID")
	}

	assignment, err := h.assignmentService.GetByID(c.Context(), id)
	if err != nil {
		return assignmentError(c, err)
	}
	return response.Success(c, assignment)
}

// ListActive lists active assignments
// @Summary List active assignments
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /assignments/active [get]
func (h *AssignmentHandler) ListActive(c *fiber.Ctx) error {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		return response.BadRequest(c, "Invalid pagination parameters")
	}

	assignments, total, err := h.assignmentService.ListActive(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list active assignments")
	}
	return response.Paginated(c, assignments, response.NewPagination(total, params.Page, params.Limit))
}

// ListHistory lists returned assignments
// @Summary List assignment history
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param fromDate query string false "Assigned from date (YYYY-MM-DD)"
// @Param toDate query string false "Assigned to date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /assignments/history [get]
func (h *AssignmentHandler) ListHistory(c *fiber.Ctx) error {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		return response.BadRequest(c, "Invalid pagination parameters")
	}

	from, err := parseDateQuery(c, "fromDate", "from")
	if err != nil {
		return response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
	}
	to, err := parseDateQuery(c, "toDate", "to")
	if err != nil {
		return response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
	}

	assignments, total, err := h.assignmentService.ListHistory(c.Context(), from, to, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list assignment history")
	}
	return response.Paginated(c, assignments, response.NewPagination(total, params.Page, params.Limit))
}

// ListByEmployee lists every assignment of an employee
// @Summary List assignments by employee
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/assignments [get]
func (h *AssignmentHandler) ListByEmployee(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	assignments, err := h.assignmentService.ListByEmployee(c.Context(), id)
	if err != nil {
		return assignmentError(c, err)
	}
	return response.Success(c, assignments)
}

// ListByProduct lists every assignment of a product
// @Summary List assignments by product
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id}/assignments [get]
func (h *AssignmentHandler) ListByProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	assignments, err := h.assignmentService.ListByProduct(c.Context(), id)
	if err != nil {
		return assignmentError(c, err)
	}
	return response.Success(c, assignments)
}
