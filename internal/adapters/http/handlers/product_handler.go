package handlers

import (
	"errors"

	"assettrack/internal/adapters/persistence/repositories"
	"assettrack/internal/config"
	"assettrack/internal/core/domain"
	"assettrack/internal/core/services"
	"assettrack/internal/pkg/pagination"
	"assettrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *services.ProductService
	cfg            *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService, cfg *config.Config) *ProductHandler {
	return &ProductHandler{productService: productService, cfg: cfg}
}

func productError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return response.NotFound(c, "Product not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return response.BadRequest(c, "Category not found")
	case errors.Is(err, domain.ErrBranchNotFound):
		return response.BadRequest(c, "Branch not found")
	case errors.Is(err, domain.ErrDepartmentNotFound):
		return response.BadRequest(c, "Department not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Product name and model are required")
	case errors.Is(err, domain.ErrHasDependents):
		return response.Conflict(c, "Cannot delete product with assignment history")
	default:
		return response.InternalServerError(c, "Something went wrong")
	}
}

// List lists products with filters and pagination
// @Summary List products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search by name or model"
// @Param category_id query int false "Filter by category"
// @Param branch_id query int false "Filter by branch"
// @Param department_id query int false "Filter by department"
// @Param compliance_status query bool false "Filter by compliance status"
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	params, err := pagination.Parse(c.Query("page"), c.Query("limit"))
	if err != nil {
		return response.BadRequest(c, "Invalid pagination parameters")
	}

	filter := &repositories.ProductFilter{Search: c.Query("search")}
	if filter.CategoryID, err = parseUintQuery(c, "category_id"); err != nil {
		return response.BadRequest(c, "Invalid category_id")
	}
	if filter.BranchID, err = parseUintQuery(c, "branch_id"); err != nil {
		return response.BadRequest(c, "Invalid branch_id")
	}
	if filter.DepartmentID, err = parseUintQuery(c, "department_id"); err != nil {
		return response.BadRequest(c, "Invalid department_id")
	}
	if filter.ComplianceStatus, err = parseBoolQuery(c, "compliance_status"); err != nil {
		return response.BadRequest(c, "Invalid compliance_status")
	}

	items, total, err := h.productService.List(c.Context(), filter, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to list products")
	}
	return response.Paginated(c, items, response.NewPagination(total, params.Page, params.Limit))
}

// ListAssigned lists products that are currently assigned
// @Summary List assigned products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /products/assigned [get]
func (h *ProductHandler) ListAssigned(c *fiber.Ctx) error {
	items, err := h.productService.ListAssigned(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list assigned products")
	}
	return response.Success(c, items)
}

// Get gets a product with its assignment state and history
// @Summary Get product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	detail, err := h.productService.GetDetail(c.Context(), id)
	if err != nil {
		return productError(c, err)
	}
	return response.Success(c, detail)
}

// QRCode renders a product label QR code
// @Summary Get product QR code
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id}/qrcode [get]
func (h *ProductHandler) QRCode(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	dataURL, err := h.productService.QRCode(c.Context(), id, h.cfg.FrontendURL)
	if err != nil {
		return productError(c, err)
	}
	return response.Success(c, fiber.Map{"qrcode": dataURL})
}

// Create creates a new product
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateProductRequest true "Product data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req services.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.Create(c.Context(), &req)
	if err != nil {
		return productError(c, err)
	}
	return response.Created(c, product)
}

// Update updates a product
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param body body services.UpdateProductRequest true "Product data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var req services.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	product, err := h.productService.Update(c.Context(), id, &req)
	if err != nil {
		return productError(c, err)
	}
	return response.Success(c, product)
}

// Delete soft deletes a product
// @Summary Delete product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.productService.Delete(c.Context(), id); err != nil {
		return productError(c, err)
	}
	return response.SuccessMessage(c, "Product deleted successfully")
}
