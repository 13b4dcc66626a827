package handlers

import (
	"log"

	"fullcolombiano/internal/repositories"
	"fullcolombiano/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Reads are
// public; writes and /my require authentication.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/my", authRequired, h.HandleMyProducts)
	productRoutes.Get("/by-vendor/:vendorId", h.HandleListByVendor)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", authRequired, h.HandleCreateProduct)
	productRoutes.Put("/:id", authRequired, h.HandleUpdateProduct)
	productRoutes.Patch("/:id", authRequired, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authRequired, h.HandleDeactivateProduct)
}

// ProductCreateRequest represents the request body for creating a product.
// The owning vendor is derived from the authenticated actor.
type ProductCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
}

// HandleCreateProduct creates a product owned by the actor's vendor.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.service.CreateProduct(actorID(c), services.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		Category:    req.Category,
	})
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleListProducts returns active products. Supports category and vendor
// filters, free-text search, ordering and page-based pagination.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Category: c.Query("category"),
		VendorID: c.Query("vendor"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering", "-created_at"),
		Page:     c.QueryInt("page", 1),
		PageSize: pageSize(c),
	}

	products, total, err := h.service.ListProducts(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"count":   total,
		"page":    filter.Page,
		"results": products,
	})
}

// HandleGetProduct returns a product by ID. Soft-deleted products resolve
// too, with is_active=false visible on the record.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(product)
}

// ProductUpdateRequest represents the request body for a partial product
// update. Absent fields are left unchanged.
type ProductUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	IsActive    *bool    `json:"is_active"`
}

// HandleUpdateProduct updates a product; only the owning vendor may write.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	product, err := h.service.UpdateProduct(actorID(c), c.Params("id"), services.ProductUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		Category:    req.Category,
		IsActive:    req.IsActive,
	})
	if err != nil {
		log.Printf("Error updating product %s: %v", c.Params("id"), err)
		return handleServiceError(c, err)
	}
	return c.JSON(product)
}

// HandleDeactivateProduct soft-deletes a product; only the owning vendor
// may do so.
func (h *ProductHandler) HandleDeactivateProduct(c *fiber.Ctx) error {
	if err := h.service.DeactivateProduct(actorID(c), c.Params("id")); err != nil {
		log.Printf("Error deactivating product %s: %v", c.Params("id"), err)
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMyProducts returns the active products of the actor's vendor.
func (h *ProductHandler) HandleMyProducts(c *fiber.Ctx) error {
	products, err := h.service.MyProducts(actorID(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(products)
}

// HandleListByVendor returns the paginated active products of a vendor.
func (h *ProductHandler) HandleListByVendor(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	products, total, err := h.service.ListByVendor(c.Params("vendorId"), page, pageSize(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"count":   total,
		"page":    page,
		"results": products,
	})
}

func pageSize(c *fiber.Ctx) int {
	size := c.QueryInt("page_size", defaultPageSize)
	if size < 1 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}
