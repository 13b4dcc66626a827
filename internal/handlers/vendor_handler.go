package handlers

import (
	"log"

	"fullcolombiano/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// VendorHandler handles HTTP requests for vendor profiles.
type VendorHandler struct {
	service  *services.VendorService
	validate *validator.Validate
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(service *services.VendorService) *VendorHandler {
	return &VendorHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the vendor routes with the Fiber app. Reads are
// public; writes and /me require authentication.
func (h *VendorHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	vendorRoutes := router.Group("/vendors")
	vendorRoutes.Get("/", h.HandleListVendors)
	vendorRoutes.Get("/me", authRequired, h.HandleMyVendor)
	vendorRoutes.Get("/:id", h.HandleGetVendor)
	vendorRoutes.Post("/", authRequired, h.HandleCreateVendor)
	vendorRoutes.Put("/:id", authRequired, h.HandleUpdateVendor)
	vendorRoutes.Patch("/:id", authRequired, h.HandleUpdateVendor)
	vendorRoutes.Delete("/:id", authRequired, h.HandleDeactivateVendor)
}

// VendorCreateRequest represents the request body for creating a vendor
// profile. Ownership is taken from the authenticated actor.
type VendorCreateRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=2,max=200"`
	Description  string `json:"description"`
	Logo         string `json:"logo" validate:"omitempty,url"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	City         string `json:"city" validate:"omitempty,max=100"`
	Phone        string `json:"phone" validate:"omitempty,max=15"`
}

// HandleCreateVendor creates a vendor profile for the authenticated user.
func (h *VendorHandler) HandleCreateVendor(c *fiber.Ctx) error {
	var req VendorCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	vendor, err := h.service.CreateVendor(actorID(c), services.VendorInput{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Logo:         req.Logo,
		Address:      req.Address,
		City:         req.City,
		Phone:        req.Phone,
	})
	if err != nil {
		log.Printf("Error creating vendor: %v", err)
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(vendor)
}

// HandleListVendors returns all active vendors with product counts.
func (h *VendorHandler) HandleListVendors(c *fiber.Ctx) error {
	vendors, err := h.service.ListVendors()
	if err != nil {
		log.Printf("Error listing vendors: %v", err)
		return handleServiceError(c, err)
	}
	return c.JSON(vendors)
}

// HandleGetVendor returns a single active vendor by ID.
func (h *VendorHandler) HandleGetVendor(c *fiber.Ctx) error {
	vendor, err := h.service.GetVendor(c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(vendor)
}

// VendorUpdateRequest represents the request body for a partial vendor
// update. is_verified and ownership are not accepted.
type VendorUpdateRequest struct {
	BusinessName *string `json:"business_name" validate:"omitempty,min=2,max=200"`
	Description  *string `json:"description"`
	Logo         *string `json:"logo" validate:"omitempty,url"`
	Address      *string `json:"address" validate:"omitempty,max=300"`
	City         *string `json:"city" validate:"omitempty,max=100"`
	Phone        *string `json:"phone" validate:"omitempty,max=15"`
}

// HandleUpdateVendor updates a vendor profile; only the owner may write.
func (h *VendorHandler) HandleUpdateVendor(c *fiber.Ctx) error {
	var req VendorUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	vendor, err := h.service.UpdateVendor(actorID(c), c.Params("id"), services.VendorUpdateInput{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		Logo:         req.Logo,
		Address:      req.Address,
		City:         req.City,
		Phone:        req.Phone,
	})
	if err != nil {
		log.Printf("Error updating vendor %s: %v", c.Params("id"), err)
		return handleServiceError(c, err)
	}
	return c.JSON(vendor)
}

// HandleDeactivateVendor soft-deletes a vendor profile; only the owner may
// do so. The row is retained with is_active=false.
func (h *VendorHandler) HandleDeactivateVendor(c *fiber.Ctx) error {
	if err := h.service.DeactivateVendor(actorID(c), c.Params("id")); err != nil {
		log.Printf("Error deactivating vendor %s: %v", c.Params("id"), err)
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMyVendor returns the authenticated user's vendor profile.
func (h *VendorHandler) HandleMyVendor(c *fiber.Ctx) error {
	vendor, err := h.service.MyVendor(actorID(c))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(vendor)
}
