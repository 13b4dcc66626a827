package services

import (
	"errors"

	"fullcolombiano/internal/apperrors"
	"fullcolombiano/internal/models"
	"fullcolombiano/internal/repositories"
)

// ProductService handles business logic for the product catalog.
type ProductService struct {
	productRepo repositories.ProductRepository
	vendorRepo  repositories.VendorRepository
	events      EventPublisher
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, vendorRepo repositories.VendorRepository, events EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		events:      events,
	}
}

// ProductInput carries the writable fields of a product. The owning vendor
// is always derived from the actor, never from input.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Image       string
	Category    string
}

// ProductUpdateInput carries the optional fields of a partial product
// update. IsActive allows a vendor to re-activate a soft-deleted product.
type ProductUpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Image       *string
	Category    *string
	IsActive    *bool
}

func validateProductFields(name, description string, price float64, stock int) error {
	if name == "" {
		return apperrors.NewValidationError("name", "name is required")
	}
	if description == "" {
		return apperrors.NewValidationError("description", "description is required")
	}
	if price < 0 {
		return apperrors.NewValidationError("price", "price must not be negative")
	}
	if stock < 0 {
		return apperrors.NewValidationError("stock", "stock must not be negative")
	}
	return nil
}

// actorVendor resolves the actor's vendor profile, translating "no vendor"
// into a PermissionError for write paths.
func (s *ProductService) actorVendor(actorID string) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByUserID(actorID)
	if err != nil {
		var nfErr *apperrors.NotFoundError
		if errors.As(err, &nfErr) {
			return nil, apperrors.NewPermissionError("you must have a vendor profile to manage products")
		}
		return nil, err
	}
	return vendor, nil
}

// CreateProduct creates a product owned by the actor's vendor.
func (s *ProductService) CreateProduct(actorID string, input ProductInput) (*models.Product, error) {
	vendor, err := s.actorVendor(actorID)
	if err != nil {
		return nil, err
	}
	if err := validateProductFields(input.Name, input.Description, input.Price, input.Stock); err != nil {
		return nil, err
	}

	product := &models.Product{
		VendorID:    vendor.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       input.Image,
		Category:    input.Category,
		IsActive:    true,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	publishEvent(s.events, "product.created", map[string]interface{}{
		"productID": product.ID,
		"vendorID":  product.VendorID,
		"name":      product.Name,
		"price":     product.Price,
	})
	return product, nil
}

// UpdateProduct applies a partial update to a product. Only the owning
// vendor may write; the owning vendor itself is immutable.
func (s *ProductService) UpdateProduct(actorID, productID string, input ProductUpdateInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	vendor, err := s.actorVendor(actorID)
	if err != nil {
		return nil, err
	}
	if !CanWriteProduct(vendor.ID, product) {
		return nil, apperrors.NewPermissionError("only the owning vendor can modify this product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := validateProductFields(product.Name, product.Description, product.Price, product.Stock); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeactivateProduct soft-deletes a product. The row, its stock and history
// are preserved.
func (s *ProductService) DeactivateProduct(actorID, productID string) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	vendor, err := s.actorVendor(actorID)
	if err != nil {
		return err
	}
	if !CanWriteProduct(vendor.ID, product) {
		return apperrors.NewPermissionError("only the owning vendor can deactivate this product")
	}

	product.IsActive = false
	return s.productRepo.Update(product)
}

// GetProduct returns a product by ID, including soft-deleted ones so the
// caller can see is_active=false.
func (s *ProductService) GetProduct(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// ListProducts returns active products matching the filter plus the total
// match count before pagination.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// MyProducts returns all active products owned by the actor's vendor.
func (s *ProductService) MyProducts(actorID string) ([]models.Product, error) {
	vendor, err := s.vendorRepo.GetByUserID(actorID)
	if err != nil {
		return nil, err
	}
	products, _, err := s.productRepo.List(repositories.ProductFilter{VendorID: vendor.ID})
	return products, err
}

// ListByVendor returns the paginated active products of an active vendor.
func (s *ProductService) ListByVendor(vendorID string, page, pageSize int) ([]models.Product, int64, error) {
	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		return nil, 0, err
	}
	if !vendor.IsActive {
		return nil, 0, apperrors.NewNotFoundError("vendor", vendorID)
	}
	return s.productRepo.List(repositories.ProductFilter{
		VendorID: vendor.ID,
		Page:     page,
		PageSize: pageSize,
	})
}
