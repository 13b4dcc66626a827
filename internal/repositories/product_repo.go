package repositories

import "fullcolombiano/internal/models"

// ProductFilter describes the listing query for products. Zero values mean
// "no constraint"; a PageSize of 0 disables pagination.
type ProductFilter struct {
	Category string
	VendorID string
	Search   string // case-insensitive substring over name/description/category
	Ordering string // one of price, created_at, name, stock; "-" prefix for descending
	Page     int
	PageSize int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	Update(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	// List returns the active products matching the filter along with the
	// total number of matches before pagination.
	List(filter ProductFilter) ([]models.Product, int64, error)
	CountActiveByVendor(vendorID string) (int64, error)
}
