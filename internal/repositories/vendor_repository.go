package repositories

import "fullcolombiano/internal/models"

// VendorRepository defines the interface for vendor data access.
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	Update(vendor *models.Vendor) error
	GetByID(id string) (*models.Vendor, error)
	GetByUserID(userID string) (*models.Vendor, error)
	ListActive() ([]models.Vendor, error)
}
