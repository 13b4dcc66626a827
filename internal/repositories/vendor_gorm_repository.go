package repositories

import (
	"errors"
	"fmt"

	"fullcolombiano/internal/apperrors"
	"fullcolombiano/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVendorRepository is a GORM implementation of VendorRepository.
type GORMVendorRepository struct {
	db *gorm.DB
}

// NewGORMVendorRepository creates a new instance of GORMVendorRepository.
func NewGORMVendorRepository(db *gorm.DB) *GORMVendorRepository {
	return &GORMVendorRepository{
		db: db,
	}
}

// Create creates a new vendor in the database. The unique index on user_id
// guarantees at most one vendor per user even under concurrent creates.
func (r *GORMVendorRepository) Create(vendor *models.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	if err := r.db.Create(vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewValidationError("user", "vendor already exists for this user")
		}
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	return nil
}

// Update saves all fields of an existing vendor.
func (r *GORMVendorRepository) Update(vendor *models.Vendor) error {
	res := r.db.Save(vendor)
	if res.Error != nil {
		return fmt.Errorf("failed to update vendor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("vendor", vendor.ID)
	}
	return nil
}

// GetByID retrieves a vendor by its ID, active or not.
func (r *GORMVendorRepository) GetByID(id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vendor", id)
		}
		return nil, fmt.Errorf("failed to get vendor by ID %s: %w", id, err)
	}
	return &vendor, nil
}

// GetByUserID retrieves the vendor owned by a user, active or not.
func (r *GORMVendorRepository) GetByUserID(userID string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vendor", userID)
		}
		return nil, fmt.Errorf("failed to get vendor by user ID %s: %w", userID, err)
	}
	return &vendor, nil
}

// ListActive retrieves all active vendors, newest first.
func (r *GORMVendorRepository) ListActive() ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}
