package repositories

import (
	"sort"
	"sync"
	"time"

	"fullcolombiano/internal/apperrors"
	"fullcolombiano/internal/models"

	"github.com/google/uuid"
)

// MockVendorRepository is an in-memory implementation of VendorRepository.
type MockVendorRepository struct {
	vendors map[string]models.Vendor
	mu      sync.RWMutex
}

// NewMockVendorRepository creates a new instance of MockVendorRepository.
func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{
		vendors: make(map[string]models.Vendor),
	}
}

// Create adds a new vendor, enforcing the one-vendor-per-user constraint.
func (r *MockVendorRepository) Create(vendor *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.vendors {
		if existing.UserID == vendor.UserID {
			return apperrors.NewValidationError("user", "vendor already exists for this user")
		}
	}
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}
	vendor.CreatedAt = time.Now()
	vendor.UpdatedAt = time.Now()
	r.vendors[vendor.ID] = *vendor
	return nil
}

// Update modifies an existing vendor.
func (r *MockVendorRepository) Update(vendor *models.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vendors[vendor.ID]; !ok {
		return apperrors.NewNotFoundError("vendor", vendor.ID)
	}
	vendor.UpdatedAt = time.Now()
	r.vendors[vendor.ID] = *vendor
	return nil
}

// GetByID returns a vendor by ID, active or not.
func (r *MockVendorRepository) GetByID(id string) (*models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendor, ok := r.vendors[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("vendor", id)
	}
	return &vendor, nil
}

// GetByUserID returns the vendor owned by a user, active or not.
func (r *MockVendorRepository) GetByUserID(userID string) (*models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, vendor := range r.vendors {
		if vendor.UserID == userID {
			v := vendor
			return &v, nil
		}
	}
	return nil, apperrors.NewNotFoundError("vendor", userID)
}

// ListActive returns all active vendors, newest first.
func (r *MockVendorRepository) ListActive() ([]models.Vendor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vendors := make([]models.Vendor, 0, len(r.vendors))
	for _, vendor := range r.vendors {
		if vendor.IsActive {
			vendors = append(vendors, vendor)
		}
	}
	sort.Slice(vendors, func(i, j int) bool {
		return vendors[i].CreatedAt.After(vendors[j].CreatedAt)
	})
	return vendors, nil
}
