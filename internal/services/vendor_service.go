package services

import (
	"fullcolombiano/internal/apperrors"
	"fullcolombiano/internal/models"
	"fullcolombiano/internal/repositories"
)

// VendorService handles business logic for vendor profiles.
type VendorService struct {
	vendorRepo  repositories.VendorRepository
	productRepo repositories.ProductRepository
	events      EventPublisher
}

// NewVendorService creates a new VendorService.
func NewVendorService(vendorRepo repositories.VendorRepository, productRepo repositories.ProductRepository, events EventPublisher) *VendorService {
	return &VendorService{
		vendorRepo:  vendorRepo,
		productRepo: productRepo,
		events:      events,
	}
}

// VendorInput carries the writable fields of a vendor profile. Ownership
// and is_verified are never part of it.
type VendorInput struct {
	BusinessName string
	Description  string
	Logo         string
	Address      string
	City         string
	Phone        string
}

// VendorUpdateInput carries the optional fields of a partial vendor update.
type VendorUpdateInput struct {
	BusinessName *string
	Description  *string
	Logo         *string
	Address      *string
	City         *string
	Phone        *string
}

// VendorDetail is a vendor plus its derived active-product count.
type VendorDetail struct {
	models.Vendor
	ProductsCount int64 `json:"products_count"`
}

// CreateVendor creates a vendor profile owned by the actor. A user can hold
// at most one profile.
func (s *VendorService) CreateVendor(actorID string, input VendorInput) (*models.Vendor, error) {
	if existing, err := s.vendorRepo.GetByUserID(actorID); err == nil && existing != nil {
		return nil, apperrors.NewValidationError("user", "vendor already exists for this user")
	}

	vendor := &models.Vendor{
		UserID:       actorID,
		BusinessName: input.BusinessName,
		Description:  input.Description,
		Logo:         input.Logo,
		Address:      input.Address,
		City:         input.City,
		Phone:        input.Phone,
		IsVerified:   false,
		IsActive:     true,
	}
	if err := s.vendorRepo.Create(vendor); err != nil {
		return nil, err
	}

	publishEvent(s.events, "vendor.created", map[string]interface{}{
		"vendorID":     vendor.ID,
		"userID":       vendor.UserID,
		"businessName": vendor.BusinessName,
	})
	return vendor, nil
}

// UpdateVendor applies a partial update to a vendor profile. Only the
// owning user may write; is_verified and ownership stay untouched.
func (s *VendorService) UpdateVendor(actorID, vendorID string, input VendorUpdateInput) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		return nil, err
	}
	if !CanWriteVendor(actorID, vendor) {
		return nil, apperrors.NewPermissionError("only the owner can modify this vendor")
	}

	if input.BusinessName != nil {
		vendor.BusinessName = *input.BusinessName
	}
	if input.Description != nil {
		vendor.Description = *input.Description
	}
	if input.Logo != nil {
		vendor.Logo = *input.Logo
	}
	if input.Address != nil {
		vendor.Address = *input.Address
	}
	if input.City != nil {
		vendor.City = *input.City
	}
	if input.Phone != nil {
		vendor.Phone = *input.Phone
	}

	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// DeactivateVendor soft-deletes a vendor profile. The row is kept and the
// vendor's products are not cascaded.
func (s *VendorService) DeactivateVendor(actorID, vendorID string) error {
	vendor, err := s.vendorRepo.GetByID(vendorID)
	if err != nil {
		return err
	}
	if !CanWriteVendor(actorID, vendor) {
		return apperrors.NewPermissionError("only the owner can deactivate this vendor")
	}

	vendor.IsActive = false
	return s.vendorRepo.Update(vendor)
}

// ListVendors returns all active vendors with their active-product counts.
func (s *VendorService) ListVendors() ([]VendorDetail, error) {
	vendors, err := s.vendorRepo.ListActive()
	if err != nil {
		return nil, err
	}

	details := make([]VendorDetail, 0, len(vendors))
	for _, vendor := range vendors {
		count, err := s.productRepo.CountActiveByVendor(vendor.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, VendorDetail{Vendor: vendor, ProductsCount: count})
	}
	return details, nil
}

// GetVendor returns a single active vendor. Inactive vendors are treated
// as not found for public queries.
func (s *VendorService) GetVendor(id string) (*VendorDetail, error) {
	vendor, err := s.vendorRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive {
		return nil, apperrors.NewNotFoundError("vendor", id)
	}

	count, err := s.productRepo.CountActiveByVendor(vendor.ID)
	if err != nil {
		return nil, err
	}
	return &VendorDetail{Vendor: *vendor, ProductsCount: count}, nil
}

// MyVendor returns the actor's own vendor profile, active or not.
func (s *VendorService) MyVendor(actorID string) (*VendorDetail, error) {
	vendor, err := s.vendorRepo.GetByUserID(actorID)
	if err != nil {
		return nil, err
	}

	count, err := s.productRepo.CountActiveByVendor(vendor.ID)
	if err != nil {
		return nil, err
	}
	return &VendorDetail{Vendor: *vendor, ProductsCount: count}, nil
}
