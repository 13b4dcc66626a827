package services_test

import (
	"errors"
	"testing"

	"fullcolombiano/internal/apperrors"
	"fullcolombiano/internal/repositories"
	"fullcolombiano/internal/services"

	"github.com/stretchr/testify/assert"
)

// vendorFixture wires a VendorService over the in-memory repositories so the
// one-vendor-per-user and soft-delete behavior runs against real constraint
// checks.
func vendorFixture() (*services.VendorService, *services.ProductService) {
	vendorRepo := repositories.NewMockVendorRepository()
	productRepo := repositories.NewMockProductRepository()
	return services.NewVendorService(vendorRepo, productRepo, nil),
		services.NewProductService(productRepo, vendorRepo, nil)
}

func TestVendorService_CreateVendor(t *testing.T) {
	vendorService, _ := vendorFixture()

	vendor, err := vendorService.CreateVendor("user-1", services.VendorInput{BusinessName: "Café del Eje"})
	assert.NoError(t, err)
	assert.Equal(t, "user-1", vendor.UserID)
	assert.True(t, vendor.IsActive)
	assert.False(t, vendor.IsVerified)
}

func TestVendorService_CreateVendor_AlreadyExists(t *testing.T) {
	vendorService, _ := vendorFixture()

	_, err := vendorService.CreateVendor("user-1", services.VendorInput{BusinessName: "Café del Eje"})
	assert.NoError(t, err)

	_, err = vendorService.CreateVendor("user-1", services.VendorInput{BusinessName: "Otro Negocio"})
	var vErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Contains(t, err.Error(), "vendor already exists")
}

func TestVendorService_UpdateVendor_OwnerOnly(t *testing.T) {
	vendorService, _ := vendorFixture()

	vendor, _ := vendorService.CreateVendor("user-1", services.VendorInput{BusinessName: "Café del Eje"})

	// A different authenticated user cannot write
	name := "Hijacked"
	_, err := vendorService.UpdateVendor("user-2", vendor.ID, services.VendorUpdateInput{BusinessName: &name})
	var pErr *apperrors.PermissionError
	assert.True(t, errors.As(err, &pErr))

	// The owner can, and untouched fields survive a partial update
	city := "Armenia"
	updated, err := vendorService.UpdateVendor("user-1", vendor.ID, services.VendorUpdateInput{City: &city})
	assert.NoError(t, err)
	assert.Equal(t, "Armenia", updated.City)
	assert.Equal(t, "Café del Eje", updated.BusinessName)
	assert.False(t, updated.IsVerified)
}

func TestVendorService_DeactivateVendor(t *testing.T) {
	vendorService, _ := vendorFixture()

	vendor, _ := vendorService.CreateVendor("user-1", services.VendorInput{BusinessName: "Café del Eje"})

	// Non-owner cannot deactivate
	err := vendorService.DeactivateVendor("user-2", vendor.ID)
	var pErr *apperrors.PermissionError
	assert.True(t, errors.As(err, &pErr))

	assert.NoError(t, vendorService.DeactivateVendor("user-1", vendor.ID))

	// Soft delete: hidden from public queries but still owned and resolvable
	_, err = vendorService.GetVendor(vendor.ID)
	var nfErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &nfErr))

	mine, err := vendorService.MyVendor("user-1")
	assert.NoError(t, err)
	assert.False(t, mine.IsActive)

	vendors, err := vendorService.ListVendors()
	assert.NoError(t, err)
	assert.Empty(t, vendors)
}

func TestVendorService_ListVendors_ProductsCount(t *testing.T) {
	vendorService, productService := vendorFixture()

	vendor, _ := vendorService.CreateVendor("user-1", services.VendorInput{BusinessName: "Café del Eje"})

	p1, err := productService.CreateProduct("user-1", services.ProductInput{
		Name: "Café 500g", Description: "Café de origen", Price: 45000, Stock: 50,
	})
	assert.NoError(t, err)
	_, err = productService.CreateProduct("user-1", services.ProductInput{
		Name: "Café 250g", Description: "Café de origen", Price: 35000, Stock: 30,
	})
	assert.NoError(t, err)

	vendors, err := vendorService.ListVendors()
	assert.NoError(t, err)
	assert.Len(t, vendors, 1)
	assert.EqualValues(t, 2, vendors[0].ProductsCount)

	// Deactivated products drop out of the count
	assert.NoError(t, productService.DeactivateProduct("user-1", p1.ID))
	detail, err := vendorService.GetVendor(vendor.ID)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, detail.ProductsCount)
}

func TestVendorService_MyVendor_NotFound(t *testing.T) {
	vendorService, _ := vendorFixture()

	_, err := vendorService.MyVendor("user-without-vendor")
	var nfErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
}
