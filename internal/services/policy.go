package services

import "fullcolombiano/internal/models"

// Ownership policy for vendors and products. Reads are universally
// permitted; writes require the actor to sit at the top of the resource's
// owner chain (vendor.user for vendors, product.vendor.user for products,
// with the actor's vendor resolved by the caller).

// CanReadVendor reports whether an actor may read a vendor. Always true,
// including for anonymous actors.
func CanReadVendor(actorID string, vendor *models.Vendor) bool {
	return true
}

// CanReadProduct reports whether an actor may read a product. Always true,
// including for anonymous actors.
func CanReadProduct(actorID string, product *models.Product) bool {
	return true
}

// CanWriteVendor reports whether the actor owns the vendor profile.
func CanWriteVendor(actorID string, vendor *models.Vendor) bool {
	if actorID == "" || vendor == nil {
		return false
	}
	return vendor.UserID == actorID
}

// CanWriteProduct reports whether the actor's vendor owns the product.
func CanWriteProduct(actorVendorID string, product *models.Product) bool {
	if actorVendorID == "" || product == nil {
		return false
	}
	return product.VendorID == actorVendorID
}
