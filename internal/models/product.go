package models

import "time"

// Product represents a product published by a vendor. The owning vendor is
// fixed at creation time and never taken from client input.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	VendorID    string    `json:"vendor_id" gorm:"index;type:varchar(36);not null"`
	Name        string    `json:"name" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Description string    `json:"description" gorm:"type:text" validate:"required"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2)" validate:"gte=0"`
	Stock       int       `json:"stock" gorm:"default:0" validate:"gte=0"`
	Image       string    `json:"image" gorm:"type:varchar(500)" validate:"omitempty,url"`
	Category    string    `json:"category" gorm:"type:varchar(100)"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
