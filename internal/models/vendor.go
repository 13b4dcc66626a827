package models

import "time"

// Vendor represents a business profile in the marketplace. Each user owns
// at most one vendor profile, enforced by the unique index on UserID.
type Vendor struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	BusinessName string    `json:"business_name" gorm:"type:varchar(200)" validate:"required,min=2,max=200"`
	Description  string    `json:"description" gorm:"type:text"`
	Logo         string    `json:"logo" gorm:"type:varchar(500)" validate:"omitempty,url"`
	Address      string    `json:"address" gorm:"type:varchar(300)"`
	City         string    `json:"city" gorm:"type:varchar(100)"`
	Phone        string    `json:"phone" gorm:"type:varchar(15)"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"` // set by admins only, never via the API
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
