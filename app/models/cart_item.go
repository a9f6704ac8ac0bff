package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one line of a user's cart. There is at most one row per
// (user, product) pair; re-adding the same product bumps Quantity instead.
type CartItem struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string   `gorm:"size:36;not null;index:idx_cart_user_product,unique" json:"user_id"`
	User      *User    `gorm:"foreignKey:UserID"`
	ProductID string   `gorm:"size:36;not null;index:idx_cart_user_product,unique" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	Quantity  int      `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
