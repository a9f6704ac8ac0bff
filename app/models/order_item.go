package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem persists even if the referenced Product is later deleted, so the
// Product association may resolve to nothing on old orders.
type OrderItem struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID   string   `gorm:"size:36;not null;index" json:"order_id"`
	Order     Order    `gorm:"foreignKey:OrderID"`
	ProductID string   `gorm:"size:36;not null;index" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	Quantity  int      `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
