package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatusProcessing is the status every order starts in. Admins may
// overwrite it with any free-text value ("shipped", "cancelled", ...).
const OrderStatusProcessing = "processing"

// Order is an immutable snapshot of a cart at checkout time. TotalPrice is
// frozen when the order is created and is never recomputed, even if product
// prices change afterwards. Status is the only field mutated post-creation.
type Order struct {
	ID         string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID     string          `gorm:"size:36;not null;index" json:"user_id"`
	User       User            `gorm:"foreignKey:UserID"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_price"`
	Status     string          `gorm:"size:50;default:'processing'" json:"status"`
	OrderItems []OrderItem
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
