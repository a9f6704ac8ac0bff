package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Favorite struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string   `gorm:"size:36;not null;index:idx_fav_user_product,unique" json:"user_id"`
	ProductID string   `gorm:"size:36;not null;index:idx_fav_user_product,unique" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
