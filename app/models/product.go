package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name           string          `gorm:"size:255;not null"`
	Price          decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Category       string          `gorm:"size:100;index"`
	Image          string          `gorm:"size:255"`
	Description    string          `gorm:"type:text"`
	ExpirationDate *time.Time      `gorm:"null"`
	Stock          int             `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
