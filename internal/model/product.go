package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is a fixed-point decimal with 2 fraction
// digits; orders snapshot it at submission time and never read it back.
type Product struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	Categories  []Category      `gorm:"many2many:product_categories" json:"categories"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Slug        string          `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	// ImageURL holds an already-resolved URL; file upload belongs to the admin surface.
	ImageURL string `gorm:"size:500" json:"image"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

func (Product) TableName() string { return "products" }
