package model

import "time"

// Banner is a storefront carousel image. Lower Position appears first.
type Banner struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title    string `gorm:"size:200;not null" json:"title"`
	ImageURL string `gorm:"size:500;not null" json:"image"`
	LinkURL  string `gorm:"size:500" json:"link_url"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
	Position uint   `gorm:"not null;default:0" json:"position"`
}

func (Banner) TableName() string { return "banners" }
