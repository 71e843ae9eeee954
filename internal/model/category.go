package model

// Category groups products for storefront filtering.
type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	// IsDefault marks the category pre-selected on the storefront.
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`
}

func (Category) TableName() string { return "categories" }
