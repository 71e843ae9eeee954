package model

import "time"

// PopupFrequency controls how often a promotional popup is shown per visitor.
type PopupFrequency string

const (
	PopupEverySession PopupFrequency = "SESSION"
	PopupOncePerUser  PopupFrequency = "ONCE"
	PopupPeriodic     PopupFrequency = "PERIOD"
)

// PromotionalPopup is an optional popup shown on the storefront. Only the
// most recently created active one is served.
type PromotionalPopup struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title     string         `gorm:"size:200;not null" json:"title"`
	ImageURL  string         `gorm:"size:500;not null" json:"image"`
	LinkURL   string         `gorm:"size:500" json:"link_url"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	Frequency PopupFrequency `gorm:"size:20;not null;default:ONCE" json:"frequency"`
	// PeriodDays is only meaningful when Frequency is PERIOD.
	PeriodDays uint `json:"period_days"`
}

func (PromotionalPopup) TableName() string { return "promotional_popups" }
