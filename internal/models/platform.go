package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformRevenue is the running revenue of one platform for one month.
// (UserID, PlatformName, Month, Year) is unique.
type PlatformRevenue struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;uniqueIndex:idx_platforms_unique,priority:1;index:idx_platforms_user_id" json:"user_id"`
	User         User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PlatformName string          `gorm:"size:100;not null;uniqueIndex:idx_platforms_unique,priority:2" json:"platform_name"`
	Revenue      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"revenue"`
	Month        int             `gorm:"not null;uniqueIndex:idx_platforms_unique,priority:3;index:idx_platforms_date,priority:2" json:"month"`
	Year         int             `gorm:"not null;uniqueIndex:idx_platforms_unique,priority:4;index:idx_platforms_date,priority:1" json:"year"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (PlatformRevenue) TableName() string {
	return "platforms"
}
