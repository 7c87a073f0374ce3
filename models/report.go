package models

import (
	"time"

	"github.com/lib/pq"
)

// Report statuses a dashboard knows how to render.
const (
	StatusOutage        = "outage"
	StatusInvestigating = "investigating"
	StatusRestored      = "restored"
	StatusResolved      = "resolved"
)

type Report struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            *uint          `json:"user_id"` // nil for anonymous reports
	User              *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ServiceType       string         `gorm:"not null;type:varchar(20)" json:"service_type"` // power, water, internet, roads
	Title             string         `gorm:"not null" json:"title"`
	Description       *string        `gorm:"type:text" json:"description"`
	Status            string         `gorm:"not null;default:outage;type:varchar(20)" json:"status"`
	Severity          string         `gorm:"not null;default:medium;type:varchar(10)" json:"severity"` // critical, high, medium, low
	Country           string         `gorm:"not null" json:"country"`
	City              string         `gorm:"not null" json:"city"`
	LocationAddress   *string        `json:"location_address"`
	LocationLatitude  *float64       `gorm:"type:decimal(10,8)" json:"location_latitude"`
	LocationLongitude *float64       `gorm:"type:decimal(11,8)" json:"location_longitude"`
	ImagePath         *string        `json:"image_path"`
	Tags              pq.StringArray `json:"tags" gorm:"type:text[]"`
	Upvotes           int64          `gorm:"not null;default:0" json:"upvotes"`
	Downvotes         int64          `gorm:"not null;default:0" json:"downvotes"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
