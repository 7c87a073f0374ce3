package models

import (
	"time"
)

// Verification is a user vouching that a report describes a real outage.
// One row per (user, report) pair.
type Verification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_report" json:"user_id"`
	ReportID  uint      `gorm:"not null;uniqueIndex:idx_user_report" json:"report_id"`
	CreatedAt time.Time `json:"created_at"`
}
