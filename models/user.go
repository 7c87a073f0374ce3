package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // Don't expose password hash in JSON
	PhoneNumber  *string   `json:"phone_number"`
	Country      *string   `json:"country"`
	City         *string   `json:"city"`
	Verified     bool      `gorm:"default:false" json:"verified"`
	TotalReports int64     `gorm:"default:0" json:"total_reports"`
	Reports      []Report  `json:"reports,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
