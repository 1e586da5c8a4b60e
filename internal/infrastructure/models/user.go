package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	CompanyName  *string   `gorm:"type:varchar(255)"`
	IsActive     bool      `gorm:"not null;default:true"`
	ReferralCode *string   `gorm:"type:varchar(8);uniqueIndex"`
	ReferredBy   *uuid.UUID `gorm:"type:uuid"`
	ReferralUsed bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
}
