package models

import (
	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Username     string         `gorm:"not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Avatar       string         `json:"avatar,omitempty"`
	Description  string         `json:"description,omitempty"`
	Role         UserRole       `gorm:"default:'member'" json:"role"`
	IsBanned     bool           `gorm:"default:false" json:"is_banned"`
	Availability datatypes.JSON `json:"availability,omitempty"` // weekly slots
}
