package model

import (
	"time"
)

type User struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	Username      string     `json:"username" gorm:"size:100;not null;uniqueIndex"` // email address
	PasswordHash  string     `json:"-" gorm:"size:255;not null"`
	FullName      string     `json:"full_name" gorm:"size:100;not null"`
	Qualification string     `json:"qualification,omitempty" gorm:"size:100"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	IsAdmin       bool       `json:"is_admin" gorm:"default:false"`
	Scores        []Score    `json:"scores,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
