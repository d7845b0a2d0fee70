package dto

import "time"

type RegisterDTO struct {
	Username      string     `json:"username" binding:"required,email"`
	Password      string     `json:"password" binding:"required,min=6"`
	FullName      string     `json:"full_name" binding:"required"`
	Qualification string     `json:"qualification"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UserDTO struct {
	ID            uint       `json:"id"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name"`
	Qualification string     `json:"qualification,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	IsAdmin       bool       `json:"is_admin"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AuthResponseDTO struct {
	Message     string  `json:"message"`
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}
