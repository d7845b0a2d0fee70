package dto

import "time"

type SubjectCreateDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type SubjectUpdateDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type SubjectResponseDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SubjectPageDTO struct {
	Subjects    []SubjectResponseDTO `json:"subjects"`
	Total       int64                `json:"total"`
	Pages       int                  `json:"pages"`
	CurrentPage int                  `json:"current_page"`
	PerPage     int                  `json:"per_page"`
}
