package dto

import "time"

type ChapterCreateDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SubjectID   uint   `json:"subject_id" binding:"required"`
}

type ChapterUpdateDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ChapterResponseDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SubjectID   uint      `json:"subject_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
