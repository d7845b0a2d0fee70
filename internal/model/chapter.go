package model

import (
	"time"

	"gorm.io/gorm"
)

type Chapter struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `json:"name" gorm:"size:100;not null;uniqueIndex:idx_chapter_name_subject"`
	SubjectID   uint           `json:"subject_id" gorm:"not null;index;uniqueIndex:idx_chapter_name_subject"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Quizzes     []Quiz         `json:"quizzes,omitempty" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
