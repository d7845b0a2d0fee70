package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz is scheduled within a chapter. StartTime/EndTime bound when it may be
// attempted; a quiz with IsAnytimeQuiz set ignores both. EndTime is optional:
// a quiz without one never time-expires. GracePeriodMinutes extends the end
// boundary, and AutoExpire opts the quiz into automatic deactivation once the
// extended boundary has passed.
type Quiz struct {
	ID                    uint           `gorm:"primarykey" json:"id"`
	Title                 string         `json:"title" gorm:"size:200;not null"`
	ChapterID             uint           `json:"chapter_id" gorm:"not null;index"`
	StartTime             time.Time      `json:"start_time" gorm:"not null"`
	EndTime               *time.Time     `json:"end_time,omitempty" gorm:"index"`
	DurationMinutes       int            `json:"duration_minutes" gorm:"not null"`
	GracePeriodMinutes    int            `json:"grace_period_minutes" gorm:"not null;default:0"`
	IsAnytimeQuiz         bool           `json:"is_anytime_quiz" gorm:"default:false"`
	AutoExpire            bool           `json:"auto_expire" gorm:"default:true"`
	IsActive              bool           `json:"is_active" gorm:"default:true"`
	AllowMultipleAttempts bool           `json:"allow_multiple_attempts" gorm:"default:false"`
	ShowResultsImmediately bool          `json:"show_results_immediately" gorm:"default:true"`
	Remarks               string         `json:"remarks,omitempty" gorm:"type:text"`
	Questions             []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE;"`
	Scores                []Score        `json:"scores,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}
