package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	Statement     string         `json:"statement" gorm:"type:text;not null"`
	Option1       string         `json:"option1" gorm:"type:text;not null"`
	Option2       string         `json:"option2" gorm:"type:text;not null"`
	Option3       *string        `json:"option3,omitempty" gorm:"type:text"`
	Option4       *string        `json:"option4,omitempty" gorm:"type:text"`
	CorrectOption int            `json:"correct_option" gorm:"not null"` // 1..4
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// OptionCount reports how many options the question actually carries.
func (q *Question) OptionCount() int {
	count := 2
	if q.Option3 != nil && *q.Option3 != "" {
		count++
	}
	if q.Option4 != nil && *q.Option4 != "" {
		count++
	}
	return count
}
