package model

import (
	"time"
)

// Score records one completed scoring pass of a user over a quiz. Its mere
// existence blocks further attempts on quizzes that disallow repeats.
type Score struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	QuizID           uint      `json:"quiz_id" gorm:"not null;index:idx_score_user_quiz"`
	UserID           uint      `json:"user_id" gorm:"not null;index:idx_score_user_quiz"`
	Quiz             Quiz      `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	TotalQuestions   int       `json:"total_questions" gorm:"not null"`
	CorrectAnswers   int       `json:"correct_answers" gorm:"not null"`
	TotalScore       float64   `json:"total_score" gorm:"not null"` // percentage
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	AttemptedAt      time.Time `json:"attempted_at" gorm:"autoCreateTime"`
}
