package dto

import "time"

type QuizCreateDTO struct {
	Title                  string     `json:"title" binding:"required"`
	ChapterID              uint       `json:"chapter_id" binding:"required"`
	StartTime              time.Time  `json:"start_time" binding:"required"`
	EndTime                *time.Time `json:"end_time"`
	DurationMinutes        int        `json:"duration_minutes" binding:"required,gt=0"`
	GracePeriodMinutes     int        `json:"grace_period_minutes" binding:"gte=0"`
	IsAnytimeQuiz          bool       `json:"is_anytime_quiz"`
	AutoExpire             *bool      `json:"auto_expire"`
	AllowMultipleAttempts  bool       `json:"allow_multiple_attempts"`
	ShowResultsImmediately *bool      `json:"show_results_immediately"`
	Remarks                string     `json:"remarks"`
}

type QuizUpdateDTO struct {
	Title                  *string    `json:"title"`
	StartTime              *time.Time `json:"start_time"`
	EndTime                *time.Time `json:"end_time"`
	ClearEndTime           bool       `json:"clear_end_time"`
	DurationMinutes        *int       `json:"duration_minutes"`
	GracePeriodMinutes     *int       `json:"grace_period_minutes"`
	IsAnytimeQuiz          *bool      `json:"is_anytime_quiz"`
	AutoExpire             *bool      `json:"auto_expire"`
	IsActive               *bool      `json:"is_active"`
	AllowMultipleAttempts  *bool      `json:"allow_multiple_attempts"`
	ShowResultsImmediately *bool      `json:"show_results_immediately"`
	Remarks                *string    `json:"remarks"`
}

// QuizResponseDTO carries the persisted fields plus the derived scheduling
// state at the time the response was built.
type QuizResponseDTO struct {
	ID                     uint       `json:"id"`
	Title                  string     `json:"title"`
	ChapterID              uint       `json:"chapter_id"`
	StartTime              time.Time  `json:"start_time"`
	EndTime                *time.Time `json:"end_time,omitempty"`
	EffectiveEndTime       *time.Time `json:"effective_end_time,omitempty"`
	DurationMinutes        int        `json:"duration_minutes"`
	GracePeriodMinutes     int        `json:"grace_period_minutes"`
	IsAnytimeQuiz          bool       `json:"is_anytime_quiz"`
	AutoExpire             bool       `json:"auto_expire"`
	IsActive               bool       `json:"is_active"`
	AllowMultipleAttempts  bool       `json:"allow_multiple_attempts"`
	ShowResultsImmediately bool       `json:"show_results_immediately"`
	Remarks                string     `json:"remarks,omitempty"`
	QuestionCount          int        `json:"question_count"`
	Status                 string     `json:"status"`
	IsAvailable            bool       `json:"is_available"`
	TimeRemainingMinutes   *int       `json:"time_remaining_minutes,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// QuizDetailDTO is what a user sees when opening a quiz: questions included,
// correct options withheld.
type QuizDetailDTO struct {
	QuizResponseDTO
	Questions []QuestionPublicDTO `json:"questions"`
}

type ExpireQuizResultDTO struct {
	QuizID    uint   `json:"quiz_id"`
	Title     string `json:"title"`
	WasLocked bool   `json:"was_locked"`
	Message   string `json:"message"`
}
