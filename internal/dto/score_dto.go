package dto

import "time"

type AnswerDTO struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedOption int  `json:"selected_option" binding:"required,min=1,max=4"`
}

type QuizSubmitDTO struct {
	Answers          []AnswerDTO `json:"answers" binding:"required,dive"`
	TimeTakenSeconds int         `json:"time_taken_seconds" binding:"gte=0"`
}

type ScoreResponseDTO struct {
	ID               uint      `json:"id"`
	QuizID           uint      `json:"quiz_id"`
	QuizTitle        string    `json:"quiz_title,omitempty"`
	TotalQuestions   int       `json:"total_questions"`
	CorrectAnswers   int       `json:"correct_answers"`
	TotalScore       float64   `json:"total_score"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	AttemptedAt      time.Time `json:"attempted_at"`
}

type SubmitResultDTO struct {
	Message string            `json:"message"`
	Score   *ScoreResponseDTO `json:"score,omitempty"`
}

type ScoreSummaryDTO struct {
	TotalQuizzesAttempted int     `json:"total_quizzes_attempted"`
	TotalCorrectAnswers   int     `json:"total_correct_answers"`
	AverageScore          float64 `json:"average_score"`
}
