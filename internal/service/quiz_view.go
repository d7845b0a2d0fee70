package service

import (
	"time"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/schedule"
)

// buildQuizResponse assembles the wire view of a quiz, including the
// scheduling state derived at the given instant.
func buildQuizResponse(quiz *model.Quiz, questionCount int, now time.Time) dto.QuizResponseDTO {
	status := schedule.ComputeStatus(quiz, now)
	return dto.QuizResponseDTO{
		ID:                     quiz.ID,
		Title:                  quiz.Title,
		ChapterID:              quiz.ChapterID,
		StartTime:              schedule.Normalize(quiz.StartTime),
		EndTime:                schedule.NormalizePtr(quiz.EndTime),
		EffectiveEndTime:       schedule.EffectiveEnd(quiz),
		DurationMinutes:        quiz.DurationMinutes,
		GracePeriodMinutes:     quiz.GracePeriodMinutes,
		IsAnytimeQuiz:          quiz.IsAnytimeQuiz,
		AutoExpire:             quiz.AutoExpire,
		IsActive:               quiz.IsActive,
		AllowMultipleAttempts:  quiz.AllowMultipleAttempts,
		ShowResultsImmediately: quiz.ShowResultsImmediately,
		Remarks:                quiz.Remarks,
		QuestionCount:          questionCount,
		Status:                 string(status),
		IsAvailable:            status == schedule.StatusActive || status == schedule.StatusEndingSoon,
		TimeRemainingMinutes:   timeRemainingForView(quiz, now),
		CreatedAt:              quiz.CreatedAt,
		UpdatedAt:              quiz.UpdatedAt,
	}
}

func timeRemainingForView(quiz *model.Quiz, now time.Time) *int {
	if quiz.IsAnytimeQuiz {
		return nil
	}
	return schedule.TimeRemaining(quiz, now)
}

func buildPublicQuestion(q *model.Question) dto.QuestionPublicDTO {
	options := []string{q.Option1, q.Option2}
	if q.Option3 != nil && *q.Option3 != "" {
		options = append(options, *q.Option3)
	}
	if q.Option4 != nil && *q.Option4 != "" {
		options = append(options, *q.Option4)
	}
	return dto.QuestionPublicDTO{
		ID:        q.ID,
		Statement: q.Statement,
		Options:   options,
	}
}
