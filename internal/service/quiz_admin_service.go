package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/21f1006580/quiz-master/internal/cache"
	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/21f1006580/quiz-master/internal/schedule"
	"github.com/rs/zerolog/log"
)

type QuizAdminService interface {
	CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error)
	GetQuizzesByChapter(chapterID uint, now time.Time) ([]dto.QuizResponseDTO, error)
	UpdateQuiz(quizID uint, req dto.QuizUpdateDTO) (*dto.QuizResponseDTO, error)
	DeleteQuiz(quizID uint) error
}

type quizAdminService struct {
	quizRepo     repository.QuizRepository
	chapterRepo  repository.ChapterRepository
	questionRepo repository.QuestionRepository
	cache        *cache.Cache
}

func NewQuizAdminService(quizRepo repository.QuizRepository, chapterRepo repository.ChapterRepository, questionRepo repository.QuestionRepository, cache *cache.Cache) QuizAdminService {
	return &quizAdminService{quizRepo: quizRepo, chapterRepo: chapterRepo, questionRepo: questionRepo, cache: cache}
}

func (s *quizAdminService) CreateQuiz(req dto.QuizCreateDTO) (*dto.QuizResponseDTO, error) {
	if _, err := s.chapterRepo.FindByID(req.ChapterID); err != nil {
		return nil, notFoundf("chapter %d", req.ChapterID)
	}
	if err := validateSchedule(req.StartTime, req.EndTime, req.DurationMinutes, req.GracePeriodMinutes, req.IsAnytimeQuiz); err != nil {
		return nil, err
	}

	quiz := model.Quiz{
		Title:                  strings.TrimSpace(req.Title),
		ChapterID:              req.ChapterID,
		StartTime:              schedule.Normalize(req.StartTime),
		EndTime:                schedule.NormalizePtr(req.EndTime),
		DurationMinutes:        req.DurationMinutes,
		GracePeriodMinutes:     req.GracePeriodMinutes,
		IsAnytimeQuiz:          req.IsAnytimeQuiz,
		AutoExpire:             true,
		IsActive:               true,
		AllowMultipleAttempts:  req.AllowMultipleAttempts,
		ShowResultsImmediately: true,
		Remarks:                req.Remarks,
	}
	if req.AutoExpire != nil {
		quiz.AutoExpire = *req.AutoExpire
	}
	if req.ShowResultsImmediately != nil {
		quiz.ShowResultsImmediately = *req.ShowResultsImmediately
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("title", quiz.Title).Msg("Failed to create quiz")
		return nil, fmt.Errorf("creating quiz: %w", err)
	}

	s.invalidate(quiz.ID)
	resp := buildQuizResponse(&quiz, 0, time.Now())
	return &resp, nil
}

func (s *quizAdminService) GetQuizzesByChapter(chapterID uint, now time.Time) ([]dto.QuizResponseDTO, error) {
	if _, err := s.chapterRepo.FindByID(chapterID); err != nil {
		return nil, notFoundf("chapter %d", chapterID)
	}

	quizzes, err := s.quizRepo.FindByChapterID(chapterID)
	if err != nil {
		log.Error().Err(err).Uint("chapterID", chapterID).Msg("Failed to list quizzes")
		return nil, fmt.Errorf("listing quizzes: %w", err)
	}

	out := make([]dto.QuizResponseDTO, 0, len(quizzes))
	for i := range quizzes {
		count, err := s.questionRepo.CountByQuizID(quizzes[i].ID)
		if err != nil {
			return nil, fmt.Errorf("counting questions for quiz %d: %w", quizzes[i].ID, err)
		}
		out = append(out, buildQuizResponse(&quizzes[i], int(count), now))
	}
	return out, nil
}

func (s *quizAdminService) UpdateQuiz(quizID uint, req dto.QuizUpdateDTO) (*dto.QuizResponseDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, notFoundf("quiz %d", quizID)
	}

	if req.Title != nil {
		quiz.Title = strings.TrimSpace(*req.Title)
	}
	if req.StartTime != nil {
		quiz.StartTime = schedule.Normalize(*req.StartTime)
	}
	if req.ClearEndTime {
		quiz.EndTime = nil
	} else if req.EndTime != nil {
		quiz.EndTime = schedule.NormalizePtr(req.EndTime)
	}
	if req.DurationMinutes != nil {
		quiz.DurationMinutes = *req.DurationMinutes
	}
	if req.GracePeriodMinutes != nil {
		quiz.GracePeriodMinutes = *req.GracePeriodMinutes
	}
	if req.IsAnytimeQuiz != nil {
		quiz.IsAnytimeQuiz = *req.IsAnytimeQuiz
	}
	if req.AutoExpire != nil {
		quiz.AutoExpire = *req.AutoExpire
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}
	if req.AllowMultipleAttempts != nil {
		quiz.AllowMultipleAttempts = *req.AllowMultipleAttempts
	}
	if req.ShowResultsImmediately != nil {
		quiz.ShowResultsImmediately = *req.ShowResultsImmediately
	}
	if req.Remarks != nil {
		quiz.Remarks = *req.Remarks
	}

	if err := validateSchedule(quiz.StartTime, quiz.EndTime, quiz.DurationMinutes, quiz.GracePeriodMinutes, quiz.IsAnytimeQuiz); err != nil {
		return nil, err
	}

	if err := s.quizRepo.Update(quiz); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to update quiz")
		return nil, fmt.Errorf("updating quiz: %w", err)
	}

	s.invalidate(quizID)
	count, err := s.questionRepo.CountByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("counting questions for quiz %d: %w", quizID, err)
	}
	resp := buildQuizResponse(quiz, int(count), time.Now())
	return &resp, nil
}

func (s *quizAdminService) DeleteQuiz(quizID uint) error {
	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		return notFoundf("quiz %d", quizID)
	}
	if err := s.quizRepo.Delete(quizID); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to delete quiz")
		return fmt.Errorf("deleting quiz: %w", err)
	}
	s.invalidate(quizID)
	return nil
}

func (s *quizAdminService) invalidate(quizID uint) {
	if s.cache != nil {
		s.cache.InvalidateQuizzes(quizID)
	}
}

func validateSchedule(start time.Time, end *time.Time, durationMinutes, graceMinutes int, anytime bool) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	if graceMinutes < 0 {
		return fmt.Errorf("grace period cannot be negative")
	}
	if anytime {
		return nil
	}
	if end != nil && !schedule.Normalize(*end).After(schedule.Normalize(start)) {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}
