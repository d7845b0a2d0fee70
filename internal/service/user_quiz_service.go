package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/21f1006580/quiz-master/internal/cache"
	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/rs/zerolog/log"
)

// UserQuizService serves the quiz-taker side: browsing subjects, listing
// quizzes with their derived scheduling state, and opening a quiz for an
// attempt.
type UserQuizService interface {
	GetDashboard() ([]dto.SubjectResponseDTO, error)
	GetQuizzesBySubject(subjectID uint, now time.Time) ([]dto.QuizResponseDTO, error)
	GetQuizForAttempt(quizID, userID uint, now time.Time) (*dto.QuizDetailDTO, error)
}

type userQuizService struct {
	subjectRepo  repository.SubjectRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	availability AvailabilityService
	cache        *cache.Cache
}

func NewUserQuizService(
	subjectRepo repository.SubjectRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	availability AvailabilityService,
	cache *cache.Cache,
) UserQuizService {
	return &userQuizService{
		subjectRepo:  subjectRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		availability: availability,
		cache:        cache,
	}
}

func (s *userQuizService) GetDashboard() ([]dto.SubjectResponseDTO, error) {
	if s.cache != nil {
		var cached []dto.SubjectResponseDTO
		if s.cache.Get(cache.KeySubjectList, &cached) {
			return cached, nil
		}
	}

	subjects, err := s.subjectRepo.FindAllActive()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load dashboard subjects")
		return nil, fmt.Errorf("listing active subjects: %w", err)
	}

	out := make([]dto.SubjectResponseDTO, 0, len(subjects))
	for i := range subjects {
		item, err := subjectToDTO(&subjects[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}

	if s.cache != nil {
		s.cache.Set(cache.KeySubjectList, out, cache.ExpiryMedium)
	}
	return out, nil
}

func (s *userQuizService) GetQuizzesBySubject(subjectID uint, now time.Time) ([]dto.QuizResponseDTO, error) {
	if _, err := s.subjectRepo.FindByID(subjectID); err != nil {
		return nil, notFoundf("subject %d", subjectID)
	}

	// Listings are cached briefly; the derived status fields are cheap to
	// recompute but the join behind them is not.
	key := cache.KeyQuizList + ":subject:" + strconv.FormatUint(uint64(subjectID), 10)
	if s.cache != nil {
		var cached []dto.QuizResponseDTO
		if s.cache.Get(key, &cached) {
			return cached, nil
		}
	}

	quizzes, err := s.quizRepo.FindBySubjectID(subjectID)
	if err != nil {
		log.Error().Err(err).Uint("subjectID", subjectID).Msg("Failed to list quizzes for subject")
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

	if s.cache != nil {
		s.cache.Set(key, out, cache.ExpiryShort)
	}
	return out, nil
}

func (s *userQuizService) GetQuizForAttempt(quizID, userID uint, now time.Time) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, notFoundf("quiz %d", quizID)
	}

	available, reason, err := s.availability.CheckAvailability(quiz, userID, now)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, &AvailabilityError{Reason: reason}
	}

	detail := dto.QuizDetailDTO{
		QuizResponseDTO: buildQuizResponse(quiz, len(quiz.Questions), now),
		Questions:       make([]dto.QuestionPublicDTO, 0, len(quiz.Questions)),
	}
	for i := range quiz.Questions {
		detail.Questions = append(detail.Questions, buildPublicQuestion(&quiz.Questions[i]))
	}
	return &detail, nil
}
