package service

import (
	"fmt"
	"time"

	"github.com/21f1006580/quiz-master/internal/cache"
	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/21f1006580/quiz-master/internal/schedule"
	"github.com/rs/zerolog/log"
)

// SweepLockedQuiz identifies one quiz the sweep deactivated.
type SweepLockedQuiz struct {
	QuizID       uint      `json:"quiz_id"`
	Title        string    `json:"title"`
	EffectiveEnd time.Time `json:"effective_end"`
}

// SweepSummary is the observability record of one expiry sweep run.
type SweepSummary struct {
	CheckedCount int               `json:"checked_count"`
	LockedCount  int               `json:"locked_count"`
	Locked       []SweepLockedQuiz `json:"locked"`
	SweptAt      time.Time         `json:"swept_at"`
}

type ExpiryService interface {
	// SweepExpired scans for auto-expiring quizzes past their effective end
	// time and locks each one. Individual lock failures are logged and
	// skipped so one bad row cannot starve the rest; the next tick retries.
	SweepExpired(now time.Time) (*SweepSummary, error)

	// ExpireQuiz is the on-demand, admin-invoked expiry of a single quiz.
	ExpireQuiz(quizID uint, now time.Time) (*dto.ExpireQuizResultDTO, error)
}

type expiryService struct {
	quizRepo     repository.QuizRepository
	availability AvailabilityService
	cache        *cache.Cache
}

func NewExpiryService(quizRepo repository.QuizRepository, availability AvailabilityService, cache *cache.Cache) ExpiryService {
	return &expiryService{quizRepo: quizRepo, availability: availability, cache: cache}
}

func (s *expiryService) SweepExpired(now time.Time) (*SweepSummary, error) {
	current := schedule.Normalize(now)

	candidates, err := s.quizRepo.FindExpiryCandidates(current)
	if err != nil {
		return nil, fmt.Errorf("scanning for expiry candidates: %w", err)
	}

	summary := &SweepSummary{CheckedCount: len(candidates), SweptAt: current}

	for i := range candidates {
		quiz := &candidates[i]

		// The SQL filter already selected on the effective end time; this
		// re-check keeps the engine the single source of truth for expiry.
		if !schedule.IsExpired(quiz, current) {
			continue
		}

		locked, err := s.availability.AutoLockIfExpired(quiz, current)
		if err != nil {
			log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Sweep failed to lock expired quiz, will retry next tick")
			continue
		}
		if !locked {
			// Another writer got there first; nothing to report.
			continue
		}

		end := schedule.EffectiveEnd(quiz)
		summary.LockedCount++
		summary.Locked = append(summary.Locked, SweepLockedQuiz{
			QuizID:       quiz.ID,
			Title:        quiz.Title,
			EffectiveEnd: *end,
		})
	}

	if summary.LockedCount > 0 {
		if s.cache != nil {
			s.cache.InvalidateQuizzes(0)
		}
		log.Info().Int("locked", summary.LockedCount).Int("checked", summary.CheckedCount).Msg("Expiry sweep locked quizzes")
	} else {
		log.Debug().Int("checked", summary.CheckedCount).Msg("Expiry sweep found nothing to lock")
	}

	return summary, nil
}

func (s *expiryService) ExpireQuiz(quizID uint, now time.Time) (*dto.ExpireQuizResultDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, notFoundf("quiz %d", quizID)
	}

	locked, err := s.availability.AutoLockIfExpired(quiz, now)
	if err != nil {
		return nil, err
	}

	result := &dto.ExpireQuizResultDTO{QuizID: quiz.ID, Title: quiz.Title, WasLocked: locked}
	if locked {
		result.Message = fmt.Sprintf("Quiz %q has been expired", quiz.Title)
	} else {
		result.Message = fmt.Sprintf("Quiz %q is not eligible for expiry", quiz.Title)
	}
	return result, nil
}
