package service

import (
	"fmt"
	"time"

	"github.com/21f1006580/quiz-master/internal/cache"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/21f1006580/quiz-master/internal/schedule"
	"github.com/rs/zerolog/log"
)

// AvailabilityService is the side-effecting layer over the pure schedule
// package: it applies the auto-expiry lock and answers whether a given user
// may attempt a quiz right now.
type AvailabilityService interface {
	// AutoLockIfExpired persists the active→inactive transition for an
	// expired quiz. Returns true only for the caller whose conditional
	// write actually flipped the flag.
	AutoLockIfExpired(quiz *model.Quiz, now time.Time) (bool, error)

	// CheckAvailability reports whether userID may start or submit an
	// attempt, with the user-facing reason. Auto-expiry is applied first so
	// the verdict reflects the freshest state.
	CheckAvailability(quiz *model.Quiz, userID uint, now time.Time) (bool, string, error)
}

type availabilityService struct {
	quizRepo  repository.QuizRepository
	scoreRepo repository.ScoreRepository
	cache     *cache.Cache
}

func NewAvailabilityService(quizRepo repository.QuizRepository, scoreRepo repository.ScoreRepository, cache *cache.Cache) AvailabilityService {
	return &availabilityService{quizRepo: quizRepo, scoreRepo: scoreRepo, cache: cache}
}

func (s *availabilityService) AutoLockIfExpired(quiz *model.Quiz, now time.Time) (bool, error) {
	if !schedule.ShouldLock(quiz, now) {
		return false, nil
	}

	lockedAt := schedule.Normalize(now)
	locked, err := s.quizRepo.LockIfActive(quiz.ID, lockedAt)
	if err != nil {
		// The in-memory flag stays untouched: nothing was confirmed.
		return false, fmt.Errorf("locking expired quiz %d: %w", quiz.ID, err)
	}

	if !locked {
		// Lost the race: another request or the sweep flipped the flag
		// between our read and our write. Refresh to the persisted state
		// and carry on; this is a defined outcome, not an error.
		if fresh, readErr := s.quizRepo.FindByID(quiz.ID); readErr == nil {
			quiz.IsActive = fresh.IsActive
			quiz.UpdatedAt = fresh.UpdatedAt
		}
		return false, nil
	}

	quiz.IsActive = false
	quiz.UpdatedAt = lockedAt
	if s.cache != nil {
		s.cache.InvalidateQuizzes(quiz.ID)
	}
	log.Info().Uint("quizID", quiz.ID).Str("title", quiz.Title).Time("lockedAt", lockedAt).Msg("Auto-locked expired quiz")
	return true, nil
}

func (s *availabilityService) CheckAvailability(quiz *model.Quiz, userID uint, now time.Time) (bool, string, error) {
	wasLocked, err := s.AutoLockIfExpired(quiz, now)
	if err != nil {
		return false, "", err
	}

	// A quiz locked during this very check reports as expired below rather
	// than generically inactive; one locked earlier (by the sweep, an admin,
	// or a concurrent request) is simply not active.
	if !quiz.IsActive && !wasLocked {
		return false, ReasonNotActive, nil
	}

	if !quiz.IsAnytimeQuiz {
		current := schedule.Normalize(now)
		if current.Before(schedule.Normalize(quiz.StartTime)) {
			return false, ReasonNotStarted, nil
		}
		if schedule.IsExpired(quiz, current) {
			return false, ReasonExpired, nil
		}
	}

	if !quiz.AllowMultipleAttempts {
		attempted, err := s.scoreRepo.HasAttempt(quiz.ID, userID)
		if err != nil {
			return false, "", fmt.Errorf("checking prior attempts for quiz %d user %d: %w", quiz.ID, userID, err)
		}
		if attempted {
			return false, ReasonAlreadyAttempted, nil
		}
	}

	return true, ReasonAvailable, nil
}
