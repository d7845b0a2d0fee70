// Package schedule holds the quiz availability engine: pure decisions about
// whether a quiz is attemptable at a given instant. Nothing here touches
// storage; callers pass the current time explicitly so request handlers and
// background jobs evaluate exactly the same rules.
package schedule

import (
	"time"

	"github.com/21f1006580/quiz-master/internal/model"
)

// Status is the derived scheduling state of a quiz at some instant.
type Status string

const (
	StatusInactive   Status = "inactive"
	StatusUpcoming   Status = "upcoming"
	StatusActive     Status = "active"
	StatusEndingSoon Status = "ending_soon"
	StatusExpired    Status = "expired"
)

// EndingSoonWindow is how close to the effective end time a quiz must be
// before its status switches from active to ending_soon.
const EndingSoonWindow = 30 * time.Minute

// Normalize brings any timestamp onto the canonical comparison basis (UTC).
// Every timestamp entering this package, including "now", must pass through
// here before being compared; mixing normalized and raw values is what made
// the legacy status checks disagree with each other.
func Normalize(t time.Time) time.Time {
	return t.UTC()
}

// NormalizePtr normalizes an optional timestamp. A nil input means "no
// constraint" and stays nil rather than becoming some zero instant.
func NormalizePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	normalized := t.UTC()
	return &normalized
}

// EffectiveEnd is the true expiry boundary: end time plus grace period.
// Nil when the quiz has no end time, meaning it never time-expires.
func EffectiveEnd(quiz *model.Quiz) *time.Time {
	if quiz.EndTime == nil {
		return nil
	}
	end := Normalize(*quiz.EndTime).Add(time.Duration(quiz.GracePeriodMinutes) * time.Minute)
	return &end
}

// IsExpired reports whether the quiz is past its effective end time. Expiry
// is opt-in per quiz and strictly "after": at the exact boundary instant the
// quiz is still live.
func IsExpired(quiz *model.Quiz, now time.Time) bool {
	if !quiz.AutoExpire {
		return false
	}
	end := EffectiveEnd(quiz)
	if end == nil {
		return false
	}
	return Normalize(now).After(*end)
}

// ComputeStatus derives the scheduling state of a quiz at the given instant.
// Precedence order matters: the admin kill switch beats everything, anytime
// quizzes skip all time checks, and expiry beats the ending-soon window.
func ComputeStatus(quiz *model.Quiz, now time.Time) Status {
	if !quiz.IsActive {
		return StatusInactive
	}
	if quiz.IsAnytimeQuiz {
		return StatusActive
	}

	current := Normalize(now)
	if current.Before(Normalize(quiz.StartTime)) {
		return StatusUpcoming
	}
	if IsExpired(quiz, current) {
		return StatusExpired
	}
	if end := EffectiveEnd(quiz); end != nil {
		remaining := end.Sub(current)
		if remaining > 0 && remaining <= EndingSoonWindow {
			return StatusEndingSoon
		}
	}
	return StatusActive
}

// TimeRemaining returns whole minutes until the effective end time, nil for
// quizzes with no end boundary and 0 once the boundary has passed.
func TimeRemaining(quiz *model.Quiz, now time.Time) *int {
	end := EffectiveEnd(quiz)
	if end == nil {
		return nil
	}
	remaining := end.Sub(Normalize(now))
	minutes := int(remaining.Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}

// ShouldLock reports whether the auto-expiry side effect ought to fire for
// this quiz right now: it must have opted in, be past its boundary, and still
// be flagged active. Anytime quizzes never lock; their schedule fields are
// not consulted for anything. The caller owns the conditional persistence
// write.
func ShouldLock(quiz *model.Quiz, now time.Time) bool {
	return !quiz.IsAnytimeQuiz && quiz.AutoExpire && quiz.IsActive && IsExpired(quiz, now)
}
