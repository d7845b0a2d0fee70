package service

import (
	"errors"
	"testing"
	"time"

	"github.com/21f1006580/quiz-master/internal/model"
)

var baseTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestAutoLockIfExpiredLocksPastBoundary(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-2*time.Hour), baseTime.Add(-time.Hour), 10)
	repo := newFakeQuizRepo(quiz)
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	locked, err := svc.AutoLockIfExpired(quiz, baseTime)
	if err != nil {
		t.Fatalf("AutoLockIfExpired: %v", err)
	}
	if !locked {
		t.Fatal("expected quiz to be locked")
	}
	if quiz.IsActive {
		t.Fatal("in-memory quiz should reflect the lock")
	}
	if stored := repo.quizzes[1]; stored.IsActive {
		t.Fatal("persisted quiz should be inactive")
	}
}

func TestAutoLockIfExpiredIsIdempotent(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-2*time.Hour), baseTime.Add(-time.Hour), 0)
	repo := newFakeQuizRepo(quiz)
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	if locked, _ := svc.AutoLockIfExpired(quiz, baseTime); !locked {
		t.Fatal("first call should lock")
	}
	locked, err := svc.AutoLockIfExpired(quiz, baseTime)
	if err != nil {
		t.Fatalf("second AutoLockIfExpired: %v", err)
	}
	if locked {
		t.Fatal("second call must not report a lock")
	}
	if repo.lockCalls != 1 {
		t.Fatalf("lockCalls = %d, want 1 (inactive quiz never reaches the write)", repo.lockCalls)
	}
}

func TestAutoLockIfExpiredSkipsBeforeBoundary(t *testing.T) {
	// End has passed but the grace period keeps the quiz live.
	quiz := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(-10*time.Minute), 30)
	repo := newFakeQuizRepo(quiz)
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	locked, err := svc.AutoLockIfExpired(quiz, baseTime)
	if err != nil {
		t.Fatalf("AutoLockIfExpired: %v", err)
	}
	if locked || !quiz.IsActive {
		t.Fatal("quiz within grace period must stay active")
	}
}

func TestAutoLockIfExpiredExactBoundaryStaysLive(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(-10*time.Minute), 10)
	repo := newFakeQuizRepo(quiz)
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	locked, err := svc.AutoLockIfExpired(quiz, baseTime)
	if err != nil {
		t.Fatalf("AutoLockIfExpired: %v", err)
	}
	if locked {
		t.Fatal("quiz at its exact effective end must not lock")
	}
}

func TestAutoLockIfExpiredNeverLocksAnytimeQuiz(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-2*time.Hour), baseTime.Add(-time.Hour), 0)
	quiz.IsAnytimeQuiz = true
	repo := newFakeQuizRepo(quiz)
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	locked, err := svc.AutoLockIfExpired(quiz, baseTime)
	if err != nil {
		t.Fatalf("AutoLockIfExpired: %v", err)
	}
	if locked || !quiz.IsActive {
		t.Fatal("anytime quiz must never auto-lock, even with a stale end time")
	}
}

func TestAutoLockIfExpiredLosesRace(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-2*time.Hour), baseTime.Add(-time.Hour), 0)
	repo := newFakeQuizRepo(quiz)
	repo.forceLose = true
	// Simulate the other writer having already flipped the stored row.
	repo.quizzes[1].IsActive = false
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	inMemory := *quiz
	inMemory.IsActive = true
	locked, err := svc.AutoLockIfExpired(&inMemory, baseTime)
	if err != nil {
		t.Fatalf("AutoLockIfExpired: %v", err)
	}
	if locked {
		t.Fatal("losing the conditional write must not report a lock")
	}
	if inMemory.IsActive {
		t.Fatal("loser should refresh to the persisted inactive state")
	}
}

func TestAutoLockIfExpiredStorageFailure(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-2*time.Hour), baseTime.Add(-time.Hour), 0)
	repo := newFakeQuizRepo(quiz)
	repo.lockErr = errors.New("connection refused")
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	locked, err := svc.AutoLockIfExpired(quiz, baseTime)
	if err == nil {
		t.Fatal("expected storage error to propagate")
	}
	if locked {
		t.Fatal("failed write must not report a lock")
	}
	if !quiz.IsActive {
		t.Fatal("in-memory state must stay untouched when the write fails")
	}
}

func TestCheckAvailabilityReasons(t *testing.T) {
	cases := []struct {
		name          string
		quiz          func() *model.Quiz
		priorAttempt  bool
		wantAvailable bool
		wantReason    string
	}{
		{
			name: "inactive quiz",
			quiz: func() *model.Quiz {
				q := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
				q.IsActive = false
				return q
			},
			wantReason: ReasonNotActive,
		},
		{
			name: "not started",
			quiz: func() *model.Quiz {
				return scheduledQuiz(1, baseTime.Add(time.Hour), baseTime.Add(2*time.Hour), 0)
			},
			wantReason: ReasonNotStarted,
		},
		{
			name: "expired at check time",
			quiz: func() *model.Quiz {
				return scheduledQuiz(1, baseTime.Add(-2*time.Hour), baseTime.Add(-time.Hour), 0)
			},
			wantReason: ReasonExpired,
		},
		{
			name: "already attempted",
			quiz: func() *model.Quiz {
				return scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
			},
			priorAttempt: true,
			wantReason:   ReasonAlreadyAttempted,
		},
		{
			name: "retake allowed",
			quiz: func() *model.Quiz {
				q := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
				q.AllowMultipleAttempts = true
				return q
			},
			priorAttempt:  true,
			wantAvailable: true,
			wantReason:    ReasonAvailable,
		},
		{
			name: "open window",
			quiz: func() *model.Quiz {
				return scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
			},
			wantAvailable: true,
			wantReason:    ReasonAvailable,
		},
		{
			name: "anytime quiz with stale schedule",
			quiz: func() *model.Quiz {
				q := scheduledQuiz(1, baseTime.Add(-48*time.Hour), baseTime.Add(-24*time.Hour), 0)
				q.IsAnytimeQuiz = true
				return q
			},
			wantAvailable: true,
			wantReason:    ReasonAvailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := tc.quiz()
			repo := newFakeQuizRepo(quiz)
			scores := &fakeScoreRepo{}
			if tc.priorAttempt {
				scores.scores = append(scores.scores, model.Score{QuizID: quiz.ID, UserID: 7})
			}
			svc := NewAvailabilityService(repo, scores, nil)

			available, reason, err := svc.CheckAvailability(quiz, 7, baseTime)
			if err != nil {
				t.Fatalf("CheckAvailability: %v", err)
			}
			if available != tc.wantAvailable || reason != tc.wantReason {
				t.Fatalf("CheckAvailability = (%t, %q), want (%t, %q)", available, reason, tc.wantAvailable, tc.wantReason)
			}
		})
	}
}

func TestCheckAvailabilityExpiredQuizIsLockedAndReportsExpired(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-2*time.Hour), baseTime.Add(-time.Hour), 0)
	repo := newFakeQuizRepo(quiz)
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	available, reason, err := svc.CheckAvailability(quiz, 7, baseTime)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if available || reason != ReasonExpired {
		t.Fatalf("first check = (%t, %q), want (false, %q)", available, reason, ReasonExpired)
	}
	if repo.quizzes[1].IsActive {
		t.Fatal("the availability check should have auto-locked the quiz")
	}

	// Later checks see an already-inactive quiz.
	available, reason, err = svc.CheckAvailability(quiz, 7, baseTime.Add(time.Minute))
	if err != nil {
		t.Fatalf("second CheckAvailability: %v", err)
	}
	if available || reason != ReasonNotActive {
		t.Fatalf("second check = (%t, %q), want (false, %q)", available, reason, ReasonNotActive)
	}
}

func TestCheckAvailabilityMonotonicOnceExpired(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-3*time.Hour), baseTime.Add(-time.Hour), 15)
	repo := newFakeQuizRepo(quiz)
	svc := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)

	for i, at := range []time.Time{baseTime, baseTime.Add(time.Hour), baseTime.Add(24 * time.Hour)} {
		available, _, err := svc.CheckAvailability(quiz, 7, at)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if available {
			t.Fatalf("check %d: quiz must stay unavailable after expiry", i)
		}
	}
}
