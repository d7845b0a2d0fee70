package service

import (
	"testing"
	"time"
)

func TestSweepExpiredLocksAllCandidates(t *testing.T) {
	repo := newFakeQuizRepo()
	for id := uint(1); id <= 5; id++ {
		quiz := scheduledQuiz(id, baseTime.Add(-3*time.Hour), baseTime.Add(-time.Hour), 0)
		repo.quizzes[id] = quiz
		repo.candidates = append(repo.candidates, *quiz)
	}
	// Active quizzes that the SQL filter would not have selected.
	live := scheduledQuiz(10, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
	repo.quizzes[10] = live

	availability := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)
	svc := NewExpiryService(repo, availability, nil)

	summary, err := svc.SweepExpired(baseTime)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if summary.CheckedCount != 5 || summary.LockedCount != 5 {
		t.Fatalf("summary = checked %d locked %d, want 5/5", summary.CheckedCount, summary.LockedCount)
	}
	if len(summary.Locked) != 5 {
		t.Fatalf("len(Locked) = %d, want 5", len(summary.Locked))
	}
	for id := uint(1); id <= 5; id++ {
		if repo.quizzes[id].IsActive {
			t.Fatalf("quiz %d should be locked", id)
		}
	}
	if !repo.quizzes[10].IsActive {
		t.Fatal("quiz outside the candidate set must stay active")
	}
}

func TestSweepExpiredRechecksCandidates(t *testing.T) {
	repo := newFakeQuizRepo()
	// A candidate the query returned but whose boundary has not actually
	// passed; the in-process re-check must skip it.
	fresh := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
	repo.quizzes[1] = fresh
	repo.candidates = append(repo.candidates, *fresh)

	expired := scheduledQuiz(2, baseTime.Add(-3*time.Hour), baseTime.Add(-time.Hour), 0)
	repo.quizzes[2] = expired
	repo.candidates = append(repo.candidates, *expired)

	availability := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)
	svc := NewExpiryService(repo, availability, nil)

	summary, err := svc.SweepExpired(baseTime)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if summary.CheckedCount != 2 || summary.LockedCount != 1 {
		t.Fatalf("summary = checked %d locked %d, want 2/1", summary.CheckedCount, summary.LockedCount)
	}
	if !repo.quizzes[1].IsActive {
		t.Fatal("not-yet-expired candidate must stay active")
	}
	if repo.quizzes[2].IsActive {
		t.Fatal("expired candidate should be locked")
	}
}

func TestSweepExpiredSkipsAlreadyLocked(t *testing.T) {
	repo := newFakeQuizRepo()
	quiz := scheduledQuiz(1, baseTime.Add(-3*time.Hour), baseTime.Add(-time.Hour), 0)
	repo.quizzes[1] = quiz
	// The candidate snapshot still shows it active, but by sweep time another
	// writer locked it.
	repo.candidates = append(repo.candidates, *quiz)
	quiz.IsActive = false

	availability := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)
	svc := NewExpiryService(repo, availability, nil)

	summary, err := svc.SweepExpired(baseTime)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if summary.LockedCount != 0 {
		t.Fatalf("LockedCount = %d, want 0 when another writer won", summary.LockedCount)
	}
}

func TestExpireQuizOnDemand(t *testing.T) {
	repo := newFakeQuizRepo(scheduledQuiz(1, baseTime.Add(-3*time.Hour), baseTime.Add(-time.Hour), 0))
	availability := NewAvailabilityService(repo, &fakeScoreRepo{}, nil)
	svc := NewExpiryService(repo, availability, nil)

	result, err := svc.ExpireQuiz(1, baseTime)
	if err != nil {
		t.Fatalf("ExpireQuiz: %v", err)
	}
	if !result.WasLocked {
		t.Fatal("expected the quiz to be locked")
	}
	if repo.quizzes[1].IsActive {
		t.Fatal("quiz should be persisted as inactive")
	}

	// Still-live quizzes are not eligible.
	repo2 := newFakeQuizRepo(scheduledQuiz(2, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0))
	svc2 := NewExpiryService(repo2, NewAvailabilityService(repo2, &fakeScoreRepo{}, nil), nil)
	result, err = svc2.ExpireQuiz(2, baseTime)
	if err != nil {
		t.Fatalf("ExpireQuiz live: %v", err)
	}
	if result.WasLocked {
		t.Fatal("live quiz must not be locked on demand")
	}
}
