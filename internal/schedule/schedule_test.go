package schedule

import (
	"testing"
	"time"

	"github.com/21f1006580/quiz-master/internal/model"
)

var baseNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func scheduledQuiz(start time.Time, end *time.Time) *model.Quiz {
	return &model.Quiz{
		ID:              1,
		Title:           "Chapter Test",
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: 30,
		AutoExpire:      true,
		IsActive:        true,
	}
}

func TestComputeStatusPrecedence(t *testing.T) {
	tests := []struct {
		name string
		quiz *model.Quiz
		now  time.Time
		want Status
	}{
		{
			name: "inactive wins over everything",
			quiz: &model.Quiz{IsActive: false, IsAnytimeQuiz: true, StartTime: baseNow.Add(time.Hour)},
			now:  baseNow,
			want: StatusInactive,
		},
		{
			name: "anytime quiz skips time checks even when expired by schedule",
			quiz: &model.Quiz{
				IsActive:      true,
				IsAnytimeQuiz: true,
				AutoExpire:    true,
				StartTime:     baseNow.Add(time.Hour),
				EndTime:       timePtr(baseNow.Add(-2 * time.Hour)),
			},
			now:  baseNow,
			want: StatusActive,
		},
		{
			name: "before start is upcoming",
			quiz: scheduledQuiz(baseNow.Add(10*time.Minute), nil),
			now:  baseNow,
			want: StatusUpcoming,
		},
		{
			name: "at start is no longer upcoming",
			quiz: scheduledQuiz(baseNow, nil),
			now:  baseNow,
			want: StatusActive,
		},
		{
			name: "past effective end is expired",
			quiz: scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(baseNow.Add(-10*time.Minute))),
			now:  baseNow,
			want: StatusExpired,
		},
		{
			name: "within 30 minutes of end is ending_soon",
			quiz: scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(baseNow.Add(20*time.Minute))),
			now:  baseNow,
			want: StatusEndingSoon,
		},
		{
			name: "more than 30 minutes from end is active",
			quiz: scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(baseNow.Add(45*time.Minute))),
			now:  baseNow,
			want: StatusActive,
		},
		{
			name: "started with no end time is active indefinitely",
			quiz: scheduledQuiz(baseNow.Add(-time.Hour), nil),
			now:  baseNow.Add(1000 * time.Hour),
			want: StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStatus(tt.quiz, tt.now); got != tt.want {
				t.Errorf("ComputeStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	end := baseNow.Add(-10 * time.Minute)

	t.Run("auto expire disabled never expires", func(t *testing.T) {
		quiz := scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(end))
		quiz.AutoExpire = false
		if IsExpired(quiz, baseNow) {
			t.Error("expected quiz with AutoExpire=false to never expire")
		}
	})

	t.Run("no end time never expires", func(t *testing.T) {
		quiz := scheduledQuiz(baseNow.Add(-2*time.Hour), nil)
		if IsExpired(quiz, baseNow.Add(10000*time.Hour)) {
			t.Error("expected quiz without end time to never expire")
		}
	})

	t.Run("exact boundary is not expired", func(t *testing.T) {
		quiz := scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(baseNow))
		if IsExpired(quiz, baseNow) {
			t.Error("expiry must be strictly after the boundary")
		}
		if !IsExpired(quiz, baseNow.Add(time.Nanosecond)) {
			t.Error("expected expiry just past the boundary")
		}
	})

	t.Run("grace period pushes the boundary out", func(t *testing.T) {
		quiz := scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(baseNow.Add(-10*time.Minute)))
		quiz.GracePeriodMinutes = 15
		if IsExpired(quiz, baseNow) {
			t.Error("effective end should be now+5m, not expired yet")
		}
		if got := ComputeStatus(quiz, baseNow); got != StatusEndingSoon {
			t.Errorf("ComputeStatus() = %q, want %q (5 minutes left)", got, StatusEndingSoon)
		}
	})

	t.Run("monotonic once expired", func(t *testing.T) {
		quiz := scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(end))
		if !IsExpired(quiz, baseNow) {
			t.Fatal("expected quiz to be expired")
		}
		for _, later := range []time.Duration{time.Minute, time.Hour, 24 * time.Hour, 365 * 24 * time.Hour} {
			if !IsExpired(quiz, baseNow.Add(later)) {
				t.Errorf("expiry un-happened at now+%v", later)
			}
		}
	})
}

func TestNormalizeMixedZones(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	inIST := time.Date(2025, 6, 15, 17, 30, 0, 0, ist) // same instant as baseNow

	if !Normalize(inIST).Equal(baseNow) {
		t.Fatalf("Normalize(%v) = %v, want %v", inIST, Normalize(inIST), baseNow)
	}

	// A quiz persisted with a zoned end time must compare identically to UTC.
	quiz := scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(inIST))
	if IsExpired(quiz, baseNow) {
		t.Error("instant-equal zoned end time must not read as expired")
	}
	if !IsExpired(quiz, baseNow.Add(time.Second)) {
		t.Error("zoned end time must expire on the same instant basis as UTC")
	}
}

func TestEffectiveEnd(t *testing.T) {
	quiz := scheduledQuiz(baseNow, nil)
	if EffectiveEnd(quiz) != nil {
		t.Error("no end time should yield nil effective end")
	}

	quiz.EndTime = timePtr(baseNow)
	quiz.GracePeriodMinutes = 15
	got := EffectiveEnd(quiz)
	if got == nil || !got.Equal(baseNow.Add(15*time.Minute)) {
		t.Errorf("EffectiveEnd() = %v, want %v", got, baseNow.Add(15*time.Minute))
	}
}

func TestTimeRemaining(t *testing.T) {
	quiz := scheduledQuiz(baseNow.Add(-time.Hour), nil)
	if TimeRemaining(quiz, baseNow) != nil {
		t.Error("unbounded quiz should have nil time remaining")
	}

	quiz.EndTime = timePtr(baseNow.Add(25 * time.Minute))
	if got := TimeRemaining(quiz, baseNow); got == nil || *got != 25 {
		t.Errorf("TimeRemaining() = %v, want 25", got)
	}

	quiz.EndTime = timePtr(baseNow.Add(-time.Hour))
	if got := TimeRemaining(quiz, baseNow); got == nil || *got != 0 {
		t.Errorf("TimeRemaining() past end = %v, want 0", got)
	}
}

func TestShouldLock(t *testing.T) {
	expired := scheduledQuiz(baseNow.Add(-2*time.Hour), timePtr(baseNow.Add(-10*time.Minute)))

	if !ShouldLock(expired, baseNow) {
		t.Error("expired active auto-expire quiz should lock")
	}

	locked := *expired
	locked.IsActive = false
	if ShouldLock(&locked, baseNow) {
		t.Error("already-inactive quiz must not lock again")
	}

	manual := *expired
	manual.AutoExpire = false
	if ShouldLock(&manual, baseNow) {
		t.Error("quiz without auto-expire must never lock")
	}

	anytime := *expired
	anytime.IsAnytimeQuiz = true
	if ShouldLock(&anytime, baseNow) {
		t.Error("anytime quiz must never lock on schedule fields")
	}
}
