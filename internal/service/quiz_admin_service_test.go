package service

import (
	"testing"
	"time"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
	"gorm.io/gorm"
)

type fakeChapterRepo struct {
	chapters map[uint]*model.Chapter
}

func (r *fakeChapterRepo) Create(chapter *model.Chapter) error { return nil }

func (r *fakeChapterRepo) FindByID(id uint) (*model.Chapter, error) {
	chapter, ok := r.chapters[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return chapter, nil
}

func (r *fakeChapterRepo) FindBySubjectID(subjectID uint) ([]model.Chapter, error) {
	return nil, nil
}

func (r *fakeChapterRepo) FindBySubjectAndName(subjectID uint, name string) (*model.Chapter, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeChapterRepo) Update(chapter *model.Chapter) error { return nil }
func (r *fakeChapterRepo) Delete(id uint) error                { return nil }

func TestValidateSchedule(t *testing.T) {
	start := baseTime
	end := baseTime.Add(time.Hour)

	if err := validateSchedule(start, &end, 30, 5, false); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}
	if err := validateSchedule(start, nil, 30, 0, false); err != nil {
		t.Fatalf("open-ended schedule rejected: %v", err)
	}
	if err := validateSchedule(start, &end, 0, 0, false); err == nil {
		t.Fatal("zero duration must be rejected")
	}
	if err := validateSchedule(start, &end, 30, -1, false); err == nil {
		t.Fatal("negative grace period must be rejected")
	}
	backwards := baseTime.Add(-time.Hour)
	if err := validateSchedule(start, &backwards, 30, 0, false); err == nil {
		t.Fatal("end before start must be rejected")
	}
	if err := validateSchedule(start, &backwards, 30, 0, true); err != nil {
		t.Fatalf("anytime quiz must skip window validation: %v", err)
	}
}

func TestCreateQuizNormalizesTimes(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	start := time.Date(2024, 3, 10, 17, 30, 0, 0, ist)
	end := time.Date(2024, 3, 10, 19, 30, 0, 0, ist)

	quizRepo := newFakeQuizRepo()
	chapterRepo := &fakeChapterRepo{chapters: map[uint]*model.Chapter{1: {ID: 1, Name: "Ch", SubjectID: 1}}}
	svc := NewQuizAdminService(quizRepo, chapterRepo, &fakeQuestionRepo{}, nil)

	resp, err := svc.CreateQuiz(dto.QuizCreateDTO{
		Title:           "  Midterm  ",
		ChapterID:       1,
		StartTime:       start,
		EndTime:         &end,
		DurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if resp.Title != "Midterm" {
		t.Fatalf("Title = %q, want trimmed", resp.Title)
	}
	if resp.StartTime.Location() != time.UTC {
		t.Fatal("start time must be stored in UTC")
	}
	if !resp.StartTime.Equal(start) {
		t.Fatal("normalization must preserve the instant")
	}
	if !resp.IsActive || !resp.AutoExpire || !resp.ShowResultsImmediately {
		t.Fatal("new quizzes default to active, auto-expiring, with immediate results")
	}
}

func TestUpdateQuizClearEndTime(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
	quizRepo := newFakeQuizRepo(quiz)
	chapterRepo := &fakeChapterRepo{chapters: map[uint]*model.Chapter{1: {ID: 1}}}
	svc := NewQuizAdminService(quizRepo, chapterRepo, &fakeQuestionRepo{}, nil)

	resp, err := svc.UpdateQuiz(1, dto.QuizUpdateDTO{ClearEndTime: true})
	if err != nil {
		t.Fatalf("UpdateQuiz: %v", err)
	}
	if resp.EndTime != nil || resp.EffectiveEndTime != nil {
		t.Fatal("cleared end time must remove the expiry boundary")
	}
	if quizRepo.quizzes[1].EndTime != nil {
		t.Fatal("cleared end time must be persisted")
	}
}
