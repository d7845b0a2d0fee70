package service

import (
	"testing"
	"time"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
)

func strPtr(s string) *string { return &s }

func submissionFixture(quiz *model.Quiz) (SubmissionService, *fakeScoreRepo) {
	quizRepo := newFakeQuizRepo(quiz)
	questionRepo := &fakeQuestionRepo{questions: []model.Question{
		{ID: 1, QuizID: quiz.ID, Statement: "Q1", Option1: "a", Option2: "b", CorrectOption: 1},
		{ID: 2, QuizID: quiz.ID, Statement: "Q2", Option1: "a", Option2: "b", Option3: strPtr("c"), CorrectOption: 3},
		{ID: 3, QuizID: quiz.ID, Statement: "Q3", Option1: "a", Option2: "b", CorrectOption: 2},
		{ID: 4, QuizID: quiz.ID, Statement: "Q4", Option1: "a", Option2: "b", CorrectOption: 2},
	}}
	scoreRepo := &fakeScoreRepo{}
	availability := NewAvailabilityService(quizRepo, scoreRepo, nil)
	return NewSubmissionService(quizRepo, questionRepo, scoreRepo, availability), scoreRepo
}

func TestSubmitQuizScoresExactMatches(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
	quiz.ShowResultsImmediately = true
	svc, scoreRepo := submissionFixture(quiz)

	req := dto.QuizSubmitDTO{
		Answers: []dto.AnswerDTO{
			{QuestionID: 1, SelectedOption: 1}, // correct
			{QuestionID: 2, SelectedOption: 2}, // wrong
			{QuestionID: 3, SelectedOption: 2}, // correct
			// question 4 left unanswered
		},
		TimeTakenSeconds: 240,
	}

	result, err := svc.SubmitQuiz(1, 7, req, baseTime)
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if result.Score == nil {
		t.Fatal("expected immediate score in the result")
	}
	if result.Score.CorrectAnswers != 2 || result.Score.TotalQuestions != 4 {
		t.Fatalf("score = %d/%d, want 2/4", result.Score.CorrectAnswers, result.Score.TotalQuestions)
	}
	if result.Score.TotalScore != 50 {
		t.Fatalf("TotalScore = %v, want 50", result.Score.TotalScore)
	}
	if len(scoreRepo.created) != 1 {
		t.Fatalf("persisted %d scores, want 1", len(scoreRepo.created))
	}
	if scoreRepo.created[0].TimeTakenSeconds != 240 {
		t.Fatalf("TimeTakenSeconds = %d, want 240", scoreRepo.created[0].TimeTakenSeconds)
	}
}

func TestSubmitQuizHidesResultsWhenConfigured(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
	quiz.ShowResultsImmediately = false
	svc, scoreRepo := submissionFixture(quiz)

	result, err := svc.SubmitQuiz(1, 7, dto.QuizSubmitDTO{
		Answers: []dto.AnswerDTO{{QuestionID: 1, SelectedOption: 1}},
	}, baseTime)
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if result.Score != nil {
		t.Fatal("score must be withheld when immediate results are disabled")
	}
	if len(scoreRepo.created) != 1 {
		t.Fatal("score must still be recorded")
	}
}

func TestSubmitQuizRejectsExpired(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-3*time.Hour), baseTime.Add(-time.Hour), 0)
	svc, scoreRepo := submissionFixture(quiz)

	_, err := svc.SubmitQuiz(1, 7, dto.QuizSubmitDTO{
		Answers: []dto.AnswerDTO{{QuestionID: 1, SelectedOption: 1}},
	}, baseTime)
	avErr, ok := IsAvailabilityError(err)
	if !ok {
		t.Fatalf("expected AvailabilityError, got %v", err)
	}
	if avErr.Reason != ReasonExpired {
		t.Fatalf("reason = %q, want %q", avErr.Reason, ReasonExpired)
	}
	if len(scoreRepo.created) != 0 {
		t.Fatal("rejected submission must not record a score")
	}
}

func TestSubmitQuizRejectsSecondAttempt(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
	svc, scoreRepo := submissionFixture(quiz)

	req := dto.QuizSubmitDTO{Answers: []dto.AnswerDTO{{QuestionID: 1, SelectedOption: 1}}}
	if _, err := svc.SubmitQuiz(1, 7, req, baseTime); err != nil {
		t.Fatalf("first SubmitQuiz: %v", err)
	}

	_, err := svc.SubmitQuiz(1, 7, req, baseTime.Add(time.Minute))
	avErr, ok := IsAvailabilityError(err)
	if !ok || avErr.Reason != ReasonAlreadyAttempted {
		t.Fatalf("second submit err = %v, want %q", err, ReasonAlreadyAttempted)
	}
	if len(scoreRepo.created) != 1 {
		t.Fatalf("persisted %d scores, want 1", len(scoreRepo.created))
	}
}

func TestSubmitQuizAllowsRetakes(t *testing.T) {
	quiz := scheduledQuiz(1, baseTime.Add(-time.Hour), baseTime.Add(time.Hour), 0)
	quiz.AllowMultipleAttempts = true
	svc, scoreRepo := submissionFixture(quiz)

	req := dto.QuizSubmitDTO{Answers: []dto.AnswerDTO{{QuestionID: 1, SelectedOption: 1}}}
	if _, err := svc.SubmitQuiz(1, 7, req, baseTime); err != nil {
		t.Fatalf("first SubmitQuiz: %v", err)
	}
	if _, err := svc.SubmitQuiz(1, 7, req, baseTime.Add(time.Minute)); err != nil {
		t.Fatalf("second SubmitQuiz: %v", err)
	}
	if len(scoreRepo.created) != 2 {
		t.Fatalf("persisted %d scores, want 2", len(scoreRepo.created))
	}
}

func TestGetScoreSummary(t *testing.T) {
	scoreRepo := &fakeScoreRepo{scores: []model.Score{
		{UserID: 7, QuizID: 1, CorrectAnswers: 3, TotalScore: 75},
		{UserID: 7, QuizID: 2, CorrectAnswers: 1, TotalScore: 25},
		{UserID: 9, QuizID: 1, CorrectAnswers: 4, TotalScore: 100},
	}}
	quizRepo := newFakeQuizRepo()
	svc := NewSubmissionService(quizRepo, &fakeQuestionRepo{}, scoreRepo, NewAvailabilityService(quizRepo, scoreRepo, nil))

	summary, err := svc.GetScoreSummary(7)
	if err != nil {
		t.Fatalf("GetScoreSummary: %v", err)
	}
	if summary.TotalQuizzesAttempted != 2 || summary.TotalCorrectAnswers != 4 {
		t.Fatalf("summary = %+v, want 2 attempts and 4 correct", summary)
	}
	if summary.AverageScore != 50 {
		t.Fatalf("AverageScore = %v, want 50", summary.AverageScore)
	}
}
