package service

import (
	"time"

	"github.com/21f1006580/quiz-master/internal/model"
	"gorm.io/gorm"
)

// fakeQuizRepo is an in-memory QuizRepository. LockIfActive mirrors the real
// conditional UPDATE: it only reports success when it actually flips the flag.
type fakeQuizRepo struct {
	quizzes    map[uint]*model.Quiz
	candidates []model.Quiz
	lockErr    error
	lockCalls  int
	forceLose  bool
}

func newFakeQuizRepo(quizzes ...*model.Quiz) *fakeQuizRepo {
	r := &fakeQuizRepo{quizzes: make(map[uint]*model.Quiz)}
	for _, q := range quizzes {
		r.quizzes[q.ID] = q
	}
	return r
}

func (r *fakeQuizRepo) Create(quiz *model.Quiz) error {
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (r *fakeQuizRepo) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	return r.FindByID(id)
}

func (r *fakeQuizRepo) FindByChapterID(chapterID uint) ([]model.Quiz, error) { return nil, nil }
func (r *fakeQuizRepo) FindBySubjectID(subjectID uint) ([]model.Quiz, error) { return nil, nil }
func (r *fakeQuizRepo) FindAttemptable(now time.Time) ([]model.Quiz, error)  { return nil, nil }
func (r *fakeQuizRepo) FindCreatedSince(since time.Time) ([]model.Quiz, error) {
	return nil, nil
}

func (r *fakeQuizRepo) FindExpiryCandidates(now time.Time) ([]model.Quiz, error) {
	return r.candidates, nil
}

func (r *fakeQuizRepo) FindEndingSoon(now time.Time, window time.Duration) ([]model.Quiz, error) {
	return nil, nil
}

func (r *fakeQuizRepo) Update(quiz *model.Quiz) error {
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *fakeQuizRepo) Delete(id uint) error {
	delete(r.quizzes, id)
	return nil
}

func (r *fakeQuizRepo) LockIfActive(quizID uint, lockedAt time.Time) (bool, error) {
	r.lockCalls++
	if r.lockErr != nil {
		return false, r.lockErr
	}
	quiz, ok := r.quizzes[quizID]
	if !ok || !quiz.IsActive || r.forceLose {
		return false, nil
	}
	quiz.IsActive = false
	quiz.UpdatedAt = lockedAt
	return true, nil
}

type fakeScoreRepo struct {
	scores     []model.Score
	attemptErr error
	created    []model.Score
}

func (r *fakeScoreRepo) Create(score *model.Score) error {
	r.created = append(r.created, *score)
	r.scores = append(r.scores, *score)
	return nil
}

func (r *fakeScoreRepo) FindByUserID(userID uint) ([]model.Score, error) {
	var out []model.Score
	for _, s := range r.scores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeScoreRepo) FindByUserIDWithQuiz(userID uint) ([]model.Score, error) {
	return r.FindByUserID(userID)
}

func (r *fakeScoreRepo) FindLatestByQuizAndUser(quizID, userID uint) (*model.Score, error) {
	for i := len(r.scores) - 1; i >= 0; i-- {
		if r.scores[i].QuizID == quizID && r.scores[i].UserID == userID {
			return &r.scores[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeScoreRepo) FindByUserBetween(userID uint, from, to time.Time) ([]model.Score, error) {
	return nil, nil
}

func (r *fakeScoreRepo) HasAttempt(quizID, userID uint) (bool, error) {
	if r.attemptErr != nil {
		return false, r.attemptErr
	}
	for _, s := range r.scores {
		if s.QuizID == quizID && s.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeScoreRepo) QuizIDsAttemptedBy(userID uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	for _, s := range r.scores {
		if s.UserID == userID {
			out[s.QuizID] = true
		}
	}
	return out, nil
}

type fakeQuestionRepo struct {
	questions []model.Question
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	r.questions = append(r.questions, *question)
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	for i := range r.questions {
		if r.questions[i].ID == id {
			return &r.questions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) FindByQuizID(quizID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	qs, _ := r.FindByQuizID(quizID)
	return int64(len(qs)), nil
}

func (r *fakeQuestionRepo) Update(question *model.Question) error { return nil }
func (r *fakeQuestionRepo) Delete(id uint) error                  { return nil }

func timePtr(t time.Time) *time.Time { return &t }

func scheduledQuiz(id uint, start, end time.Time, graceMinutes int) *model.Quiz {
	quiz := &model.Quiz{
		Title:              "Quiz",
		ChapterID:          1,
		StartTime:          start,
		EndTime:            timePtr(end),
		DurationMinutes:    30,
		GracePeriodMinutes: graceMinutes,
		AutoExpire:         true,
		IsActive:           true,
	}
	quiz.ID = id
	return quiz
}
