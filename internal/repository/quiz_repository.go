package repository

import (
	"time"

	"github.com/21f1006580/quiz-master/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindByChapterID(chapterID uint) ([]model.Quiz, error)
	FindBySubjectID(subjectID uint) ([]model.Quiz, error)
	FindAttemptable(now time.Time) ([]model.Quiz, error)
	FindCreatedSince(since time.Time) ([]model.Quiz, error)
	FindExpiryCandidates(now time.Time) ([]model.Quiz, error)
	FindEndingSoon(now time.Time, window time.Duration) ([]model.Quiz, error)
	Update(quiz *model.Quiz) error
	Delete(id uint) error
	LockIfActive(quizID uint, lockedAt time.Time) (bool, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.created_at asc")
	}).First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByChapterID(chapterID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.db.Where("chapter_id = ?", chapterID).Order("start_time asc").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindBySubjectID(subjectID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Joins("JOIN chapters ON chapters.id = quizzes.chapter_id").
		Where("chapters.subject_id = ? AND chapters.deleted_at IS NULL", subjectID).
		Order("quizzes.start_time asc").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// FindAttemptable returns active quizzes whose window has opened: either
// anytime quizzes or scheduled ones already past their start time. Used by
// the reminder job; per-quiz expiry is still re-checked by the caller.
func (r *quizRepository) FindAttemptable(now time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("is_active = ?", true).
		Where("is_anytime_quiz = ? OR start_time <= ?", true, now).
		Order("start_time asc").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindCreatedSince(since time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.db.Where("created_at >= ?", since).Order("created_at desc").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// FindExpiryCandidates selects quizzes the sweep should try to lock: still
// active, opted into auto-expiry, and past their grace-extended end time.
// The effective end is computed in SQL so the scan stays index-friendly.
func (r *quizRepository) FindExpiryCandidates(now time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("is_active = ? AND auto_expire = ? AND is_anytime_quiz = ?", true, true, false).
		Where("end_time IS NOT NULL").
		Where("end_time + make_interval(mins => grace_period_minutes) <= ?", now).
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

// FindEndingSoon selects active auto-expiring quizzes whose effective end
// falls within (now, now+window]. Feeds the expiry warning job.
func (r *quizRepository) FindEndingSoon(now time.Time, window time.Duration) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.
		Where("is_active = ? AND auto_expire = ? AND is_anytime_quiz = ?", true, true, false).
		Where("end_time IS NOT NULL").
		Where("end_time + make_interval(mins => grace_period_minutes) > ?", now).
		Where("end_time + make_interval(mins => grace_period_minutes) <= ?", now.Add(window)).
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Update(quiz *model.Quiz) error {
	return r.db.Save(quiz).Error
}

func (r *quizRepository) Delete(id uint) error {
	return r.db.Delete(&model.Quiz{}, id).Error
}

// LockIfActive flips is_active to false only if it is still true, as one
// conditional UPDATE. Concurrent request handlers and the sweep all race on
// this; whoever's write reports a row changed owns the transition, everyone
// else just observes the already-locked state.
func (r *quizRepository) LockIfActive(quizID uint, lockedAt time.Time) (bool, error) {
	result := r.db.Model(&model.Quiz{}).
		Where("id = ? AND is_active = ?", quizID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": lockedAt})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
