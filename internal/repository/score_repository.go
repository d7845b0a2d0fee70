package repository

import (
	"time"

	"github.com/21f1006580/quiz-master/internal/model"
	"gorm.io/gorm"
)

type ScoreRepository interface {
	Create(score *model.Score) error
	FindByUserID(userID uint) ([]model.Score, error)
	FindByUserIDWithQuiz(userID uint) ([]model.Score, error)
	FindLatestByQuizAndUser(quizID, userID uint) (*model.Score, error)
	FindByUserBetween(userID uint, from, to time.Time) ([]model.Score, error)
	HasAttempt(quizID, userID uint) (bool, error)
	QuizIDsAttemptedBy(userID uint) (map[uint]bool, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(score *model.Score) error {
	return r.db.Create(score).Error
}

func (r *scoreRepository) FindByUserID(userID uint) ([]model.Score, error) {
	var scores []model.Score
	if err := r.db.Where("user_id = ?", userID).Order("attempted_at desc").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreRepository) FindByUserIDWithQuiz(userID uint) ([]model.Score, error) {
	var scores []model.Score
	err := r.db.Where("user_id = ?", userID).
		Preload("Quiz").
		Order("attempted_at desc").
		Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

func (r *scoreRepository) FindLatestByQuizAndUser(quizID, userID uint) (*model.Score, error) {
	var score model.Score
	err := r.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("attempted_at desc").
		First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *scoreRepository) FindByUserBetween(userID uint, from, to time.Time) ([]model.Score, error) {
	var scores []model.Score
	err := r.db.Where("user_id = ? AND attempted_at >= ? AND attempted_at < ?", userID, from, to).
		Preload("Quiz").
		Order("attempted_at asc").
		Find(&scores).Error
	if err != nil {
		return nil, err
	}
	return scores, nil
}

// HasAttempt is the eligibility lookup: does any scored attempt exist for
// this (user, quiz) pair.
func (r *scoreRepository) HasAttempt(quizID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Score{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *scoreRepository) QuizIDsAttemptedBy(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&model.Score{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("quiz_id", &ids).Error
	if err != nil {
		return nil, err
	}
	attempted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		attempted[id] = true
	}
	return attempted, nil
}
