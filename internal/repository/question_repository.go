package repository

import (
	"github.com/21f1006580/quiz-master/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByQuizID(quizID uint) ([]model.Question, error)
	CountByQuizID(quizID uint) (int64, error)
	Update(question *model.Question) error
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByQuizID(quizID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("quiz_id = ?", quizID).Order("created_at asc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountByQuizID(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}
