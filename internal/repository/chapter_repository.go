package repository

import (
	"github.com/21f1006580/quiz-master/internal/model"
	"gorm.io/gorm"
)

type ChapterRepository interface {
	Create(chapter *model.Chapter) error
	FindByID(id uint) (*model.Chapter, error)
	FindBySubjectID(subjectID uint) ([]model.Chapter, error)
	FindBySubjectAndName(subjectID uint, name string) (*model.Chapter, error)
	Update(chapter *model.Chapter) error
	Delete(id uint) error
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(chapter *model.Chapter) error {
	return r.db.Create(chapter).Error
}

func (r *chapterRepository) FindByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.First(&chapter, id).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) FindBySubjectID(subjectID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	if err := r.db.Where("subject_id = ?", subjectID).Order("created_at asc").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) FindBySubjectAndName(subjectID uint, name string) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := r.db.Where("subject_id = ? AND name = ?", subjectID, name).First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) Update(chapter *model.Chapter) error {
	return r.db.Save(chapter).Error
}

func (r *chapterRepository) Delete(id uint) error {
	return r.db.Delete(&model.Chapter{}, id).Error
}
