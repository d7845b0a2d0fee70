package repository

import (
	"github.com/21f1006580/quiz-master/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository interface {
	Create(subject *model.Subject) error
	FindByID(id uint) (*model.Subject, error)
	FindByName(name string) (*model.Subject, error)
	FindActivePage(page, perPage int, search string) ([]model.Subject, int64, error)
	FindAllActive() ([]model.Subject, error)
	Update(subject *model.Subject) error
	Delete(id uint) error
}

type subjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(subject *model.Subject) error {
	return r.db.Create(subject).Error
}

func (r *subjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindByName(name string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.Where("name = ?", name).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) FindActivePage(page, perPage int, search string) ([]model.Subject, int64, error) {
	var subjects []model.Subject
	var total int64

	query := r.db.Model(&model.Subject{}).Where("is_active = ?", true)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&subjects).Error
	if err != nil {
		return nil, 0, err
	}
	return subjects, total, nil
}

func (r *subjectRepository) FindAllActive() ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.Where("is_active = ?", true).Order("name asc").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepository) Update(subject *model.Subject) error {
	return r.db.Save(subject).Error
}

func (r *subjectRepository) Delete(id uint) error {
	return r.db.Delete(&model.Subject{}, id).Error
}
