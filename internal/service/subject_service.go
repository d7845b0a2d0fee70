package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/21f1006580/quiz-master/internal/cache"
	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SubjectService interface {
	CreateSubject(req dto.SubjectCreateDTO) (*dto.SubjectResponseDTO, error)
	GetSubjects(page, perPage int, search string) (*dto.SubjectPageDTO, error)
	UpdateSubject(subjectID uint, req dto.SubjectUpdateDTO) (*dto.SubjectResponseDTO, error)
	DeleteSubject(subjectID uint) error
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
	cache       *cache.Cache
}

func NewSubjectService(subjectRepo repository.SubjectRepository, cache *cache.Cache) SubjectService {
	return &subjectService{subjectRepo: subjectRepo, cache: cache}
}

func (s *subjectService) CreateSubject(req dto.SubjectCreateDTO) (*dto.SubjectResponseDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("subject name is required")
	}

	if _, err := s.subjectRepo.FindByName(name); err == nil {
		return nil, fmt.Errorf("subject %q: %w", name, ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing subject: %w", err)
	}

	subject := model.Subject{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
	}
	if err := s.subjectRepo.Create(&subject); err != nil {
		log.Error().Err(err).Str("name", name).Msg("Failed to create subject")
		return nil, fmt.Errorf("creating subject: %w", err)
	}

	s.invalidate()
	return subjectToDTO(&subject)
}

func (s *subjectService) GetSubjects(page, perPage int, search string) (*dto.SubjectPageDTO, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	subjects, total, err := s.subjectRepo.FindActivePage(page, perPage, search)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list subjects")
		return nil, fmt.Errorf("listing subjects: %w", err)
	}

	out := dto.SubjectPageDTO{
		Subjects:    make([]dto.SubjectResponseDTO, 0, len(subjects)),
		Total:       total,
		CurrentPage: page,
		PerPage:     perPage,
		Pages:       int((total + int64(perPage) - 1) / int64(perPage)),
	}
	for i := range subjects {
		item, err := subjectToDTO(&subjects[i])
		if err != nil {
			return nil, err
		}
		out.Subjects = append(out.Subjects, *item)
	}
	return &out, nil
}

func (s *subjectService) UpdateSubject(subjectID uint, req dto.SubjectUpdateDTO) (*dto.SubjectResponseDTO, error) {
	subject, err := s.subjectRepo.FindByID(subjectID)
	if err != nil {
		return nil, notFoundf("subject %d", subjectID)
	}

	if req.Name != nil && *req.Name != subject.Name {
		name := strings.TrimSpace(*req.Name)
		if _, err := s.subjectRepo.FindByName(name); err == nil {
			return nil, fmt.Errorf("subject %q: %w", name, ErrAlreadyExists)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checking existing subject: %w", err)
		}
		subject.Name = name
	}
	if req.Description != nil {
		subject.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		subject.IsActive = *req.IsActive
	}

	if err := s.subjectRepo.Update(subject); err != nil {
		log.Error().Err(err).Uint("subjectID", subjectID).Msg("Failed to update subject")
		return nil, fmt.Errorf("updating subject: %w", err)
	}

	s.invalidate()
	return subjectToDTO(subject)
}

func (s *subjectService) DeleteSubject(subjectID uint) error {
	if _, err := s.subjectRepo.FindByID(subjectID); err != nil {
		return notFoundf("subject %d", subjectID)
	}
	if err := s.subjectRepo.Delete(subjectID); err != nil {
		log.Error().Err(err).Uint("subjectID", subjectID).Msg("Failed to delete subject")
		return fmt.Errorf("deleting subject: %w", err)
	}
	s.invalidate()
	return nil
}

func (s *subjectService) invalidate() {
	if s.cache != nil {
		s.cache.InvalidateSubjects()
	}
}

func subjectToDTO(subject *model.Subject) (*dto.SubjectResponseDTO, error) {
	var out dto.SubjectResponseDTO
	if err := copier.Copy(&out, subject); err != nil {
		return nil, fmt.Errorf("preparing subject response: %w", err)
	}
	return &out, nil
}
