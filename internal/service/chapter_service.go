package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ChapterService interface {
	CreateChapter(req dto.ChapterCreateDTO) (*dto.ChapterResponseDTO, error)
	GetChaptersBySubject(subjectID uint) ([]dto.ChapterResponseDTO, error)
	UpdateChapter(chapterID uint, req dto.ChapterUpdateDTO) (*dto.ChapterResponseDTO, error)
	DeleteChapter(chapterID uint) error
}

type chapterService struct {
	chapterRepo repository.ChapterRepository
	subjectRepo repository.SubjectRepository
}

func NewChapterService(chapterRepo repository.ChapterRepository, subjectRepo repository.SubjectRepository) ChapterService {
	return &chapterService{chapterRepo: chapterRepo, subjectRepo: subjectRepo}
}

func (s *chapterService) CreateChapter(req dto.ChapterCreateDTO) (*dto.ChapterResponseDTO, error) {
	if _, err := s.subjectRepo.FindByID(req.SubjectID); err != nil {
		return nil, notFoundf("subject %d", req.SubjectID)
	}

	name := strings.TrimSpace(req.Name)
	if _, err := s.chapterRepo.FindBySubjectAndName(req.SubjectID, name); err == nil {
		return nil, fmt.Errorf("chapter %q in subject %d: %w", name, req.SubjectID, ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing chapter: %w", err)
	}

	chapter := model.Chapter{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		SubjectID:   req.SubjectID,
	}
	if err := s.chapterRepo.Create(&chapter); err != nil {
		log.Error().Err(err).Str("name", name).Uint("subjectID", req.SubjectID).Msg("Failed to create chapter")
		return nil, fmt.Errorf("creating chapter: %w", err)
	}
	return chapterToDTO(&chapter)
}

func (s *chapterService) GetChaptersBySubject(subjectID uint) ([]dto.ChapterResponseDTO, error) {
	if _, err := s.subjectRepo.FindByID(subjectID); err != nil {
		return nil, notFoundf("subject %d", subjectID)
	}

	chapters, err := s.chapterRepo.FindBySubjectID(subjectID)
	if err != nil {
		log.Error().Err(err).Uint("subjectID", subjectID).Msg("Failed to list chapters")
		return nil, fmt.Errorf("listing chapters: %w", err)
	}

	out := make([]dto.ChapterResponseDTO, 0, len(chapters))
	for i := range chapters {
		item, err := chapterToDTO(&chapters[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *chapterService) UpdateChapter(chapterID uint, req dto.ChapterUpdateDTO) (*dto.ChapterResponseDTO, error) {
	chapter, err := s.chapterRepo.FindByID(chapterID)
	if err != nil {
		return nil, notFoundf("chapter %d", chapterID)
	}

	if req.Name != nil && *req.Name != chapter.Name {
		name := strings.TrimSpace(*req.Name)
		if _, err := s.chapterRepo.FindBySubjectAndName(chapter.SubjectID, name); err == nil {
			return nil, fmt.Errorf("chapter %q in subject %d: %w", name, chapter.SubjectID, ErrAlreadyExists)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checking existing chapter: %w", err)
		}
		chapter.Name = name
	}
	if req.Description != nil {
		chapter.Description = strings.TrimSpace(*req.Description)
	}

	if err := s.chapterRepo.Update(chapter); err != nil {
		log.Error().Err(err).Uint("chapterID", chapterID).Msg("Failed to update chapter")
		return nil, fmt.Errorf("updating chapter: %w", err)
	}
	return chapterToDTO(chapter)
}

func (s *chapterService) DeleteChapter(chapterID uint) error {
	if _, err := s.chapterRepo.FindByID(chapterID); err != nil {
		return notFoundf("chapter %d", chapterID)
	}
	if err := s.chapterRepo.Delete(chapterID); err != nil {
		log.Error().Err(err).Uint("chapterID", chapterID).Msg("Failed to delete chapter")
		return fmt.Errorf("deleting chapter: %w", err)
	}
	return nil
}

func chapterToDTO(chapter *model.Chapter) (*dto.ChapterResponseDTO, error) {
	var out dto.ChapterResponseDTO
	if err := copier.Copy(&out, chapter); err != nil {
		return nil, fmt.Errorf("preparing chapter response: %w", err)
	}
	return &out, nil
}
