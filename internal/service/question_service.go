package service

import (
	"fmt"
	"time"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type QuestionService interface {
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	GetQuestionsByQuiz(quizID uint, now time.Time) (*dto.QuizResponseDTO, []dto.QuestionResponseDTO, error)
	UpdateQuestion(questionID uint, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(questionID uint) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	quizRepo     repository.QuizRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, quizRepo repository.QuizRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, quizRepo: quizRepo}
}

func (s *questionService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	if _, err := s.quizRepo.FindByID(req.QuizID); err != nil {
		return nil, notFoundf("quiz %d", req.QuizID)
	}

	question := model.Question{
		QuizID:        req.QuizID,
		Statement:     req.Statement,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Option4:       req.Option4,
		CorrectOption: req.CorrectOption,
	}
	if err := validateCorrectOption(&question); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("quizID", req.QuizID).Msg("Failed to create question")
		return nil, fmt.Errorf("creating question: %w", err)
	}
	return questionToDTO(&question)
}

func (s *questionService) GetQuestionsByQuiz(quizID uint, now time.Time) (*dto.QuizResponseDTO, []dto.QuestionResponseDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, nil, notFoundf("quiz %d", quizID)
	}

	questions, err := s.questionRepo.FindByQuizID(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("Failed to list questions")
		return nil, nil, fmt.Errorf("listing questions: %w", err)
	}

	out := make([]dto.QuestionResponseDTO, 0, len(questions))
	for i := range questions {
		item, err := questionToDTO(&questions[i])
		if err != nil {
			return nil, nil, err
		}
		out = append(out, *item)
	}

	quizView := buildQuizResponse(quiz, len(questions), now)
	return &quizView, out, nil
}

func (s *questionService) UpdateQuestion(questionID uint, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, notFoundf("question %d", questionID)
	}

	if req.Statement != nil {
		question.Statement = *req.Statement
	}
	if req.Option1 != nil {
		question.Option1 = *req.Option1
	}
	if req.Option2 != nil {
		question.Option2 = *req.Option2
	}
	if req.Option3 != nil {
		question.Option3 = req.Option3
	}
	if req.Option4 != nil {
		question.Option4 = req.Option4
	}
	if req.CorrectOption != nil {
		question.CorrectOption = *req.CorrectOption
	}
	if err := validateCorrectOption(question); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to update question")
		return nil, fmt.Errorf("updating question: %w", err)
	}
	return questionToDTO(question)
}

func (s *questionService) DeleteQuestion(questionID uint) error {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		return notFoundf("question %d", questionID)
	}
	if err := s.questionRepo.Delete(questionID); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to delete question")
		return fmt.Errorf("deleting question: %w", err)
	}
	return nil
}

func validateCorrectOption(q *model.Question) error {
	if q.CorrectOption < 1 || q.CorrectOption > q.OptionCount() {
		return fmt.Errorf("correct option %d is outside the %d provided options", q.CorrectOption, q.OptionCount())
	}
	return nil
}

func questionToDTO(question *model.Question) (*dto.QuestionResponseDTO, error) {
	var out dto.QuestionResponseDTO
	if err := copier.Copy(&out, question); err != nil {
		return nil, fmt.Errorf("preparing question response: %w", err)
	}
	return &out, nil
}
