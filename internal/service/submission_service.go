package service

import (
	"fmt"
	"time"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/21f1006580/quiz-master/internal/schedule"
	"github.com/rs/zerolog/log"
)

// SubmissionService scores a completed attempt and records it.
type SubmissionService interface {
	SubmitQuiz(quizID, userID uint, req dto.QuizSubmitDTO, now time.Time) (*dto.SubmitResultDTO, error)
	GetUserScores(userID uint) ([]dto.ScoreResponseDTO, error)
	GetScoreSummary(userID uint) (*dto.ScoreSummaryDTO, error)
}

type submissionService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	scoreRepo    repository.ScoreRepository
	availability AvailabilityService
}

func NewSubmissionService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	scoreRepo repository.ScoreRepository,
	availability AvailabilityService,
) SubmissionService {
	return &submissionService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		scoreRepo:    scoreRepo,
		availability: availability,
	}
}

func (s *submissionService) SubmitQuiz(quizID, userID uint, req dto.QuizSubmitDTO, now time.Time) (*dto.SubmitResultDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		return nil, notFoundf("quiz %d", quizID)
	}

	// Submission runs the same eligibility gate as starting an attempt, so
	// a quiz that expired mid-attempt is rejected here and auto-locked.
	available, reason, err := s.availability.CheckAvailability(quiz, userID, now)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, &AvailabilityError{Reason: reason}
	}

	questions, err := s.questionRepo.FindByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("loading questions for quiz %d: %w", quizID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz %d has no questions", quizID)
	}

	answered := make(map[uint]int, len(req.Answers))
	for _, answer := range req.Answers {
		answered[answer.QuestionID] = answer.SelectedOption
	}

	correct := 0
	for i := range questions {
		if selected, ok := answered[questions[i].ID]; ok && selected == questions[i].CorrectOption {
			correct++
		}
	}

	score := model.Score{
		QuizID:           quizID,
		UserID:           userID,
		TotalQuestions:   len(questions),
		CorrectAnswers:   correct,
		TotalScore:       float64(correct) / float64(len(questions)) * 100,
		TimeTakenSeconds: req.TimeTakenSeconds,
		AttemptedAt:      schedule.Normalize(now),
	}
	if err := s.scoreRepo.Create(&score); err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Uint("userID", userID).Msg("Failed to record score")
		return nil, fmt.Errorf("recording score: %w", err)
	}

	log.Info().Uint("quizID", quizID).Uint("userID", userID).Int("correct", correct).Int("total", len(questions)).Msg("Quiz attempt scored")

	result := &dto.SubmitResultDTO{Message: "Quiz submitted"}
	if quiz.ShowResultsImmediately {
		result.Score = scoreToDTO(&score, quiz.Title)
	}
	return result, nil
}

func (s *submissionService) GetUserScores(userID uint) ([]dto.ScoreResponseDTO, error) {
	scores, err := s.scoreRepo.FindByUserIDWithQuiz(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load user scores")
		return nil, fmt.Errorf("listing scores: %w", err)
	}

	out := make([]dto.ScoreResponseDTO, 0, len(scores))
	for i := range scores {
		out = append(out, *scoreToDTO(&scores[i], scores[i].Quiz.Title))
	}
	return out, nil
}

func (s *submissionService) GetScoreSummary(userID uint) (*dto.ScoreSummaryDTO, error) {
	scores, err := s.scoreRepo.FindByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load score summary")
		return nil, fmt.Errorf("summarizing scores: %w", err)
	}

	summary := dto.ScoreSummaryDTO{TotalQuizzesAttempted: len(scores)}
	if len(scores) == 0 {
		return &summary, nil
	}

	var totalPct float64
	for i := range scores {
		summary.TotalCorrectAnswers += scores[i].CorrectAnswers
		totalPct += scores[i].TotalScore
	}
	summary.AverageScore = totalPct / float64(len(scores))
	return &summary, nil
}

func scoreToDTO(score *model.Score, quizTitle string) *dto.ScoreResponseDTO {
	return &dto.ScoreResponseDTO{
		ID:               score.ID,
		QuizID:           score.QuizID,
		QuizTitle:        quizTitle,
		TotalQuestions:   score.TotalQuestions,
		CorrectAnswers:   score.CorrectAnswers,
		TotalScore:       score.TotalScore,
		TimeTakenSeconds: score.TimeTakenSeconds,
		AttemptedAt:      score.AttemptedAt,
	}
}
