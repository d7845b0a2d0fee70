package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/21f1006580/quiz-master/internal/mailer"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/rs/zerolog/log"
)

// ExportService builds CSV extracts and mails them to the requester. Callers
// run these in the background; the HTTP layer only acknowledges the request.
type ExportService interface {
	ExportUserScoresCSV(userID uint) error
	ExportAdminUserCSV(adminID uint) error
}

type exportService struct {
	userRepo  repository.UserRepository
	scoreRepo repository.ScoreRepository
	mailer    mailer.Mailer
}

func NewExportService(userRepo repository.UserRepository, scoreRepo repository.ScoreRepository, mailer mailer.Mailer) ExportService {
	return &exportService{userRepo: userRepo, scoreRepo: scoreRepo, mailer: mailer}
}

func (s *exportService) ExportUserScoresCSV(userID uint) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return notFoundf("user %d", userID)
	}

	scores, err := s.scoreRepo.FindByUserIDWithQuiz(userID)
	if err != nil {
		return fmt.Errorf("loading scores for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"quiz_id", "quiz_title", "chapter_id", "total_questions", "correct_answers", "total_score_pct", "time_taken_seconds", "attempted_at"})
	for i := range scores {
		score := &scores[i]
		_ = w.Write([]string{
			strconv.FormatUint(uint64(score.QuizID), 10),
			score.Quiz.Title,
			strconv.FormatUint(uint64(score.Quiz.ChapterID), 10),
			strconv.Itoa(score.TotalQuestions),
			strconv.Itoa(score.CorrectAnswers),
			strconv.FormatFloat(score.TotalScore, 'f', 2, 64),
			strconv.Itoa(score.TimeTakenSeconds),
			score.AttemptedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing score CSV: %w", err)
	}

	body := fmt.Sprintf("Hi %s,\n\nAttached is the export of your %d quiz attempts.\n", user.FullName, len(scores))
	if err := s.mailer.SendWithAttachment(user.Username, "Your quiz score export", body, "quiz_scores.csv", buf.Bytes()); err != nil {
		return err
	}

	log.Info().Uint("userID", userID).Int("rows", len(scores)).Msg("User score CSV exported and mailed")
	return nil
}

func (s *exportService) ExportAdminUserCSV(adminID uint) error {
	admin, err := s.userRepo.FindByID(adminID)
	if err != nil {
		return notFoundf("user %d", adminID)
	}

	users, err := s.userRepo.FindAllNonAdminWithScores()
	if err != nil {
		return fmt.Errorf("loading users for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"user_id", "username", "full_name", "quizzes_attempted", "average_score_pct", "best_score_pct", "last_attempt_at"})
	for i := range users {
		user := &users[i]

		var avg, best float64
		lastAttempt := ""
		if len(user.Scores) > 0 {
			var total float64
			for j := range user.Scores {
				total += user.Scores[j].TotalScore
				if user.Scores[j].TotalScore > best {
					best = user.Scores[j].TotalScore
				}
			}
			avg = total / float64(len(user.Scores))
			// Scores are preloaded newest first.
			lastAttempt = user.Scores[0].AttemptedAt.UTC().Format(time.RFC3339)
		}

		_ = w.Write([]string{
			strconv.FormatUint(uint64(user.ID), 10),
			user.Username,
			user.FullName,
			strconv.Itoa(len(user.Scores)),
			strconv.FormatFloat(avg, 'f', 2, 64),
			strconv.FormatFloat(best, 'f', 2, 64),
			lastAttempt,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing user performance CSV: %w", err)
	}

	body := fmt.Sprintf("Hi %s,\n\nAttached is the performance export covering %d users.\n", admin.FullName, len(users))
	if err := s.mailer.SendWithAttachment(admin.Username, "User performance export", body, "user_performance.csv", buf.Bytes()); err != nil {
		return err
	}

	log.Info().Uint("adminID", adminID).Int("rows", len(users)).Msg("Admin user CSV exported and mailed")
	return nil
}
