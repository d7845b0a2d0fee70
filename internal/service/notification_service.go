package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/21f1006580/quiz-master/internal/mailer"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/21f1006580/quiz-master/internal/schedule"
	"github.com/rs/zerolog/log"
)

// NotificationService sends the scheduled emails: expiry warnings shortly
// before a quiz locks, daily reminders about open quizzes, and the monthly
// activity report. Each method is invoked by a cron job with the tick time.
type NotificationService interface {
	SendExpiryWarnings(now time.Time) (int, error)
	SendDailyReminders(now time.Time) (int, error)
	SendMonthlyReports(now time.Time) (int, error)
}

type notificationService struct {
	userRepo  repository.UserRepository
	quizRepo  repository.QuizRepository
	scoreRepo repository.ScoreRepository
	mailer    mailer.Mailer
}

func NewNotificationService(
	userRepo repository.UserRepository,
	quizRepo repository.QuizRepository,
	scoreRepo repository.ScoreRepository,
	mailer mailer.Mailer,
) NotificationService {
	return &notificationService{
		userRepo:  userRepo,
		quizRepo:  quizRepo,
		scoreRepo: scoreRepo,
		mailer:    mailer,
	}
}

// SendExpiryWarnings mails every user who has not yet attempted a quiz whose
// effective end falls inside the warning window. Returns the number of emails
// sent; individual send failures are logged and skipped so one bad address
// does not starve the rest.
func (s *notificationService) SendExpiryWarnings(now time.Time) (int, error) {
	current := schedule.Normalize(now)

	quizzes, err := s.quizRepo.FindEndingSoon(current, schedule.EndingSoonWindow)
	if err != nil {
		return 0, fmt.Errorf("finding quizzes ending soon: %w", err)
	}
	if len(quizzes) == 0 {
		return 0, nil
	}

	users, err := s.userRepo.FindAllNonAdmin()
	if err != nil {
		return 0, fmt.Errorf("listing users for expiry warnings: %w", err)
	}

	sent := 0
	for i := range users {
		attempted, err := s.scoreRepo.QuizIDsAttemptedBy(users[i].ID)
		if err != nil {
			log.Error().Err(err).Uint("userID", users[i].ID).Msg("Failed to load attempts for expiry warning")
			continue
		}

		var pending []model.Quiz
		for j := range quizzes {
			if !attempted[quizzes[j].ID] {
				pending = append(pending, quizzes[j])
			}
		}
		if len(pending) == 0 {
			continue
		}

		body := expiryWarningBody(&users[i], pending, current)
		if err := s.mailer.SendHTML(users[i].Username, "Quizzes closing soon", body); err != nil {
			log.Error().Err(err).Uint("userID", users[i].ID).Msg("Failed to send expiry warning")
			continue
		}
		sent++
	}

	log.Info().Int("quizzes", len(quizzes)).Int("emailsSent", sent).Msg("Expiry warning run complete")
	return sent, nil
}

// SendDailyReminders nudges users who still have attemptable quizzes, calling
// out quizzes created in the last week as new.
func (s *notificationService) SendDailyReminders(now time.Time) (int, error) {
	current := schedule.Normalize(now)

	open, err := s.quizRepo.FindAttemptable(current)
	if err != nil {
		return 0, fmt.Errorf("finding attemptable quizzes: %w", err)
	}
	if len(open) == 0 {
		return 0, nil
	}

	recent, err := s.quizRepo.FindCreatedSince(current.AddDate(0, 0, -7))
	if err != nil {
		return 0, fmt.Errorf("finding recent quizzes: %w", err)
	}
	isRecent := make(map[uint]bool, len(recent))
	for i := range recent {
		isRecent[recent[i].ID] = true
	}

	users, err := s.userRepo.FindAllNonAdmin()
	if err != nil {
		return 0, fmt.Errorf("listing users for reminders: %w", err)
	}

	sent := 0
	for i := range users {
		attempted, err := s.scoreRepo.QuizIDsAttemptedBy(users[i].ID)
		if err != nil {
			log.Error().Err(err).Uint("userID", users[i].ID).Msg("Failed to load attempts for reminder")
			continue
		}

		var pending, fresh []model.Quiz
		for j := range open {
			quiz := open[j]
			if attempted[quiz.ID] {
				continue
			}
			if !quiz.IsAnytimeQuiz && schedule.IsExpired(&quiz, current) {
				continue
			}
			pending = append(pending, quiz)
			if isRecent[quiz.ID] {
				fresh = append(fresh, quiz)
			}
		}
		if len(pending) == 0 {
			continue
		}

		body := dailyReminderBody(&users[i], pending, fresh)
		if err := s.mailer.SendHTML(users[i].Username, "You have quizzes waiting", body); err != nil {
			log.Error().Err(err).Uint("userID", users[i].ID).Msg("Failed to send daily reminder")
			continue
		}
		sent++
	}

	log.Info().Int("openQuizzes", len(open)).Int("emailsSent", sent).Msg("Daily reminder run complete")
	return sent, nil
}

// SendMonthlyReports mails each user an HTML summary of the previous calendar
// month's attempts. Users with no activity that month are skipped.
func (s *notificationService) SendMonthlyReports(now time.Time) (int, error) {
	current := schedule.Normalize(now)
	monthStart := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)

	users, err := s.userRepo.FindAllNonAdmin()
	if err != nil {
		return 0, fmt.Errorf("listing users for monthly reports: %w", err)
	}

	sent := 0
	for i := range users {
		scores, err := s.scoreRepo.FindByUserBetween(users[i].ID, prevStart, monthStart)
		if err != nil {
			log.Error().Err(err).Uint("userID", users[i].ID).Msg("Failed to load scores for monthly report")
			continue
		}
		if len(scores) == 0 {
			continue
		}

		body := monthlyReportBody(&users[i], scores, prevStart)
		subject := fmt.Sprintf("Your quiz activity for %s", prevStart.Format("January 2006"))
		if err := s.mailer.SendHTML(users[i].Username, subject, body); err != nil {
			log.Error().Err(err).Uint("userID", users[i].ID).Msg("Failed to send monthly report")
			continue
		}
		sent++
	}

	log.Info().Str("month", prevStart.Format("2006-01")).Int("emailsSent", sent).Msg("Monthly report run complete")
	return sent, nil
}

func expiryWarningBody(user *model.User, quizzes []model.Quiz, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", user.FullName)
	b.WriteString("<p>The following quizzes close soon and you have not attempted them yet:</p><ul>")
	for i := range quizzes {
		end := schedule.EffectiveEnd(&quizzes[i])
		if end == nil {
			continue
		}
		remaining := end.Sub(now).Round(time.Minute)
		fmt.Fprintf(&b, "<li><strong>%s</strong> closes at %s (%s left)</li>",
			quizzes[i].Title, end.Format("15:04 MST, Jan 2"), remaining)
	}
	b.WriteString("</ul><p>Attempt them before they lock.</p>")
	return b.String()
}

func dailyReminderBody(user *model.User, pending, fresh []model.Quiz) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", user.FullName)
	fmt.Fprintf(&b, "<p>You have %d quizzes waiting for you.</p>", len(pending))
	if len(fresh) > 0 {
		b.WriteString("<p>New this week:</p><ul>")
		for i := range fresh {
			fmt.Fprintf(&b, "<li>%s</li>", fresh[i].Title)
		}
		b.WriteString("</ul>")
	}
	b.WriteString("<p>Log in to attempt them.</p>")
	return b.String()
}

func monthlyReportBody(user *model.User, scores []model.Score, month time.Time) string {
	var total float64
	best := 0.0
	for i := range scores {
		total += scores[i].TotalScore
		if scores[i].TotalScore > best {
			best = scores[i].TotalScore
		}
	}
	avg := total / float64(len(scores))

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", user.FullName)
	fmt.Fprintf(&b, "<p>Here is your quiz activity for %s:</p>", month.Format("January 2006"))
	fmt.Fprintf(&b, "<p>Attempts: %d &middot; Average score: %.1f%% &middot; Best score: %.1f%%</p>", len(scores), avg, best)
	b.WriteString("<table border=\"1\" cellpadding=\"4\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Quiz</th><th>Score</th><th>Correct</th><th>Attempted</th></tr>")
	for i := range scores {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%.1f%%</td><td>%d/%d</td><td>%s</td></tr>",
			scores[i].Quiz.Title, scores[i].TotalScore, scores[i].CorrectAnswers,
			scores[i].TotalQuestions, scores[i].AttemptedAt.Format("Jan 2, 15:04"))
	}
	b.WriteString("</table>")
	return b.String()
}
