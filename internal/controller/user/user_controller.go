package user

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/middleware"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	userQuizService   service.UserQuizService
	submissionService service.SubmissionService
	exportService     service.ExportService
}

func NewUserController(
	userQuizService service.UserQuizService,
	submissionService service.SubmissionService,
	exportService service.ExportService,
) *UserController {
	return &UserController{
		userQuizService:   userQuizService,
		submissionService: submissionService,
		exportService:     exportService,
	}
}

// GetDashboard godoc
// @Summary (User) List active subjects
// @Tags User - Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SubjectResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *UserController) GetDashboard(ctx *gin.Context) {
	resp, err := c.userQuizService.GetDashboard()
	if err != nil {
		log.Error().Err(err).Msg("User GetDashboard: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load dashboard", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetQuizzesBySubject godoc
// @Summary (User) List a subject's quizzes with their availability status
// @Tags User - Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {array} dto.QuizResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /subjects/{id}/quizzes [get]
func (c *UserController) GetQuizzesBySubject(ctx *gin.Context) {
	subjectID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.userQuizService.GetQuizzesBySubject(subjectID, time.Now())
	if err != nil {
		respondServiceError(ctx, err, "Failed to list quizzes")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetQuizForAttempt godoc
// @Summary (User) Open a quiz for an attempt
// @Description Succeeds only if the quiz is available to this user right now. Correct options are withheld.
// @Tags User - Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Quiz not available (inactive, not started, expired, or already attempted)"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{id} [get]
func (c *UserController) GetQuizForAttempt(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.UserID(ctx)

	resp, err := c.userQuizService.GetQuizForAttempt(quizID, userID, time.Now())
	if err != nil {
		respondServiceError(ctx, err, "Failed to open quiz")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitQuiz godoc
// @Summary (User) Submit answers for a quiz
// @Description Eligibility is re-checked at submission time, so an attempt on a quiz that expired mid-way is rejected.
// @Tags User - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param submission body dto.QuizSubmitDTO true "Selected answers"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Quiz not available"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{id}/submit [post]
func (c *UserController) SubmitQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.UserID(ctx)

	var req dto.QuizSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.submissionService.SubmitQuiz(quizID, userID, req, time.Now())
	if err != nil {
		respondServiceError(ctx, err, "Failed to submit quiz")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetScores godoc
// @Summary (User) List the authenticated user's scores
// @Tags User - Scores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ScoreResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scores [get]
func (c *UserController) GetScores(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	resp, err := c.submissionService.GetUserScores(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("User GetScores: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load scores", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetScoreSummary godoc
// @Summary (User) Aggregate score statistics for the authenticated user
// @Tags User - Scores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ScoreSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scores/summary [get]
func (c *UserController) GetScoreSummary(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	resp, err := c.submissionService.GetScoreSummary(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("User GetScoreSummary: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load score summary", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExportScoresCSV godoc
// @Summary (User) Email a CSV of the user's scores to their address
// @Description The export runs in the background; the response only acknowledges the request.
// @Tags User - Scores
// @Produce json
// @Security BearerAuth
// @Success 202 {object} dto.MessageResponse
// @Router /export/scores-csv [post]
func (c *UserController) ExportScoresCSV(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	go func() {
		if err := c.exportService.ExportUserScoresCSV(userID); err != nil {
			log.Error().Err(err).Uint("userID", userID).Msg("Background score CSV export failed")
		}
	}()

	ctx.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Export started, you will receive it by email"})
}

func respondServiceError(ctx *gin.Context, err error, fallback string) {
	if avErr, ok := service.IsAvailabilityError(err); ok {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: avErr.Reason})
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
