package admin

import (
	"net/http"
	"time"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizService   service.QuizAdminService
	expiryService service.ExpiryService
}

func NewQuizController(quizService service.QuizAdminService, expiryService service.ExpiryService) *QuizController {
	return &QuizController{quizService: quizService, expiryService: expiryService}
}

// CreateQuiz godoc
// @Summary (Admin) Create a quiz under a chapter
// @Description Scheduled quizzes need a start time and optionally an end time with a grace period. Anytime quizzes ignore the schedule entirely.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body dto.QuizCreateDTO true "Quiz data"
// @Success 201 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule or input"
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.QuizCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuiz: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.quizService.CreateQuiz(req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to create quiz")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetQuizzes godoc
// @Summary (Admin) List quizzes of a chapter with derived status
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 200 {array} dto.QuizResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id}/quizzes [get]
func (c *QuizController) GetQuizzes(ctx *gin.Context) {
	chapterID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.quizService.GetQuizzesByChapter(chapterID, time.Now())
	if err != nil {
		respondServiceError(ctx, err, "Failed to list quizzes")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuiz godoc
// @Summary (Admin) Update a quiz
// @Description Reactivating an expired quiz requires extending its end time first, otherwise the next sweep locks it again.
// @Tags Admin - Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param quiz body dto.QuizUpdateDTO true "Fields to update"
// @Success 200 {object} dto.QuizResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.QuizUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.quizService.UpdateQuiz(id, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to update quiz")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuiz godoc
// @Summary (Admin) Delete a quiz
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.quizService.DeleteQuiz(id); err != nil {
		respondServiceError(ctx, err, "Failed to delete quiz")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Quiz deleted"})
}

// ExpireQuiz godoc
// @Summary (Admin) Expire a single quiz immediately if it is past its boundary
// @Description Runs the same conditional lock as the background sweep against one quiz.
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.ExpireQuizResultDTO
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{id}/expire [post]
func (c *QuizController) ExpireQuiz(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.expiryService.ExpireQuiz(id, time.Now())
	if err != nil {
		respondServiceError(ctx, err, "Failed to expire quiz")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SweepExpired godoc
// @Summary (Admin) Run an expiry sweep now
// @Description Triggers the same scan the scheduler runs every few minutes and returns what it locked.
// @Tags Admin - Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SweepSummary
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/quizzes/sweep [post]
func (c *QuizController) SweepExpired(ctx *gin.Context) {
	summary, err := c.expiryService.SweepExpired(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Admin SweepExpired: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to run expiry sweep", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
