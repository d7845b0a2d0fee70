package admin

import (
	"net/http"
	"time"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateQuestion godoc
// @Summary (Admin) Add a question to a quiz
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestion: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.CreateQuestion(req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to create question")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetQuestions godoc
// @Summary (Admin) List a quiz's questions including correct options
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/quizzes/{id}/questions [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	quiz, questions, err := c.questionService.GetQuestionsByQuiz(quizID, time.Now())
	if err != nil {
		respondServiceError(ctx, err, "Failed to list questions")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"quiz": quiz, "questions": questions})
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Fields to update"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Correct option out of range"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.QuestionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.UpdateQuestion(id, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to update question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.questionService.DeleteQuestion(id); err != nil {
		respondServiceError(ctx, err, "Failed to delete question")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted"})
}
