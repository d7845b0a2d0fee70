package admin

import (
	"net/http"
	"strconv"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type SubjectController struct {
	subjectService service.SubjectService
}

func NewSubjectController(subjectService service.SubjectService) *SubjectController {
	return &SubjectController{subjectService: subjectService}
}

// CreateSubject godoc
// @Summary (Admin) Create a subject
// @Tags Admin - Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subject body dto.SubjectCreateDTO true "Subject data"
// @Success 201 {object} dto.SubjectResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate name"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req dto.SubjectCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateSubject: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.subjectService.CreateSubject(req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to create subject")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetSubjects godoc
// @Summary (Admin) List subjects with pagination and search
// @Tags Admin - Subjects
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Items per page (default 10)"
// @Param search query string false "Filter by name"
// @Success 200 {object} dto.SubjectPageDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/subjects [get]
func (c *SubjectController) GetSubjects(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("per_page", "10"))
	search := ctx.Query("search")

	resp, err := c.subjectService.GetSubjects(page, perPage, search)
	if err != nil {
		respondServiceError(ctx, err, "Failed to list subjects")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateSubject godoc
// @Summary (Admin) Update a subject
// @Tags Admin - Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Param subject body dto.SubjectUpdateDTO true "Fields to update"
// @Success 200 {object} dto.SubjectResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SubjectUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.subjectService.UpdateSubject(id, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to update subject")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteSubject godoc
// @Summary (Admin) Delete a subject
// @Tags Admin - Subjects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.subjectService.DeleteSubject(id); err != nil {
		respondServiceError(ctx, err, "Failed to delete subject")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Subject deleted"})
}
