package admin

import (
	"net/http"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ChapterController struct {
	chapterService service.ChapterService
}

func NewChapterController(chapterService service.ChapterService) *ChapterController {
	return &ChapterController{chapterService: chapterService}
}

// CreateChapter godoc
// @Summary (Admin) Create a chapter under a subject
// @Tags Admin - Chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param chapter body dto.ChapterCreateDTO true "Chapter data"
// @Success 201 {object} dto.ChapterResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate name within subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/chapters [post]
func (c *ChapterController) CreateChapter(ctx *gin.Context) {
	var req dto.ChapterCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateChapter: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.chapterService.CreateChapter(req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to create chapter")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetChapters godoc
// @Summary (Admin) List chapters of a subject
// @Tags Admin - Chapters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subject ID"
// @Success 200 {array} dto.ChapterResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/subjects/{id}/chapters [get]
func (c *ChapterController) GetChapters(ctx *gin.Context) {
	subjectID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.chapterService.GetChaptersBySubject(subjectID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to list chapters")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateChapter godoc
// @Summary (Admin) Update a chapter
// @Tags Admin - Chapters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Param chapter body dto.ChapterUpdateDTO true "Fields to update"
// @Success 200 {object} dto.ChapterResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id} [put]
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ChapterUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.chapterService.UpdateChapter(id, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to update chapter")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteChapter godoc
// @Summary (Admin) Delete a chapter
// @Tags Admin - Chapters
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chapter ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/chapters/{id} [delete]
func (c *ChapterController) DeleteChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.chapterService.DeleteChapter(id); err != nil {
		respondServiceError(ctx, err, "Failed to delete chapter")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Chapter deleted"})
}
