package admin

import (
	"net/http"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/middleware"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExportController struct {
	exportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{exportService: exportService}
}

// ExportUsersCSV godoc
// @Summary (Admin) Email a CSV of per-user quiz performance to the admin
// @Description The export runs in the background; the response only acknowledges the request.
// @Tags Admin - Exports
// @Produce json
// @Security BearerAuth
// @Success 202 {object} dto.MessageResponse
// @Router /admin/export/users-csv [post]
func (c *ExportController) ExportUsersCSV(ctx *gin.Context) {
	adminID := middleware.UserID(ctx)

	go func() {
		if err := c.exportService.ExportAdminUserCSV(adminID); err != nil {
			log.Error().Err(err).Uint("adminID", adminID).Msg("Background user CSV export failed")
		}
	}()

	ctx.JSON(http.StatusAccepted, dto.MessageResponse{Message: "Export started, you will receive it by email"})
}
