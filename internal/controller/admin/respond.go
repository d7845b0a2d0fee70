package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/gin-gonic/gin"
)

func respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
	case errors.Is(err, service.ErrAlreadyExists):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
