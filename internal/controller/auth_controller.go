package controller

import (
	"errors"
	"net/http"

	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/middleware"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new user account
// @Description Creates a quiz-taker account and returns a signed access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterDTO true "Registration data"
// @Success 201 {object} dto.AuthResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or username already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Register: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Username is already registered"})
			return
		}
		log.Error().Err(err).Msg("Register: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to register", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in as a quiz taker
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Login credentials"
// @Success 200 {object} dto.AuthResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	c.login(ctx, false)
}

// AdminLogin godoc
// @Summary Log in as the administrator
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Admin credentials"
// @Success 200 {object} dto.AuthResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials or not an admin"
// @Router /auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	c.login(ctx, true)
}

func (c *AuthController) login(ctx *gin.Context, requireAdmin bool) {
	var req dto.LoginDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.Login(req, requireAdmin)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid username or password"})
			return
		}
		log.Error().Err(err).Msg("Login: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to log in", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Profile godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	profile, err := c.authService.Profile(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "User not found"})
			return
		}
		log.Error().Err(err).Uint("userID", userID).Msg("Profile: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load profile", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// ChangePassword godoc
// @Summary Change the authenticated user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body dto.ChangePasswordDTO true "Old and new passwords"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Old password incorrect"
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	userID := middleware.UserID(ctx)

	var req dto.ChangePasswordDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.authService.ChangePassword(userID, req); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Old password is incorrect"})
			return
		}
		log.Error().Err(err).Uint("userID", userID).Msg("ChangePassword: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to change password", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}
