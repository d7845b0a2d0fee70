package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/21f1006580/quiz-master/config"
	"github.com/21f1006580/quiz-master/internal/dto"
	"github.com/21f1006580/quiz-master/internal/model"
	"github.com/21f1006580/quiz-master/internal/repository"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(req dto.RegisterDTO) (*dto.AuthResponseDTO, error)
	Login(req dto.LoginDTO, requireAdmin bool) (*dto.AuthResponseDTO, error)
	Profile(userID uint) (*dto.UserDTO, error)
	ChangePassword(userID uint, req dto.ChangePasswordDTO) error
	EnsureAdminUser() error
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Register(req dto.RegisterDTO) (*dto.AuthResponseDTO, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, fmt.Errorf("user %q: %w", username, ErrAlreadyExists)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Username:      username,
		PasswordHash:  string(hash),
		FullName:      req.FullName,
		Qualification: req.Qualification,
		DateOfBirth:   req.DateOfBirth,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to create user")
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.buildAuthResponse(&user, "Registration successful")
}

func (s *authService) Login(req dto.LoginDTO, requireAdmin bool) (*dto.AuthResponseDTO, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if requireAdmin && !user.IsAdmin {
		return nil, ErrInvalidCredentials
	}

	message := "Login successful"
	if requireAdmin {
		message = "Admin login successful"
	}
	return s.buildAuthResponse(user, message)
}

func (s *authService) Profile(userID uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFoundf("user %d", userID)
	}
	var out dto.UserDTO
	if err := copier.Copy(&out, user); err != nil {
		return nil, fmt.Errorf("preparing profile response: %w", err)
	}
	return &out, nil
}

func (s *authService) ChangePassword(userID uint, req dto.ChangePasswordDTO) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return notFoundf("user %d", userID)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing new password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to update password")
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// EnsureAdminUser creates the bootstrap administrator account on first run.
func (s *authService) EnsureAdminUser() error {
	const adminUsername = "admin@quizmaster.local"

	if _, err := s.userRepo.FindByUsername(adminUsername); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	// Default bootstrap credentials; operators change these on first login.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := model.User{
		Username:     adminUsername,
		PasswordHash: string(hash),
		FullName:     "Quiz Master Admin",
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(&admin); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	log.Info().Str("username", adminUsername).Msg("Bootstrap admin user created")
	return nil
}

func (s *authService) buildAuthResponse(user *model.User, message string) (*dto.AuthResponseDTO, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, fmt.Errorf("preparing auth response: %w", err)
	}

	return &dto.AuthResponseDTO{
		Message:     message,
		AccessToken: token,
		User:        userDTO,
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":       user.Username,
		"user_id":   user.ID,
		"is_admin":  user.IsAdmin,
		"full_name": user.FullName,
		"iat":       now.Unix(),
		"exp":       now.Add(time.Duration(s.cfg.JWT.ExpiryHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
