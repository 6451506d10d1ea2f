package service

import (
	"errors"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"textbook_backend/internal/apperr"
	"textbook_backend/internal/dto"
	"textbook_backend/internal/model"
	"textbook_backend/internal/repository"
)

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	Profile(userID uint) (*dto.ProfileResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
	tokens     TokenService
}

func NewAuthService(userRepo repository.UserRepository, resultRepo repository.ResultRepository, tokens TokenService) AuthService {
	return &authService{userRepo: userRepo, resultRepo: resultRepo, tokens: tokens}
}

// Register creates a user. Hashing happens here, as an explicit step in the
// registration path, not as a persistence side effect.
func (s *authService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apperr.New(apperr.Conflict, "User already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while registering user.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while registering user.")
	}

	now := time.Now()
	user := model.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Password:   string(hash),
		Role:       "student",
		LastLogin:  &now,
		LoginCount: 1,
		IsActive:   true,
	}
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.Conflict, err, "User already exists.")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while registering user.")
	}

	token, err := s.tokens.IssueUser(&user)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while registering user.")
	}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, &user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while registering user.")
	}
	log.Info().Uint("userID", user.ID).Str("email", user.Email).Msg("User registered")
	return &dto.AuthResponse{User: userDTO, Token: token}, nil
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Unauthorized, "Invalid credentials.")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while logging in.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials.")
	}

	now := time.Now()
	user.LastLogin = &now
	user.LoginCount++
	if err := s.userRepo.Update(user); err != nil {
		// Login still succeeds; the counters are best effort.
		log.Warn().Err(err).Uint("userID", user.ID).Msg("Failed to update login counters")
	}

	token, err := s.tokens.IssueUser(user)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while logging in.")
	}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while logging in.")
	}
	return &dto.AuthResponse{User: userDTO, Token: token}, nil
}

// Profile returns the user and their full submission history, newest first.
func (s *authService) Profile(userID uint) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found.")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user data.")
	}

	results, err := s.resultRepo.FindByUserIDWithTest(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user data.")
	}

	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user data.")
	}

	history := make([]dto.ResultHistoryDTO, 0, len(results))
	for _, r := range results {
		history = append(history, dto.ResultHistoryDTO{
			ID:             r.ID,
			Subject:        r.Test.Subject,
			Duration:       r.Test.Duration,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     r.Percentage,
			TimeTaken:      r.TimeTaken,
			SubmittedAt:    r.SubmittedAt,
		})
	}
	return &dto.ProfileResponse{User: userDTO, Results: history}, nil
}
