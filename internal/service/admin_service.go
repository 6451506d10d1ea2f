package service

import (
	"errors"
	"math"
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

const activeUserWindow = 30 * 24 * time.Hour

type AdminService interface {
	Login(req dto.AdminLoginRequest) (*dto.AdminAuthResponse, error)
	CreateAdmin(req dto.AdminCreateRequest) (*dto.AdminDTO, error)
	ListAdmins() ([]dto.AdminDTO, error)
	DeleteAdmin(id uint) error

	ListUsers() (*dto.UserListResponse, error)
	UserStats() (*dto.UserStatsResponse, error)
	UserTestHistory(userID uint) (*dto.UserTestHistoryResponse, error)
	DeactivateUser(userID uint) error
}

type adminService struct {
	adminRepo  repository.AdminRepository
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
	tokens     TokenService
}

func NewAdminService(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	resultRepo repository.ResultRepository,
	tokens TokenService,
) AdminService {
	return &adminService{
		adminRepo:  adminRepo,
		userRepo:   userRepo,
		resultRepo: resultRepo,
		tokens:     tokens,
	}
}

func (s *adminService) Login(req dto.AdminLoginRequest) (*dto.AdminAuthResponse, error) {
	admin, err := s.adminRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.Unauthorized, "Invalid credentials.")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while logging in.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid credentials.")
	}

	token, err := s.tokens.IssueAdmin(admin)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while logging in.")
	}

	var adminDTO dto.AdminDTO
	if err := copier.Copy(&adminDTO, admin); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while logging in.")
	}
	return &dto.AdminAuthResponse{Admin: adminDTO, Token: token}, nil
}

func (s *adminService) CreateAdmin(req dto.AdminCreateRequest) (*dto.AdminDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.adminRepo.FindByEmail(email); err == nil {
		return nil, apperr.New(apperr.Conflict, "Admin with this email already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while creating admin.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while creating admin.")
	}

	admin := model.Admin{Email: email, Password: string(hash)}
	if err := s.adminRepo.Create(&admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.Conflict, err, "Admin with this email already exists.")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while creating admin.")
	}

	var adminDTO dto.AdminDTO
	if err := copier.Copy(&adminDTO, &admin); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while creating admin.")
	}
	log.Info().Uint("adminID", admin.ID).Str("email", admin.Email).Msg("Admin created")
	return &adminDTO, nil
}

func (s *adminService) ListAdmins() ([]dto.AdminDTO, error) {
	admins, err := s.adminRepo.FindAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching admins.")
	}
	out := make([]dto.AdminDTO, 0, len(admins))
	for _, a := range admins {
		var d dto.AdminDTO
		if err := copier.Copy(&d, &a); err != nil {
			return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching admins.")
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *adminService) DeleteAdmin(id uint) error {
	if _, err := s.adminRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Admin not found.")
		}
		return apperr.Wrap(apperr.Internal, err, "Server error while deleting admin.")
	}
	if err := s.adminRepo.Delete(id); err != nil {
		return apperr.Wrap(apperr.Internal, err, "Server error while deleting admin.")
	}
	return nil
}

// ListUsers returns all active users joined with their test aggregates.
// Users who never submitted a test appear with zero counts.
func (s *adminService) ListUsers() (*dto.UserListResponse, error) {
	users, err := s.userRepo.FindAllActive()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching users.")
	}
	statsMap, err := s.resultStatsMap()
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserWithStatsDTO, 0, len(users))
	for _, u := range users {
		out = append(out, mergeUserStats(u, statsMap))
	}
	return &dto.UserListResponse{TotalUsers: len(out), Users: out}, nil
}

// UserStats builds the admin dashboard aggregate: user totals, 30-day
// actives, per-user results, and the 10 most recent submissions.
func (s *adminService) UserStats() (*dto.UserStatsResponse, error) {
	totalUsers, err := s.userRepo.CountActive()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user statistics.")
	}
	activeUsers, err := s.userRepo.CountActiveSince(time.Now().Add(-activeUserWindow))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user statistics.")
	}
	totalTests, err := s.resultRepo.CountAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user statistics.")
	}

	users, err := s.userRepo.FindAllActive()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user statistics.")
	}
	statsMap, err := s.resultStatsMap()
	if err != nil {
		return nil, err
	}
	userStats := make([]dto.UserWithStatsDTO, 0, len(users))
	for _, u := range users {
		userStats = append(userStats, mergeUserStats(u, statsMap))
	}

	recent, err := s.resultRepo.Recent(10)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user statistics.")
	}
	recentDTOs := make([]dto.RecentTestDTO, 0, len(recent))
	for _, r := range recent {
		recentDTOs = append(recentDTOs, dto.RecentTestDTO{
			ID:             r.ID,
			User:           r.User.Name,
			Email:          r.User.Email,
			Subject:        r.Test.Subject,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Percentage:     r.Percentage,
			SubmittedAt:    r.SubmittedAt,
		})
	}

	return &dto.UserStatsResponse{
		TotalUsers:      totalUsers,
		ActiveUsers:     activeUsers,
		TotalTestsTaken: totalTests,
		UserStats:       userStats,
		RecentTests:     recentDTOs,
	}, nil
}

func (s *adminService) UserTestHistory(userID uint) (*dto.UserTestHistoryResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user test history")
	}

	results, err := s.resultRepo.FindByUserIDWithTest(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user test history")
	}

	tests := make([]dto.ResultHistoryDTO, 0, len(results))
	for _, r := range results {
		tests = append(tests, dto.ResultHistoryDTO{
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

	return &dto.UserTestHistoryResponse{
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		TotalTests: len(tests),
		Tests:      tests,
	}, nil
}

func (s *adminService) DeactivateUser(userID uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return apperr.Wrap(apperr.Internal, err, "Server error while deactivating user")
	}
	if err := s.userRepo.Deactivate(userID); err != nil {
		return apperr.Wrap(apperr.Internal, err, "Server error while deactivating user")
	}
	log.Info().Uint("userID", userID).Msg("User deactivated")
	return nil
}

func (s *adminService) resultStatsMap() (map[uint]repository.UserResultStat, error) {
	stats, err := s.resultRepo.StatsByUser()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Server error while fetching user statistics.")
	}
	m := make(map[uint]repository.UserResultStat, len(stats))
	for _, st := range stats {
		m[st.UserID] = st
	}
	return m, nil
}

func mergeUserStats(u model.User, stats map[uint]repository.UserResultStat) dto.UserWithStatsDTO {
	d := dto.UserWithStatsDTO{
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
		LoginCount: u.LoginCount,
	}
	if st, ok := stats[u.ID]; ok {
		d.TestCount = st.TestCount
		d.AverageScore = math.Round(st.AverageScore*100) / 100
		d.LastTestDate = st.LastTestDate
	}
	return d
}
