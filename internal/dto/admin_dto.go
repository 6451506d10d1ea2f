package dto

import "time"

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type AdminDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminAuthResponse struct {
	Admin AdminDTO `json:"admin"`
	Token string   `json:"token"`
}

// UserWithStatsDTO combines a user row with their aggregated test results.
type UserWithStatsDTO struct {
	UserID       uint       `json:"userId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	LoginCount   int        `json:"loginCount"`
	TestCount    int        `json:"testCount"`
	AverageScore float64    `json:"averageScore"`
	LastTestDate *time.Time `json:"lastTestDate,omitempty"`
}

type UserListResponse struct {
	TotalUsers int                `json:"totalUsers"`
	Users      []UserWithStatsDTO `json:"users"`
}

// RecentTestDTO is one row of the dashboard's recent submissions feed.
type RecentTestDTO struct {
	ID             uint      `json:"id"`
	User           string    `json:"user"`
	Email          string    `json:"email"`
	Subject        string    `json:"subject"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

type UserStatsResponse struct {
	TotalUsers      int64              `json:"totalUsers"`
	ActiveUsers     int64              `json:"activeUsers"`
	TotalTestsTaken int64              `json:"totalTestsTaken"`
	UserStats       []UserWithStatsDTO `json:"userStats"`
	RecentTests     []RecentTestDTO    `json:"recentTests"`
}

type UserTestHistoryResponse struct {
	UserID     uint               `json:"userId"`
	UserName   string             `json:"userName"`
	UserEmail  string             `json:"userEmail"`
	TotalTests int                `json:"totalTests"`
	Tests      []ResultHistoryDTO `json:"tests"`
}
