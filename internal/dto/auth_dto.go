package dto

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the public view of a user. There is deliberately no password
// field so the hash can never leak through serialization.
type UserDTO struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	LoginCount int        `json:"login_count"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// ResultHistoryDTO is one entry of a user's submission history.
type ResultHistoryDTO struct {
	ID             uint      `json:"id"`
	Subject        string    `json:"subject"`
	Duration       int       `json:"duration"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	TimeTaken      int       `json:"time_taken"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

type ProfileResponse struct {
	User    UserDTO            `json:"user"`
	Results []ResultHistoryDTO `json:"results"`
}
