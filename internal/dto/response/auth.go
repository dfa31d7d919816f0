package response

import (
	"time"

	"clinic-backend/internal/data/entity"
)

type AuthResponse struct {
	UserID      string          `json:"user_id"`
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Email       string          `json:"email"`
	FullName    string          `json:"full_name"`
	Role        entity.UserRole `json:"role"`
	IsVerified  bool            `json:"is_verified"`
}

type UserResponse struct {
	ID         string          `json:"id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Phone      *string         `json:"phone,omitempty"`
	Role       entity.UserRole `json:"role"`
	IsVerified bool            `json:"is_verified"`
	CreatedAt  time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		FullName:   user.FullName,
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
