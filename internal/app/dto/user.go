package dto

import (
	"time"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/pkg/util"
)

type UserResponse struct {
	ID        uint           `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Role      model.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}

type AuthResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *util.TokenPair `json:"tokens"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func NewAuthResponse(u *model.User, tokens *util.TokenPair) AuthResponse {
	return AuthResponse{User: NewUserResponse(u), Tokens: tokens}
}
