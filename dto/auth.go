package dto

import (
	"time"

	"hotelbooking/models"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	City     string `json:"city"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Country   string    `json:"country"`
	City      string    `json:"city"`
	Img       string    `json:"img"`
	Role      int       `json:"role"`
	RoleName  string    `json:"roleName"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserLoginResponse struct {
	User         UserResponse `json:"user_info"`
	AccessToken  string       `json:"accessToken"`
	Capabilities []string     `json:"capabilities"`
}

func NewUserResponse(u *models.User, roleName string) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Country:   u.Country,
		City:      u.City,
		Img:       u.Img,
		Role:      u.Role,
		RoleName:  roleName,
		CreatedAt: u.CreatedAt,
	}
}
