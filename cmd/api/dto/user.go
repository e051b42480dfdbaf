package dto

import "product-compare/models"

type RegisterRequestDTO struct {
	Name     string `json:"name" example:"Kim"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"secret"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"secret"`
}

// UserDTO는 클라이언트에 노출되는 사용자 정보다. 비밀번호 해시는 포함하지 않는다.
type UserDTO struct {
	ID    string `json:"id" example:"65f000000000000000000001"`
	Name  string `json:"name" example:"Kim"`
	Email string `json:"email" example:"user@example.com"`
}

// AuthResponseDTO는 가입/로그인 응답이다.
type AuthResponseDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

type ProfileResponseDTO struct {
	User UserDTO `json:"user"`
}

type DeleteUserResponseDTO struct {
	Message          string `json:"message" example:"User Deleted"`
	DeletedSummaries int64  `json:"deletedSummaries" example:"3"`
}

func FromUser(u *models.User) UserDTO {
	return UserDTO{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
	}
}
