package models

import "strings"

const RoleOwner = "OWNER"

// User mirrors the backend user record.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

func (u User) IsOwner() bool {
	return strings.EqualFold(u.Role, RoleOwner)
}

// AuthResult is what the backend answers to login and signup. Older
// deployments call the bearer "token", newer ones "accessToken".
type AuthResult struct {
	AccessToken  string `json:"accessToken"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
}

func (r AuthResult) Bearer() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role,omitempty"`
}
