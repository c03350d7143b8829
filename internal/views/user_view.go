package views

import "github.com/sliceline/pizzeria/pkg/models"

// SignUpRequest is the payload for POST /user/signup.
type SignUpRequest struct {
	Username  string `json:"username" binding:"required,max=25"`
	Email     string `json:"email" binding:"required,email,max=100"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Password  string `json:"password" binding:"required"`
	IsStaff   bool   `json:"is_staff"`
	IsActive  bool   `json:"is_active"`
}

// LoginRequest is the payload for POST /user/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest is the payload for PUT /user/. All profile fields are
// overwritten; the password is not touched here.
type UpdateUserRequest struct {
	Username  string `json:"username" binding:"required,max=25"`
	Email     string `json:"email" binding:"required,email,max=100"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

// UserView is the public shape of a user. The password hash never leaves the
// models layer.
type UserView struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
	IsActive  bool   `json:"is_active"`
}

func NewUserView(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
		IsActive:  u.IsActive,
	}
}

// TokenResponse is the body of POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// SignUpResponse is the body of POST /user/signup.
type SignUpResponse struct {
	Message string   `json:"message"`
	User    UserView `json:"user"`
}

// LoginResponse is the body of POST /user/login.
type LoginResponse struct {
	Status string   `json:"status"`
	User   UserView `json:"user"`
	Token  string   `json:"token"`
}

// ProfileResponse is the body of GET /user/me. Orders are omitted entirely
// when the user has none.
type ProfileResponse struct {
	Status string      `json:"status"`
	User   UserView    `json:"user"`
	Orders []OrderView `json:"orders,omitempty"`
}

// UpdateUserResponse is the body of PUT /user/.
type UpdateUserResponse struct {
	Status string   `json:"status"`
	User   UserView `json:"user"`
}
