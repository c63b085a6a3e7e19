package response

import "github.com/Guyuepp/Go-Blog-Platform/domain"

const DateTimeFormat = "2006-01-02 15:04:05"

// User carries the public author fields only; email and password never leave
// the server.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func NewUserFromDomain(u *domain.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}

// PrivateUser is the authenticated user's own view, email included.
type PrivateUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	CreatedAt   string `json:"created_at"`
}

func NewPrivateUserFromDomain(u *domain.User) *PrivateUser {
	if u == nil {
		return nil
	}
	return &PrivateUser{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt.Format(DateTimeFormat),
	}
}
