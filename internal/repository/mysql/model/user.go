package model

import (
	"time"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
)

type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Username    string    `gorm:"type:varchar(45);not null;uniqueIndex"`
	DisplayName string    `gorm:"column:display_name;type:varchar(45);not null"`
	Email       string    `gorm:"type:varchar(100);not null"`
	Password    string    `gorm:"type:varchar(100);not null"`
	CreatedAt   time.Time `gorm:"type:datetime"`
	UpdatedAt   time.Time `gorm:"type:datetime"`
}

func (User) TableName() string {
	return "user"
}

func NewUserFromDomain(u *domain.User) *User {
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Password:    u.Password,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *User) ToDomain() domain.User {
	return domain.User{
		ID:          m.ID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Password:    m.Password,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
