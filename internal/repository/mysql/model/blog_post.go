package model

import (
	"time"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
)

type BlogPost struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Slug      string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Title     string    `gorm:"type:varchar(100);not null"`
	Summary   string    `gorm:"type:varchar(300);not null"`
	Body      string    `gorm:"type:longtext;not null"`
	AuthorID  int64     `gorm:"column:author_id;not null;index"`
	UpdatedAt time.Time `gorm:"type:datetime"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (BlogPost) TableName() string {
	return "blog_post"
}

func NewBlogPostFromDomain(p *domain.BlogPost) *BlogPost {
	return &BlogPost{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Summary:   p.Summary,
		Body:      p.Body,
		AuthorID:  p.Author.ID,
		UpdatedAt: p.UpdatedAt,
		CreatedAt: p.CreatedAt,
	}
}

func (m *BlogPost) ToDomain() domain.BlogPost {
	return domain.BlogPost{
		ID:        m.ID,
		Slug:      m.Slug,
		Title:     m.Title,
		Summary:   m.Summary,
		Body:      m.Body,
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
		Author: domain.User{
			ID: m.AuthorID,
		},
	}
}
