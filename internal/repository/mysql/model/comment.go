package model

import (
	"time"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
)

type Comment struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	BlogPostID      int64     `gorm:"column:blog_post_id;not null;index"`
	AuthorID        int64     `gorm:"column:author_id;not null"`
	ParentCommentID *int64    `gorm:"column:parent_comment_id;index"`
	Text            string    `gorm:"type:varchar(600);not null"`
	CreatedAt       time.Time `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:              c.ID,
		BlogPostID:      c.BlogPostID,
		AuthorID:        c.Author.ID,
		ParentCommentID: c.ParentCommentID,
		Text:            c.Text,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:              m.ID,
		BlogPostID:      m.BlogPostID,
		ParentCommentID: m.ParentCommentID,
		Text:            m.Text,
		CreatedAt:       m.CreatedAt,
		Author: domain.User{
			ID: m.AuthorID,
		},
	}
}
