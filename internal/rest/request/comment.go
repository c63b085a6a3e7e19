package request

import "github.com/Guyuepp/Go-Blog-Platform/domain"

type CreateComment struct {
	Text            string `json:"text" binding:"required,max=600"`
	ParentCommentID *int64 `json:"parent_comment_id"`
}

// ToDomain: Request -> Domain
func (r *CreateComment) ToDomain(blogPostID int64, authorID int64) domain.Comment {
	return domain.Comment{
		BlogPostID:      blogPostID,
		ParentCommentID: r.ParentCommentID,
		Text:            r.Text,
		Author: domain.User{
			ID: authorID,
		},
	}
}

type UpdateComment struct {
	NewText string `json:"new_text" binding:"required,max=600"`
}
