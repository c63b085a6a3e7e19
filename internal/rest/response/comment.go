package response

import "github.com/Guyuepp/Go-Blog-Platform/domain"

type Comment struct {
	ID              int64  `json:"id"`
	BlogPostID      int64  `json:"blog_post_id"`
	ParentCommentID *int64 `json:"parent_comment_id,omitempty"`
	Text            string `json:"text"`
	CreatedAt       string `json:"created_at"`
	RepliesCount    int64  `json:"replies_count"`

	// Author 评论作者信息
	Author *User `json:"author,omitempty"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:              c.ID,
		BlogPostID:      c.BlogPostID,
		ParentCommentID: c.ParentCommentID,
		Text:            c.Text,
		CreatedAt:       c.CreatedAt.Format(DateTimeFormat),
		RepliesCount:    c.RepliesCount,
		Author:          NewUserFromDomain(&c.Author),
	}
}

// CommentPage is the wire shape of one comment listing page.
type CommentPage struct {
	Comments               []*Comment `json:"comments"`
	EndOfPaginationReached bool       `json:"end_of_pagination_reached"`
}

func NewCommentPageFromDomain(page domain.CommentPage) CommentPage {
	comments := make([]*Comment, 0, len(page.Comments))
	for _, c := range page.Comments {
		comments = append(comments, NewCommentFromDomain(c))
	}
	return CommentPage{
		Comments:               comments,
		EndOfPaginationReached: page.EndOfPaginationReached,
	}
}
