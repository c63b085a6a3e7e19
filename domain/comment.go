package domain

import (
	"context"
	"time"
)

const (
	// TopLevelCommentPageSize is the page size for top-level comment listings.
	TopLevelCommentPageSize = 3
	// ReplyPageSize is the page size for reply listings.
	ReplyPageSize = 2
	// CommentTextMaxLen is enforced by the request validation layer.
	CommentTextMaxLen = 600
)

// Comment is a single comment on a blog post. A nil ParentCommentID marks a
// top-level comment, otherwise the comment is a reply to another comment.
// The auto-increment ID is the only ordering axis; pagination cursors are
// comment IDs.
type Comment struct {
	ID              int64     `json:"id"`
	BlogPostID      int64     `json:"blog_post_id"`
	ParentCommentID *int64    `json:"parent_comment_id,omitempty"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"created_at"`

	// Author 评论作者信息
	Author User `json:"author"`
	// RepliesCount 一级评论的直接回复数，回复本身恒为 0
	RepliesCount int64 `json:"replies_count"`
}

// IsTopLevel reports whether the comment is attached directly to a post.
func (c *Comment) IsTopLevel() bool {
	return c.ParentCommentID == nil
}

// CommentPage is one page of a cursor-paginated comment listing.
type CommentPage struct {
	Comments []*Comment
	// EndOfPaginationReached is true when no comment exists beyond this page.
	EndOfPaginationReached bool
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	// FetchForPost returns one page of top-level comments for a post, newest
	// first, each annotated with its direct reply count.
	// continueAfterID == 0 means the first page.
	FetchForPost(ctx context.Context, postID int64, continueAfterID int64) (CommentPage, error)

	// FetchReplies returns one page of replies to a comment, oldest first.
	FetchReplies(ctx context.Context, commentID int64, continueAfterID int64) (CommentPage, error)

	// Create stores a new comment authored by c.Author.ID. A non-nil
	// ParentCommentID must reference an existing top-level comment on the
	// same post.
	Create(ctx context.Context, c *Comment) error

	// UpdateText replaces the text of a comment. Only the original author
	// may do so; anyone else gets ErrForbidden.
	UpdateText(ctx context.Context, commentID int64, requesterID int64, newText string) (*Comment, error)

	// Delete removes a comment and, for a top-level comment, all of its
	// direct replies. Only the original author may delete.
	Delete(ctx context.Context, commentID int64, requesterID int64) error
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	// FetchTopLevel 获取一级评论, id DESC, id < continueAfterID (0 = no cursor)
	FetchTopLevel(ctx context.Context, postID int64, continueAfterID int64, limit int64) ([]*Comment, error)
	// FetchReplies 获取子回复, id ASC, id > continueAfterID (0 = no cursor)
	FetchReplies(ctx context.Context, parentID int64, continueAfterID int64, limit int64) ([]*Comment, error)
	// CountByParent returns the number of direct replies to a comment.
	CountByParent(ctx context.Context, parentID int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*Comment, error)
	// Store backfills ID and CreatedAt on success.
	Store(ctx context.Context, c *Comment) error
	UpdateText(ctx context.Context, id int64, newText string) error
	// DeleteWithReplies removes the comment and every comment whose
	// parent_comment_id equals it, in one transactional unit where the
	// storage engine supports it.
	DeleteWithReplies(ctx context.Context, id int64) error
	// DeleteByPost removes all comments of a post.
	DeleteByPost(ctx context.Context, postID int64) error
	// DeleteOrphanReplies removes replies whose parent no longer exists and
	// returns how many were removed.
	DeleteOrphanReplies(ctx context.Context) (int64, error)
}
