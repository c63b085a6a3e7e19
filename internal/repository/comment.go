package repository

import (
	"context"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
)

// commentRepository 协调层: 数据库评论记录 + 作者信息
type commentRepository struct {
	db       domain.CommentRepository
	userRepo domain.UserRepository
}

var _ domain.CommentRepository = (*commentRepository)(nil)

// NewCommentRepository wraps the DB comment repository so that every comment
// leaving the layer carries its resolved author. Callers never hold comment
// references across requests; each operation re-fetches by id.
func NewCommentRepository(db domain.CommentRepository, userRepo domain.UserRepository) *commentRepository {
	return &commentRepository{
		db:       db,
		userRepo: userRepo,
	}
}

func (r *commentRepository) FetchTopLevel(ctx context.Context, postID int64, continueAfterID int64, limit int64) ([]*domain.Comment, error) {
	comments, err := r.db.FetchTopLevel(ctx, postID, continueAfterID, limit)
	if err != nil {
		return nil, err
	}
	return r.fillAuthorDetails(ctx, comments)
}

func (r *commentRepository) FetchReplies(ctx context.Context, parentID int64, continueAfterID int64, limit int64) ([]*domain.Comment, error) {
	comments, err := r.db.FetchReplies(ctx, parentID, continueAfterID, limit)
	if err != nil {
		return nil, err
	}
	return r.fillAuthorDetails(ctx, comments)
}

func (r *commentRepository) CountByParent(ctx context.Context, parentID int64) (int64, error) {
	return r.db.CountByParent(ctx, parentID)
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := r.db.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	author, err := r.userRepo.GetByID(ctx, comment.Author.ID)
	if err == nil {
		comment.Author = author
	}
	return comment, nil
}

func (r *commentRepository) Store(ctx context.Context, c *domain.Comment) error {
	if err := r.db.Store(ctx, c); err != nil {
		return err
	}
	author, err := r.userRepo.GetByID(ctx, c.Author.ID)
	if err == nil {
		c.Author = author
	}
	return nil
}

func (r *commentRepository) UpdateText(ctx context.Context, id int64, newText string) error {
	return r.db.UpdateText(ctx, id, newText)
}

func (r *commentRepository) DeleteWithReplies(ctx context.Context, id int64) error {
	return r.db.DeleteWithReplies(ctx, id)
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID int64) error {
	return r.db.DeleteByPost(ctx, postID)
}

func (r *commentRepository) DeleteOrphanReplies(ctx context.Context) (int64, error) {
	return r.db.DeleteOrphanReplies(ctx)
}

// fillAuthorDetails 批量填充作者信息
func (r *commentRepository) fillAuthorDetails(ctx context.Context, comments []*domain.Comment) ([]*domain.Comment, error) {
	if len(comments) == 0 {
		return comments, nil
	}

	// 收集所有不重复的作者ID
	authorIDs := make([]int64, 0, len(comments))
	existMap := make(map[int64]bool)
	for _, c := range comments {
		if !existMap[c.Author.ID] {
			authorIDs = append(authorIDs, c.Author.ID)
			existMap[c.Author.ID] = true
		}
	}

	users, err := r.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	userMap := make(map[int64]domain.User)
	for _, u := range users {
		userMap[u.ID] = u
	}

	for _, c := range comments {
		if u, ok := userMap[c.Author.ID]; ok {
			c.Author = u
		}
	}

	return comments, nil
}
