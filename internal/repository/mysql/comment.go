package mysql

import (
	"context"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
	"github.com/Guyuepp/Go-Blog-Platform/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (c *commentRepository) FetchTopLevel(ctx context.Context, postID int64, continueAfterID int64, limit int64) ([]*domain.Comment, error) {
	var comments []model.Comment
	query := c.DB.WithContext(ctx).
		Where("blog_post_id = ? AND parent_comment_id IS NULL", postID)
	if continueAfterID > 0 {
		query = query.Where("id < ?", continueAfterID)
	}
	err := query.
		Order("id DESC").
		Limit(int(limit)).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return toDomainComments(comments), nil
}

func (c *commentRepository) FetchReplies(ctx context.Context, parentID int64, continueAfterID int64, limit int64) ([]*domain.Comment, error) {
	var comments []model.Comment
	query := c.DB.WithContext(ctx).
		Where("parent_comment_id = ?", parentID)
	if continueAfterID > 0 {
		query = query.Where("id > ?", continueAfterID)
	}
	err := query.
		Order("id ASC").
		Limit(int(limit)).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return toDomainComments(comments), nil
}

func (c *commentRepository) CountByParent(ctx context.Context, parentID int64) (int64, error) {
	var count int64
	err := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("parent_comment_id = ?", parentID).
		Count(&count).Error
	return count, err
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, domain.ErrNotFound
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	commentModel := model.NewCommentFromDomain(comment)
	err := c.DB.WithContext(ctx).Create(commentModel).Error
	if err != nil {
		return err
	}
	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	return nil
}

func (c *commentRepository) UpdateText(ctx context.Context, id int64, newText string) error {
	result := c.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("text", newText)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteWithReplies removes the comment and its direct replies in one
// transaction, so a crash cannot leave dangling parent references behind.
func (c *commentRepository) DeleteWithReplies(ctx context.Context, id int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Comment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("parent_comment_id = ?", id).Delete(&model.Comment{}).Error
	})
}

func (c *commentRepository) DeleteByPost(ctx context.Context, postID int64) error {
	return c.DB.WithContext(ctx).
		Where("blog_post_id = ?", postID).
		Delete(&model.Comment{}).Error
}

func (c *commentRepository) DeleteOrphanReplies(ctx context.Context) (int64, error) {
	result := c.DB.WithContext(ctx).Exec(
		"DELETE c FROM comment c LEFT JOIN comment p ON c.parent_comment_id = p.id " +
			"WHERE c.parent_comment_id IS NOT NULL AND p.id IS NULL")
	return result.RowsAffected, result.Error
}

func toDomainComments(comments []model.Comment) []*domain.Comment {
	res := make([]*domain.Comment, 0, len(comments))
	for i := range comments {
		domainComment := comments[i].ToDomain()
		res = append(res, &domainComment)
	}
	return res
}
