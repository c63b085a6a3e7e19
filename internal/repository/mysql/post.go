package mysql

import (
	"context"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
	"github.com/Guyuepp/Go-Blog-Platform/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type blogPostRepository struct {
	DB *gorm.DB
}

var _ domain.BlogPostRepository = (*blogPostRepository)(nil)

func NewBlogPostRepository(db *gorm.DB) *blogPostRepository {
	return &blogPostRepository{db}
}

func (m *blogPostRepository) Fetch(ctx context.Context, authorID int64, page int64, pageSize int64) ([]domain.BlogPost, error) {
	var posts []model.BlogPost
	query := m.DB.WithContext(ctx).Model(&model.BlogPost{})
	if authorID > 0 {
		query = query.Where("author_id = ?", authorID)
	}
	err := query.
		Order("id DESC").
		Offset(int(pageSize * (page - 1))).
		Limit(int(pageSize)).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.BlogPost, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
	}
	return res, nil
}

func (m *blogPostRepository) Count(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	query := m.DB.WithContext(ctx).Model(&model.BlogPost{})
	if authorID > 0 {
		query = query.Where("author_id = ?", authorID)
	}
	err := query.Count(&count).Error
	return count, err
}

func (m *blogPostRepository) GetByID(ctx context.Context, id int64) (res domain.BlogPost, err error) {
	var post model.BlogPost
	err = m.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	res = post.ToDomain()
	return
}

func (m *blogPostRepository) GetBySlug(ctx context.Context, slug string) (res domain.BlogPost, err error) {
	var post model.BlogPost
	err = m.DB.WithContext(ctx).First(&post, "slug = ?", slug).Error
	if err != nil {
		return res, domain.ErrNotFound
	}
	res = post.ToDomain()
	return
}

func (m *blogPostRepository) FetchSlugs(ctx context.Context) (slugs []string, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.BlogPost{}).
		Pluck("slug", &slugs).
		Error
	return
}

func (m *blogPostRepository) FetchIDs(ctx context.Context, cursor, limit int64) (ids []int64, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Pluck("id", &ids).Error
	return
}

func (m *blogPostRepository) Store(ctx context.Context, p *domain.BlogPost) (err error) {
	postModel := model.NewBlogPostFromDomain(p)
	result := m.DB.WithContext(ctx).Create(postModel)
	if result.Error != nil {
		return result.Error
	}
	p.ID = postModel.ID
	p.CreatedAt = postModel.CreatedAt
	p.UpdatedAt = postModel.UpdatedAt
	return
}

func (m *blogPostRepository) Update(ctx context.Context, p *domain.BlogPost) (err error) {
	postModel := model.NewBlogPostFromDomain(p)
	result := m.DB.WithContext(ctx).Model(postModel).Updates(postModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return
}

func (m *blogPostRepository) Delete(ctx context.Context, id int64) error {
	result := m.DB.WithContext(ctx).Delete(&model.BlogPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
