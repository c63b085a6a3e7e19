package post

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
)

const (
	homeCacheTTL  = 30 * time.Second
	postCacheTTL  = 5 * time.Minute
	bloomInitStep = 500
)

type Service struct {
	postRepo    domain.BlogPostRepository
	userRepo    domain.UserRepository
	commentRepo domain.CommentRepository
	postCache   domain.BlogPostCache
	bloomRepo   domain.BloomRepository

	rebuildGroup singleflight.Group
}

var _ domain.BlogPostUsecase = (*Service)(nil)

// NewService will create a new blog post service object
func NewService(p domain.BlogPostRepository, u domain.UserRepository, c domain.CommentRepository, pc domain.BlogPostCache, b domain.BloomRepository) *Service {
	return &Service{
		postRepo:    p,
		userRepo:    u,
		commentRepo: c,
		postCache:   pc,
		bloomRepo:   b,
	}
}

func (s *Service) Fetch(ctx context.Context, authorID int64, page int64) (domain.BlogPostPage, error) {
	if page < 1 {
		page = 1
	}

	// 首页无过滤时走缓存
	if page == 1 && authorID == 0 {
		posts, expired, err := s.postCache.GetHome(ctx)
		if err == nil {
			if expired {
				go s.rebuildHomeCache(context.Background())
			}
			total, err := s.postRepo.Count(ctx, 0)
			if err != nil {
				return domain.BlogPostPage{}, err
			}
			return domain.BlogPostPage{Posts: posts, Page: page, TotalPages: totalPages(total)}, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			logrus.Warnf("cache get error: %v", err)
		}
	}

	posts, err := s.postRepo.Fetch(ctx, authorID, page, domain.BlogPostPageSize)
	if err != nil {
		return domain.BlogPostPage{}, err
	}
	posts, err = s.fillAuthorDetails(ctx, posts)
	if err != nil {
		return domain.BlogPostPage{}, err
	}

	total, err := s.postRepo.Count(ctx, authorID)
	if err != nil {
		return domain.BlogPostPage{}, err
	}

	if page == 1 && authorID == 0 {
		go func(data []domain.BlogPost) {
			_ = s.postCache.SetHome(context.Background(), data, homeCacheTTL)
		}(posts)
	}

	return domain.BlogPostPage{Posts: posts, Page: page, TotalPages: totalPages(total)}, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (domain.BlogPost, error) {
	cached, err := s.postCache.GetPost(ctx, slug)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get error for post %q: %v", slug, err)
	}

	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.BlogPost{}, err
	}

	author, err := s.userRepo.GetByID(ctx, post.Author.ID)
	if err != nil {
		return domain.BlogPost{}, err
	}
	post.Author = author

	go func(p domain.BlogPost) {
		// The hash never leaves the server, the cache included.
		p.Author.Password = ""
		_ = s.postCache.SetPost(context.Background(), p, postCacheTTL)
	}(post)

	return post, nil
}

func (s *Service) FetchSlugs(ctx context.Context) ([]string, error) {
	return s.postRepo.FetchSlugs(ctx)
}

func (s *Service) Store(ctx context.Context, p *domain.BlogPost) error {
	existing, err := s.postRepo.GetBySlug(ctx, p.Slug)
	if err == nil && existing.ID != 0 {
		return domain.ErrConflict
	}

	if err := s.postRepo.Store(ctx, p); err != nil {
		return err
	}

	author, err := s.userRepo.GetByID(ctx, p.Author.ID)
	if err == nil {
		p.Author = author
	}

	if err := s.bloomRepo.Add(ctx, p.ID); err != nil {
		logrus.Warnf("failed to add post %d to bloom filter: %v", p.ID, err)
	}
	go func() {
		_ = s.postCache.DeleteHome(context.Background())
	}()
	return nil
}

func (s *Service) Update(ctx context.Context, postID int64, requesterID int64, p *domain.BlogPost) error {
	existing, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if existing.Author.ID != requesterID {
		return domain.ErrForbidden
	}
	if p.Slug != existing.Slug {
		conflicting, err := s.postRepo.GetBySlug(ctx, p.Slug)
		if err == nil && conflicting.ID != postID {
			return domain.ErrConflict
		}
	}

	p.ID = postID
	p.Author = existing.Author
	p.UpdatedAt = time.Now()
	if err := s.postRepo.Update(ctx, p); err != nil {
		return err
	}

	go func(oldSlug, newSlug string) {
		ctx := context.Background()
		_ = s.postCache.DeleteHome(ctx)
		_ = s.postCache.DeletePost(ctx, oldSlug)
		if newSlug != oldSlug {
			_ = s.postCache.DeletePost(ctx, newSlug)
		}
	}(existing.Slug, p.Slug)
	return nil
}

func (s *Service) Delete(ctx context.Context, postID int64, requesterID int64) error {
	existing, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if existing.Author.ID != requesterID {
		return domain.ErrForbidden
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	// 同时清理该文章下的所有评论
	if err := s.commentRepo.DeleteByPost(ctx, postID); err != nil {
		logrus.Errorf("failed to delete comments of post %d: %v", postID, err)
	}

	go func(slug string) {
		ctx := context.Background()
		_ = s.postCache.DeleteHome(ctx)
		_ = s.postCache.DeletePost(ctx, slug)
	}(existing.Slug)
	return nil
}

// InitBloomFilter loads every post ID into the bloom filter at startup.
func (s *Service) InitBloomFilter(ctx context.Context) error {
	var cursor int64
	for {
		ids, err := s.postRepo.FetchIDs(ctx, cursor, bloomInitStep)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		cursor = ids[len(ids)-1]
	}
}

// fillAuthorDetails 批量填充作者信息
func (s *Service) fillAuthorDetails(ctx context.Context, posts []domain.BlogPost) ([]domain.BlogPost, error) {
	if len(posts) == 0 {
		return posts, nil
	}

	authorIDs := make([]int64, 0, len(posts))
	existMap := make(map[int64]bool)
	for _, p := range posts {
		if !existMap[p.Author.ID] {
			authorIDs = append(authorIDs, p.Author.ID)
			existMap[p.Author.ID] = true
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	userMap := make(map[int64]domain.User)
	for _, u := range users {
		userMap[u.ID] = u
	}

	for i := range posts {
		if u, ok := userMap[posts[i].Author.ID]; ok {
			posts[i].Author = u
		}
	}
	return posts, nil
}

// rebuildHomeCache 异步重建首页缓存
func (s *Service) rebuildHomeCache(ctx context.Context) {
	_, err, _ := s.rebuildGroup.Do("home", func() (any, error) {
		posts, err := s.postRepo.Fetch(ctx, 0, 1, domain.BlogPostPageSize)
		if err != nil {
			return nil, err
		}
		posts, err = s.fillAuthorDetails(ctx, posts)
		if err != nil {
			return nil, err
		}
		return nil, s.postCache.SetHome(ctx, posts, homeCacheTTL)
	})
	if err != nil {
		logrus.Errorf("rebuildHomeCache failed: %v", err)
	}
}

func totalPages(total int64) int64 {
	return (total + domain.BlogPostPageSize - 1) / domain.BlogPostPageSize
}
