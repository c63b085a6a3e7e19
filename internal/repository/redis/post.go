package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
	"github.com/Guyuepp/Go-Blog-Platform/internal/repository/cache"
	"github.com/redis/go-redis/v9"
)

const (
	KeyPostsHome      = "post:home"
	KeyPostSlugPrefix = "post:slug:"
)

type blogPostCache struct {
	client *redis.Client
}

var _ domain.BlogPostCache = (*blogPostCache)(nil)

func NewBlogPostCache(client *redis.Client) *blogPostCache {
	return &blogPostCache{
		client,
	}
}

// GetHome returns the cached first listing page. A logically expired entry is
// still served; the caller rebuilds it in the background.
func (c *blogPostCache) GetHome(ctx context.Context) ([]domain.BlogPost, bool, error) {
	data, err := c.client.Get(ctx, KeyPostsHome).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, domain.ErrCacheMiss
	} else if err != nil {
		return nil, false, err
	}

	var envelope struct {
		Data     []domain.BlogPost `json:"data"`
		ExpireAt time.Time         `json:"expire_at"`
	}
	if err = json.Unmarshal(data, &envelope); err != nil {
		return nil, false, err
	}

	return envelope.Data, time.Now().After(envelope.ExpireAt), nil
}

func (c *blogPostCache) SetHome(ctx context.Context, posts []domain.BlogPost, ttl time.Duration) error {
	data, err := json.Marshal(cache.NewDataWithLogicalExpire(posts, ttl))
	if err != nil {
		return err
	}
	// 物理过期时间远大于逻辑过期时间
	return c.client.Set(ctx, KeyPostsHome, data, 24*time.Hour).Err()
}

func (c *blogPostCache) DeleteHome(ctx context.Context) error {
	return c.client.Del(ctx, KeyPostsHome).Err()
}

func (c *blogPostCache) GetPost(ctx context.Context, slug string) (domain.BlogPost, error) {
	data, err := c.client.Get(ctx, KeyPostSlugPrefix+slug).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.BlogPost{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.BlogPost{}, err
	}

	var post domain.BlogPost
	if err = json.Unmarshal(data, &post); err != nil {
		return domain.BlogPost{}, err
	}
	return post, nil
}

func (c *blogPostCache) SetPost(ctx context.Context, p domain.BlogPost, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyPostSlugPrefix+p.Slug, data, ttl).Err()
}

func (c *blogPostCache) DeletePost(ctx context.Context, slug string) error {
	return c.client.Del(ctx, KeyPostSlugPrefix+slug).Err()
}
