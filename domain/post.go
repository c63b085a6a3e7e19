package domain

import (
	"context"
	"time"
)

// BlogPostPageSize is the page size for post listings (page-based).
const BlogPostPageSize = 6

// BlogPost is representing the BlogPost data struct
type BlogPost struct {
	ID        int64     // Unique identifier for the post
	Slug      string    // URL slug (unique)
	Title     string    // Post title
	Summary   string    // Short summary shown in listings
	Body      string    // Post body content
	Author    User      // Author information
	UpdatedAt time.Time // Last update timestamp
	CreatedAt time.Time // Creation timestamp
}

// BlogPostRepository defines the contract for post data persistence.
type BlogPostRepository interface {
	// Fetch retrieves one page of posts, newest first.
	// authorID == 0 means no author filter.
	Fetch(ctx context.Context, authorID int64, page int64, pageSize int64) ([]BlogPost, error)

	// Count returns the number of posts matching the author filter.
	Count(ctx context.Context, authorID int64) (int64, error)

	// GetByID retrieves a single post by its ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id int64) (BlogPost, error)

	// GetBySlug retrieves a post by its slug.
	// Returns ErrNotFound if the post doesn't exist.
	GetBySlug(ctx context.Context, slug string) (BlogPost, error)

	// FetchSlugs returns the slugs of all posts.
	FetchSlugs(ctx context.Context) ([]string, error)

	// FetchIDs returns post IDs after the given cursor, ascending.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)

	// Store creates a new post. Backfills ID and timestamps.
	Store(ctx context.Context, p *BlogPost) error

	// Update modifies an existing post.
	// Returns ErrNotFound if the post doesn't exist.
	Update(ctx context.Context, p *BlogPost) error

	// Delete removes a post by its ID.
	// Returns ErrNotFound if not exists.
	Delete(ctx context.Context, id int64) error
}

// BlogPostCache caches the first listing page and single posts by slug.
type BlogPostCache interface {
	// GetHome returns the cached home page. expired reports a logical-expire
	// hit that should trigger a background rebuild.
	GetHome(ctx context.Context) (posts []BlogPost, expired bool, err error)
	SetHome(ctx context.Context, posts []BlogPost, ttl time.Duration) error
	DeleteHome(ctx context.Context) error

	// GetPost returns the cached post for a slug, ErrCacheMiss otherwise.
	GetPost(ctx context.Context, slug string) (BlogPost, error)
	SetPost(ctx context.Context, p BlogPost, ttl time.Duration) error
	DeletePost(ctx context.Context, slug string) error
}

// BlogPostPage is one page of a page-number-paginated post listing.
type BlogPostPage struct {
	Posts      []BlogPost
	Page       int64
	TotalPages int64
}

type BlogPostUsecase interface {
	Fetch(ctx context.Context, authorID int64, page int64) (BlogPostPage, error)
	GetBySlug(ctx context.Context, slug string) (BlogPost, error)
	FetchSlugs(ctx context.Context) ([]string, error)
	Store(ctx context.Context, p *BlogPost) error
	// Update and Delete are author-gated: a requester that is not the post's
	// author gets ErrForbidden.
	Update(ctx context.Context, postID int64, requesterID int64, p *BlogPost) error
	Delete(ctx context.Context, postID int64, requesterID int64) error
	InitBloomFilter(ctx context.Context) error
}
