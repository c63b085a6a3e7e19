package response

import "github.com/Guyuepp/Go-Blog-Platform/domain"

type BlogPost struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Author    *User  `json:"author,omitempty"`
	UpdatedAt string `json:"updated_at"`
	CreatedAt string `json:"created_at"`
}

// NewBlogPostFromDomain: Domain -> Response
func NewBlogPostFromDomain(p *domain.BlogPost) BlogPost {
	return BlogPost{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Summary:   p.Summary,
		Body:      p.Body,
		Author:    NewUserFromDomain(&p.Author),
		UpdatedAt: p.UpdatedAt.Format(DateTimeFormat),
		CreatedAt: p.CreatedAt.Format(DateTimeFormat),
	}
}

type BlogPostPage struct {
	BlogPosts  []BlogPost `json:"blog_posts"`
	Page       int64      `json:"page"`
	TotalPages int64      `json:"total_pages"`
}

func NewBlogPostPageFromDomain(page domain.BlogPostPage) BlogPostPage {
	posts := make([]BlogPost, 0, len(page.Posts))
	for i := range page.Posts {
		posts = append(posts, NewBlogPostFromDomain(&page.Posts[i]))
	}
	return BlogPostPage{
		BlogPosts:  posts,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}
}
