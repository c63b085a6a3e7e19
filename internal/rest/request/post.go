package request

import "github.com/Guyuepp/Go-Blog-Platform/domain"

type BlogPost struct {
	Slug    string `json:"slug" binding:"required,max=100,slug"`
	Title   string `json:"title" binding:"required,max=100"`
	Summary string `json:"summary" binding:"required,max=300"`
	Body    string `json:"body" binding:"required"`
}

// ToDomain: Request -> Domain
func (r *BlogPost) ToDomain() domain.BlogPost {
	return domain.BlogPost{
		Slug:    r.Slug,
		Title:   r.Title,
		Summary: r.Summary,
		Body:    r.Body,
	}
}
