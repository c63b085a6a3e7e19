// Package memory holds an in-memory implementation of the comment
// repository. It mirrors the MySQL adapter's ordering and filter contract and
// backs the usecase tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
)

type CommentRepository struct {
	mu       sync.RWMutex
	nextID   int64
	comments map[int64]domain.Comment
}

var _ domain.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		nextID:   1,
		comments: make(map[int64]domain.Comment),
	}
}

func (r *CommentRepository) FetchTopLevel(_ context.Context, postID int64, continueAfterID int64, limit int64) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Comment
	for _, c := range r.comments {
		if c.BlogPostID != postID || !c.IsTopLevel() {
			continue
		}
		if continueAfterID > 0 && c.ID >= continueAfterID {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return takeCopies(matched, limit), nil
}

func (r *CommentRepository) FetchReplies(_ context.Context, parentID int64, continueAfterID int64, limit int64) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Comment
	for _, c := range r.comments {
		if c.IsTopLevel() || *c.ParentCommentID != parentID {
			continue
		}
		if continueAfterID > 0 && c.ID <= continueAfterID {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return takeCopies(matched, limit), nil
}

func (r *CommentRepository) CountByParent(_ context.Context, parentID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, c := range r.comments {
		if !c.IsTopLevel() && *c.ParentCommentID == parentID {
			count++
		}
	}
	return count, nil
}

func (r *CommentRepository) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *CommentRepository) Store(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextID
	r.nextID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.comments[c.ID] = *c
	return nil
}

func (r *CommentRepository) UpdateText(_ context.Context, id int64, newText string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Text = newText
	r.comments[id] = c
	return nil
}

func (r *CommentRepository) DeleteWithReplies(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.comments, id)
	for cid, c := range r.comments {
		if !c.IsTopLevel() && *c.ParentCommentID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

func (r *CommentRepository) DeleteByPost(_ context.Context, postID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for cid, c := range r.comments {
		if c.BlogPostID == postID {
			delete(r.comments, cid)
		}
	}
	return nil
}

func (r *CommentRepository) DeleteOrphanReplies(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for cid, c := range r.comments {
		if c.IsTopLevel() {
			continue
		}
		if _, ok := r.comments[*c.ParentCommentID]; !ok {
			delete(r.comments, cid)
			removed++
		}
	}
	return removed, nil
}

// Len reports how many comments are stored. Test helper.
func (r *CommentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.comments)
}

func takeCopies(matched []domain.Comment, limit int64) []*domain.Comment {
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	res := make([]*domain.Comment, len(matched))
	for i := range matched {
		c := matched[i]
		res[i] = &c
	}
	return res
}
