package comment

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
	"github.com/Guyuepp/Go-Blog-Platform/internal/repository"
)

type service struct {
	commentRepo domain.CommentRepository
	bloomRepo   domain.BloomRepository
}

var _ domain.CommentUsecase = (*service)(nil)

func NewService(commentRepo domain.CommentRepository, bloomRepo domain.BloomRepository) *service {
	return &service{
		commentRepo: commentRepo,
		bloomRepo:   bloomRepo,
	}
}

// postMustExist rejects posts the bloom filter rules out. A filter error is
// not fatal; the listing then behaves like an empty post.
func (s *service) postMustExist(ctx context.Context, postID int64) error {
	exists, err := s.bloomRepo.Exists(ctx, postID)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says post %d does not exist", postID)
		return domain.ErrNotFound
	}
	return nil
}

func (s *service) FetchForPost(ctx context.Context, postID int64, continueAfterID int64) (domain.CommentPage, error) {
	if err := s.postMustExist(ctx, postID); err != nil {
		return domain.CommentPage{}, err
	}

	rows, err := s.commentRepo.FetchTopLevel(ctx, postID, continueAfterID,
		repository.LookaheadLimit(domain.TopLevelCommentPageSize))
	if err != nil {
		return domain.CommentPage{}, err
	}

	comments, end := repository.TrimLookahead(rows, domain.TopLevelCommentPageSize)
	if err := s.fillRepliesCounts(ctx, comments); err != nil {
		return domain.CommentPage{}, err
	}

	return domain.CommentPage{
		Comments:               comments,
		EndOfPaginationReached: end,
	}, nil
}

func (s *service) FetchReplies(ctx context.Context, commentID int64, continueAfterID int64) (domain.CommentPage, error) {
	rows, err := s.commentRepo.FetchReplies(ctx, commentID, continueAfterID,
		repository.LookaheadLimit(domain.ReplyPageSize))
	if err != nil {
		return domain.CommentPage{}, err
	}

	comments, end := repository.TrimLookahead(rows, domain.ReplyPageSize)
	return domain.CommentPage{
		Comments:               comments,
		EndOfPaginationReached: end,
	}, nil
}

// fillRepliesCounts annotates a page of top-level comments with their direct
// reply counts. One count query per comment, fanned out concurrently; the
// reads have disjoint filters so ordering between them doesn't matter.
func (s *service) fillRepliesCounts(ctx context.Context, comments []*domain.Comment) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range comments {
		g.Go(func() error {
			count, err := s.commentRepo.CountByParent(gctx, c.ID)
			if err != nil {
				return err
			}
			c.RepliesCount = count
			return nil
		})
	}
	return g.Wait()
}

func (s *service) Create(ctx context.Context, c *domain.Comment) error {
	if err := s.postMustExist(ctx, c.BlogPostID); err != nil {
		return err
	}

	if c.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *c.ParentCommentID)
		if err != nil {
			return err
		}
		// Only two hierarchy levels: a reply cannot itself be replied to.
		if !parent.IsTopLevel() {
			return domain.ErrBadParamInput
		}
		if parent.BlogPostID != c.BlogPostID {
			return domain.ErrBadParamInput
		}
	}

	return s.commentRepo.Store(ctx, c)
}

func (s *service) UpdateText(ctx context.Context, commentID int64, requesterID int64, newText string) (*domain.Comment, error) {
	if _, err := s.getOwned(ctx, commentID, requesterID); err != nil {
		return nil, err
	}

	// Last-writer-wins; no optimistic-concurrency token on text edits.
	if err := s.commentRepo.UpdateText(ctx, commentID, newText); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, commentID)
}

func (s *service) Delete(ctx context.Context, commentID int64, requesterID int64) error {
	if _, err := s.getOwned(ctx, commentID, requesterID); err != nil {
		return err
	}
	return s.commentRepo.DeleteWithReplies(ctx, commentID)
}

// getOwned fetches the comment and enforces that the requester authored it.
// The requester identity itself is guaranteed by the auth middleware.
func (s *service) getOwned(ctx context.Context, commentID int64, requesterID int64) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Author.ID != requesterID {
		return nil, domain.ErrForbidden
	}
	return comment, nil
}
