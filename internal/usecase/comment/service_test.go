package comment_test

import (
	"context"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
	"github.com/Guyuepp/Go-Blog-Platform/internal/repository/memory"
	"github.com/Guyuepp/Go-Blog-Platform/internal/usecase/comment"
)

// bloomAlwaysExists satisfies domain.BloomRepository for tests; every ID may
// exist, so nothing is filtered out.
type bloomAlwaysExists struct{}

func (bloomAlwaysExists) Add(context.Context, int64) error       { return nil }
func (bloomAlwaysExists) BulkAdd(context.Context, []int64) error { return nil }
func (bloomAlwaysExists) Exists(context.Context, int64) (bool, error) {
	return true, nil
}

// bloomNeverExists rules every ID out.
type bloomNeverExists struct{}

func (bloomNeverExists) Add(context.Context, int64) error       { return nil }
func (bloomNeverExists) BulkAdd(context.Context, []int64) error { return nil }
func (bloomNeverExists) Exists(context.Context, int64) (bool, error) {
	return false, nil
}

func newService(t *testing.T) (domain.CommentUsecase, *memory.CommentRepository) {
	t.Helper()
	repo := memory.NewCommentRepository()
	return comment.NewService(repo, bloomAlwaysExists{}), repo
}

func storeTopLevel(t *testing.T, svc domain.CommentUsecase, postID, authorID int64) *domain.Comment {
	t.Helper()
	c := &domain.Comment{
		BlogPostID: postID,
		Text:       faker.Sentence(),
		Author:     domain.User{ID: authorID},
	}
	require.NoError(t, svc.Create(context.Background(), c))
	return c
}

func storeReply(t *testing.T, svc domain.CommentUsecase, postID, parentID, authorID int64) *domain.Comment {
	t.Helper()
	c := &domain.Comment{
		BlogPostID:      postID,
		ParentCommentID: &parentID,
		Text:            faker.Sentence(),
		Author:          domain.User{ID: authorID},
	}
	require.NoError(t, svc.Create(context.Background(), c))
	return c
}

func TestFetchForPost_FirstPageNewestFirst(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c1 := storeTopLevel(t, svc, 1, 10)
	c2 := storeTopLevel(t, svc, 1, 10)
	c3 := storeTopLevel(t, svc, 1, 11)
	c4 := storeTopLevel(t, svc, 1, 11)

	page, err := svc.FetchForPost(ctx, 1, 0)
	require.NoError(t, err)

	require.Len(t, page.Comments, 3)
	assert.Equal(t, c4.ID, page.Comments[0].ID)
	assert.Equal(t, c3.ID, page.Comments[1].ID)
	assert.Equal(t, c2.ID, page.Comments[2].ID)
	assert.False(t, page.EndOfPaginationReached)
	_ = c1
}

func TestFetchForPost_SecondPageViaCursor(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c1 := storeTopLevel(t, svc, 1, 10)
	storeTopLevel(t, svc, 1, 10)
	storeTopLevel(t, svc, 1, 10)
	storeTopLevel(t, svc, 1, 10)

	first, err := svc.FetchForPost(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, first.Comments, 3)

	cursor := first.Comments[len(first.Comments)-1].ID
	second, err := svc.FetchForPost(ctx, 1, cursor)
	require.NoError(t, err)

	// No overlap, no gap: exactly the one remaining comment.
	require.Len(t, second.Comments, 1)
	assert.Equal(t, c1.ID, second.Comments[0].ID)
	assert.True(t, second.EndOfPaginationReached)
}

func TestFetchForPost_StrictlyDecreasingIDs(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for range 10 {
		storeTopLevel(t, svc, 1, 10)
	}

	var cursor int64
	var seen []int64
	for {
		page, err := svc.FetchForPost(ctx, 1, cursor)
		require.NoError(t, err)
		for _, c := range page.Comments {
			seen = append(seen, c.ID)
		}
		if page.EndOfPaginationReached {
			break
		}
		cursor = page.Comments[len(page.Comments)-1].ID
	}

	require.Len(t, seen, 10)
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i-1], seen[i])
	}
}

func TestFetchForPost_ExactPageSizeEndsPagination(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for range domain.TopLevelCommentPageSize {
		storeTopLevel(t, svc, 1, 10)
	}

	page, err := svc.FetchForPost(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, page.Comments, domain.TopLevelCommentPageSize)
	assert.True(t, page.EndOfPaginationReached)
}

func TestFetchForPost_StaleCursorYieldsEmptyPage(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c := storeTopLevel(t, svc, 1, 10)

	// Cursor below every existing id is not an error.
	page, err := svc.FetchForPost(ctx, 1, c.ID)
	require.NoError(t, err)
	assert.Empty(t, page.Comments)
	assert.True(t, page.EndOfPaginationReached)
}

func TestFetchForPost_RepliesCount(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c1 := storeTopLevel(t, svc, 1, 10)
	c2 := storeTopLevel(t, svc, 1, 10)
	storeReply(t, svc, 1, c1.ID, 11)
	storeReply(t, svc, 1, c1.ID, 12)
	storeReply(t, svc, 1, c1.ID, 13)

	page, err := svc.FetchForPost(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)

	counts := map[int64]int64{}
	for _, c := range page.Comments {
		counts[c.ID] = c.RepliesCount
	}
	assert.EqualValues(t, 3, counts[c1.ID])
	assert.EqualValues(t, 0, counts[c2.ID])
}

func TestFetchForPost_UnknownPostFilteredByBloom(t *testing.T) {
	repo := memory.NewCommentRepository()
	svc := comment.NewService(repo, bloomNeverExists{})

	_, err := svc.FetchForPost(context.Background(), 404, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchReplies_OldestFirstAndCursor(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	parent := storeTopLevel(t, svc, 1, 10)
	r1 := storeReply(t, svc, 1, parent.ID, 11)
	r2 := storeReply(t, svc, 1, parent.ID, 12)
	r3 := storeReply(t, svc, 1, parent.ID, 13)

	first, err := svc.FetchReplies(ctx, parent.ID, 0)
	require.NoError(t, err)
	require.Len(t, first.Comments, 2)
	assert.Equal(t, r1.ID, first.Comments[0].ID)
	assert.Equal(t, r2.ID, first.Comments[1].ID)
	assert.False(t, first.EndOfPaginationReached)

	second, err := svc.FetchReplies(ctx, parent.ID, r2.ID)
	require.NoError(t, err)
	require.Len(t, second.Comments, 1)
	assert.Equal(t, r3.ID, second.Comments[0].ID)
	assert.True(t, second.EndOfPaginationReached)
}

func TestFetchReplies_ExactPageSizeEndsPagination(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	parent := storeTopLevel(t, svc, 1, 10)
	r1 := storeReply(t, svc, 1, parent.ID, 11)
	r2 := storeReply(t, svc, 1, parent.ID, 12)

	page, err := svc.FetchReplies(ctx, parent.ID, 0)
	require.NoError(t, err)
	require.Len(t, page.Comments, 2)
	assert.Equal(t, r1.ID, page.Comments[0].ID)
	assert.Equal(t, r2.ID, page.Comments[1].ID)
	assert.True(t, page.EndOfPaginationReached)
}

func TestCreate_ReplyToReplyRejected(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	parent := storeTopLevel(t, svc, 1, 10)
	reply := storeReply(t, svc, 1, parent.ID, 11)

	nested := &domain.Comment{
		BlogPostID:      1,
		ParentCommentID: &reply.ID,
		Text:            faker.Sentence(),
		Author:          domain.User{ID: 12},
	}
	err := svc.Create(ctx, nested)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestCreate_ParentOnOtherPostRejected(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	parent := storeTopLevel(t, svc, 1, 10)

	crossPost := &domain.Comment{
		BlogPostID:      2,
		ParentCommentID: &parent.ID,
		Text:            faker.Sentence(),
		Author:          domain.User{ID: 12},
	}
	err := svc.Create(ctx, crossPost)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestCreate_MissingParentRejected(t *testing.T) {
	svc, _ := newService(t)

	missing := int64(999)
	c := &domain.Comment{
		BlogPostID:      1,
		ParentCommentID: &missing,
		Text:            faker.Sentence(),
		Author:          domain.User{ID: 12},
	}
	err := svc.Create(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateText_OnlyAuthorMayEdit(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	c := storeTopLevel(t, svc, 1, 10)

	_, err := svc.UpdateText(ctx, c.ID, 99, "edited by a stranger")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// The comment must be left unchanged.
	stored, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Text, stored.Text)

	updated, err := svc.UpdateText(ctx, c.ID, 10, "edited by the author")
	require.NoError(t, err)
	assert.Equal(t, "edited by the author", updated.Text)
}

func TestUpdateText_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.UpdateText(context.Background(), 404, 10, "whatever")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_OnlyAuthorMayDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c := storeTopLevel(t, svc, 1, 10)

	err := svc.Delete(ctx, c.ID, 99)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	page, err := svc.FetchForPost(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, page.Comments, 1)
}

func TestDelete_CascadesToReplies(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	parent := storeTopLevel(t, svc, 1, 10)
	r1 := storeReply(t, svc, 1, parent.ID, 11)
	r2 := storeReply(t, svc, 1, parent.ID, 12)
	other := storeTopLevel(t, svc, 1, 10)

	require.NoError(t, svc.Delete(ctx, parent.ID, 10))

	_, err := repo.GetByID(ctx, parent.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, r1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, r2.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The unrelated comment survives.
	_, err = repo.GetByID(ctx, other.ID)
	assert.NoError(t, err)

	// Listing replies of the deleted comment yields an empty, ended page.
	replies, err := svc.FetchReplies(ctx, parent.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, replies.Comments)
	assert.True(t, replies.EndOfPaginationReached)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Delete(context.Background(), 404, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
