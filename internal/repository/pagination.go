package repository

import "github.com/Guyuepp/Go-Blog-Platform/domain"

// Keyset pagination helpers shared by the comment listings. Both regimes
// (top-level: id DESC, replies: id ASC) fetch one row beyond the page size;
// that lookahead row answers "is there a next page" without a count query.

// LookaheadLimit returns the row limit to request for the given page size.
func LookaheadLimit(pageSize int64) int64 {
	return pageSize + 1
}

// TrimLookahead drops the lookahead row, if fetched, and reports whether the
// end of pagination was reached. A cursor pointing at a stale or unknown id
// is not an error upstream; it simply produces fewer rows here.
func TrimLookahead(rows []*domain.Comment, pageSize int64) ([]*domain.Comment, bool) {
	if int64(len(rows)) <= pageSize {
		return rows, true
	}
	return rows[:pageSize], false
}
