package domain

import "context"

// OrphanSweeper periodically removes replies whose parent comment is gone.
// The cascade delete is transactional on MySQL, but data written before that
// change (or by a storage engine without multi-statement transactions) can
// still carry dangling parent references.
type OrphanSweeper interface {
	Start(ctx context.Context)
}
