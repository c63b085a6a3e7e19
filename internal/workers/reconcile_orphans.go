package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/Go-Blog-Platform/domain"
)

type orphanSweeper struct {
	commentRepo domain.CommentRepository
	interval    time.Duration
}

var _ domain.OrphanSweeper = (*orphanSweeper)(nil)

func NewOrphanSweeper(commentRepo domain.CommentRepository, interval time.Duration) *orphanSweeper {
	return &orphanSweeper{
		commentRepo: commentRepo,
		interval:    interval,
	}
}

// Start runs the reconciliation sweep until the context is cancelled.
func (s *orphanSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			logrus.Info("shutting down OrphanSweeper, running final sweep...")
			s.sweep(context.Background())
			return
		}
	}
}

func (s *orphanSweeper) sweep(ctx context.Context) {
	removed, err := s.commentRepo.DeleteOrphanReplies(ctx)
	if err != nil {
		logrus.Errorf("orphan reply sweep failed: %v", err)
		return
	}
	if removed > 0 {
		logrus.Infof("orphan reply sweep removed %d replies", removed)
	}
}
