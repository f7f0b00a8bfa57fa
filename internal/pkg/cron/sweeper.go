package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/partflow/partflow-backend-go/internal/pkg/database"
)

const (
	sweepInterval = 6 * time.Hour
	retentionDays = 30
)

// SessionSweeper periodically deletes refresh-token rows that are both
// expired and past their retention window. Rows are kept for a while after
// expiry so a late Refresh resolves to a session-expired error instead of an
// unknown token.
type SessionSweeper struct {
	db     *database.DB
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSessionSweeper(db *database.DB) *SessionSweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionSweeper{
		db:     db,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start runs one sweep immediately, then sweeps on a fixed interval until
// Stop is called.
func (s *SessionSweeper) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		s.run()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.run()
			}
		}
	}()
	slog.Info("Session sweeper started", "interval", sweepInterval)
}

// Stop cancels the sweep loop and waits for an in-flight sweep to finish.
func (s *SessionSweeper) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Session sweeper stopped")
}

func (s *SessionSweeper) run() {
	start := time.Now()
	if err := s.sweep(s.ctx); err != nil {
		slog.Error("Session sweep failed", "error", err, "duration", time.Since(start))
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM refresh_tokens
		WHERE expires_at < NOW() - make_interval(days => $1)
	`, retentionDays)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		slog.Info("Swept expired refresh tokens", "rows", tag.RowsAffected())
	}
	return nil
}
