package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// RecordPruner deletes audit records created before cutoff.
type RecordPruner interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type RetentionSweeper interface {
	Start(ctx context.Context)
	Stop()
	SweepOnce() (int64, error)
}

type retentionSweeper struct {
	pruner    RecordPruner
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	wg        sync.WaitGroup
	stopOnce  sync.Once
	stopChan  chan struct{}
}

func NewRetentionSweeper(pruner RecordPruner, retention, interval time.Duration) RetentionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &retentionSweeper{
		pruner:    pruner,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		stopChan:  make(chan struct{}),
	}
}

// Start implements RetentionSweeper.
func (s *retentionSweeper) Start(ctx context.Context) {
	log.Printf("🧹 Starting retention sweeper (retention %s, every %s)\n", s.retention, s.interval)

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop implements RetentionSweeper.
func (s *retentionSweeper) Stop() {
	s.stopOnce.Do(func() {
		log.Println("🛑 Stopping retention sweeper...")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// SweepOnce implements RetentionSweeper. A non-positive retention keeps
// everything.
func (s *retentionSweeper) SweepOnce() (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	return s.pruner.DeleteOlderThan(s.now().Add(-s.retention))
}

func (s *retentionSweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			log.Println("🧹 Retention sweeper stopped")
			return
		case <-ctx.Done():
			log.Println("🧹 Retention sweeper stopped")
			return
		case <-ticker.C:
			deleted, err := s.SweepOnce()
			if err != nil {
				log.Printf("⚠️  Failed to sweep analysis records: %v\n", err)
				continue
			}
			if deleted > 0 {
				log.Printf("🧹 Deleted %d expired analysis records\n", deleted)
			}
		}
	}
}
