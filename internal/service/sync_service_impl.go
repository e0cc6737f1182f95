package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/cloudsync"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
)

type syncService struct {
	uow      db.UnitOfWork
	syncer   *cloudsync.Syncer
	userID   string
	observer UseCaseObserver

	mu       sync.Mutex
	restored bool
}

// NewSyncService couples the remote syncer with local storage: pushes read
// the stored aggregate, pulls replace it, and the server timestamp of every
// successful call is persisted as the user's last-sync time.
func NewSyncService(uow db.UnitOfWork, syncer *cloudsync.Syncer, userID string, observers ...UseCaseObserver) SyncService {
	return &syncService{
		uow:      uow,
		syncer:   syncer,
		userID:   userID,
		observer: useCaseObserverOrNoop(observers),
	}
}

// restore seeds the syncer with the stored last-sync time. It reads storage
// until one read succeeds.
func (s *syncService) restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restored {
		return nil
	}

	var last *time.Time
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		last, err = repository.NewSQLiteSyncStateRepo(tx).LastSync(ctx, s.userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("reading last sync: %w", err)
	}
	if s.syncer.Status().LastSync == nil {
		s.syncer.SetLastSync(last)
	}
	s.restored = true
	return nil
}

func (s *syncService) Push(ctx context.Context) (ts time.Time, err error) {
	fields := map[string]any{"user": s.userID}
	defer observe(ctx, s.observer, "sync-push", time.Now(), fields, &err)

	if err = s.restore(ctx); err != nil {
		return time.Time{}, err
	}
	data, err := loadData(ctx, s.uow, s.userID)
	if err != nil {
		return time.Time{}, err
	}
	ts, err = s.syncer.Push(ctx, data, func(ctx context.Context, serverTS time.Time) error {
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteSyncStateRepo(tx).SetLastSync(ctx, s.userID, serverTS)
		})
		if err != nil {
			return fmt.Errorf("recording last sync: %w", err)
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	fields["records"] = data.RecordCount()
	return ts, nil
}

// Pull replaces local records with the latest remote snapshot. Local data is
// only touched after the remote call succeeded, and the syncer stays loading
// until the local write has committed.
func (s *syncService) Pull(ctx context.Context) (data *domain.FinancialData, err error) {
	fields := map[string]any{"user": s.userID}
	defer observe(ctx, s.observer, "sync-pull", time.Now(), fields, &err)

	if err = s.restore(ctx); err != nil {
		return nil, err
	}
	data, err = s.syncer.Pull(ctx, func(ctx context.Context, pulled *domain.FinancialData) error {
		pulled.AlignLinkedSchedules()
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteFinancialDataRepo(tx, s.userID).ReplaceAll(ctx, pulled)
		})
		if err != nil {
			return fmt.Errorf("storing pulled snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["records"] = data.RecordCount()
	return data, nil
}

func (s *syncService) Status(ctx context.Context) (cloudsync.Status, error) {
	if err := s.restore(ctx); err != nil {
		return cloudsync.Status{}, err
	}
	return s.syncer.Status(), nil
}
