package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"linkeep/internal/events"
	"linkeep/internal/models"
	"linkeep/internal/repositories"
)

// ErrNotFound is surfaced when an update or delete references a memo id
// that no longer exists. No retry is attempted.
var ErrNotFound = repositories.ErrNotFound

// MemoService is the durable memo collection. Mutations are serialized and
// every committed mutation publishes one fresh snapshot, sorted by
// created-at descending, to all stream subscribers before returning.
type MemoService interface {
	Startup(ctx context.Context) error

	All(ctx context.Context) ([]models.Memo, error)
	GetByID(ctx context.Context, id int64) (*models.Memo, error)
	Insert(ctx context.Context, memo *models.Memo) (int64, error)
	Update(ctx context.Context, memo *models.Memo) error
	Delete(ctx context.Context, memo *models.Memo) error
	SetArchived(ctx context.Context, id int64, archived bool) error

	Watch() *events.State[[]models.Memo]
	WatchCategory(category string) (*events.State[[]models.Memo], func())
}

type memoService struct {
	repo repositories.MemoRepository
	log  *zap.Logger

	mu    sync.Mutex // single-writer discipline for mutations
	memos *events.State[[]models.Memo]
	now   func() time.Time
}

func NewMemoService(repo repositories.MemoRepository, log *zap.Logger) MemoService {
	return &memoService{
		repo:  repo,
		log:   log,
		memos: events.NewState([]models.Memo{}),
		now:   time.Now,
	}
}

// Startup loads the initial snapshot so subscribers registered before the
// first mutation still see the persisted collection.
func (s *memoService) Startup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publishLocked(ctx)
}

func (s *memoService) All(ctx context.Context) ([]models.Memo, error) {
	return s.repo.GetAll(ctx)
}

func (s *memoService) GetByID(ctx context.Context, id int64) (*models.Memo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *memoService) Insert(ctx context.Context, memo *models.Memo) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nowMillis := s.now().UnixMilli()
	if memo.CreatedAt == 0 {
		memo.CreatedAt = nowMillis
	}
	if memo.UpdatedAt < memo.CreatedAt {
		memo.UpdatedAt = memo.CreatedAt
	}

	id, err := s.repo.Insert(ctx, memo)
	if err != nil {
		return 0, fmt.Errorf("insert memo: %w", err)
	}
	if err := s.publishLocked(ctx); err != nil {
		s.log.Warn("failed to refresh memo snapshot after insert", zap.Error(err))
	}
	return id, nil
}

func (s *memoService) Update(ctx context.Context, memo *models.Memo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	memo.UpdatedAt = s.now().UnixMilli()
	if memo.UpdatedAt < memo.CreatedAt {
		memo.UpdatedAt = memo.CreatedAt
	}

	if err := s.repo.Update(ctx, memo); err != nil {
		return err
	}
	if err := s.publishLocked(ctx); err != nil {
		s.log.Warn("failed to refresh memo snapshot after update", zap.Error(err))
	}
	return nil
}

func (s *memoService) Delete(ctx context.Context, memo *models.Memo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, memo.ID); err != nil {
		return err
	}
	if err := s.publishLocked(ctx); err != nil {
		s.log.Warn("failed to refresh memo snapshot after delete", zap.Error(err))
	}
	return nil
}

func (s *memoService) SetArchived(ctx context.Context, id int64, archived bool) error {
	memo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	memo.Archived = archived
	return s.Update(ctx, memo)
}

func (s *memoService) Watch() *events.State[[]models.Memo] {
	return s.memos
}

// WatchCategory derives a filtered stream from the full snapshot stream so
// each mutation still computes a single snapshot. The returned cancel func
// detaches the derived stream.
func (s *memoService) WatchCategory(category string) (*events.State[[]models.Memo], func()) {
	return events.Derive(s.memos, func(memos []models.Memo) []models.Memo {
		filtered := make([]models.Memo, 0, len(memos))
		for _, m := range memos {
			if m.Category == category {
				filtered = append(filtered, m)
			}
		}
		return filtered
	})
}

// publishLocked reloads the collection once and pushes it to all listeners.
// Caller must hold s.mu so subscribers observe mutations in commit order.
func (s *memoService) publishLocked(ctx context.Context) error {
	memos, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	s.memos.Set(memos)
	return nil
}
