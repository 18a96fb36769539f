package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"linkeep/internal/models"
)

func TestMemoService_Startup_PublishesInitialSnapshot(t *testing.T) {
	mockRepo := &memoRepositoryMock{
		GetAllFunc: func(ctx context.Context) ([]models.Memo, error) {
			return []models.Memo{
				{ID: 2, Title: "newer", CreatedAt: 200},
				{ID: 1, Title: "older", CreatedAt: 100},
			}, nil
		},
	}
	service := NewMemoService(mockRepo, zap.NewNop())

	var seen [][]models.Memo
	cancel := service.Watch().Listen(func(memos []models.Memo) {
		seen = append(seen, memos)
	})
	defer cancel()

	err := service.Startup(context.Background())
	assert.NoError(t, err)
	// Replay of the empty initial value, then the loaded snapshot.
	assert.Len(t, seen, 2)
	assert.Len(t, seen[1], 2)
	assert.Equal(t, "newer", seen[1][0].Title)
}

func TestMemoService_Insert_AssignsTimestampsAndPublishes(t *testing.T) {
	store := &memoStore{}
	service := NewMemoService(store, zap.NewNop())
	assert.NoError(t, service.Startup(context.Background()))

	var latest []models.Memo
	cancel := service.Watch().Listen(func(memos []models.Memo) {
		latest = memos
	})
	defer cancel()

	memo := &models.Memo{Title: "hello", Content: "world", Category: "inbox"}
	id, err := service.Insert(context.Background(), memo)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.NotZero(t, memo.CreatedAt)
	assert.Equal(t, memo.CreatedAt, memo.UpdatedAt)

	assert.Len(t, latest, 1)
	assert.Equal(t, "hello", latest[0].Title)
}

func TestMemoService_Insert_KeepsCallerTimestamps(t *testing.T) {
	store := &memoStore{}
	service := NewMemoService(store, zap.NewNop())

	memo := &models.Memo{Title: "imported", CreatedAt: 12345, UpdatedAt: 23456}
	_, err := service.Insert(context.Background(), memo)
	assert.NoError(t, err)
	assert.Equal(t, int64(12345), memo.CreatedAt)
	assert.Equal(t, int64(23456), memo.UpdatedAt)
}

func TestMemoService_Update_BumpsUpdatedAt(t *testing.T) {
	store := &memoStore{}
	service := NewMemoService(store, zap.NewNop())

	memo := &models.Memo{Title: "v1", Category: "inbox"}
	_, err := service.Insert(context.Background(), memo)
	assert.NoError(t, err)
	created := memo.CreatedAt

	time.Sleep(2 * time.Millisecond)
	memo.Title = "v2"
	err = service.Update(context.Background(), memo)
	assert.NoError(t, err)
	assert.Equal(t, created, memo.CreatedAt)
	assert.Greater(t, memo.UpdatedAt, created)
}

func TestMemoService_Update_NotFound(t *testing.T) {
	service := NewMemoService(&memoStore{}, zap.NewNop())

	err := service.Update(context.Background(), &models.Memo{ID: 99, Title: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoService_Delete_PublishesRemoval(t *testing.T) {
	store := &memoStore{}
	service := NewMemoService(store, zap.NewNop())

	memo := &models.Memo{Title: "doomed"}
	_, err := service.Insert(context.Background(), memo)
	assert.NoError(t, err)

	var latest []models.Memo
	cancel := service.Watch().Listen(func(memos []models.Memo) {
		latest = memos
	})
	defer cancel()

	err = service.Delete(context.Background(), memo)
	assert.NoError(t, err)
	assert.Empty(t, latest)
}

func TestMemoService_Delete_NotFound(t *testing.T) {
	service := NewMemoService(&memoStore{}, zap.NewNop())

	err := service.Delete(context.Background(), &models.Memo{ID: 7})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoService_SetArchived(t *testing.T) {
	store := &memoStore{}
	service := NewMemoService(store, zap.NewNop())

	memo := &models.Memo{Title: "keep"}
	id, err := service.Insert(context.Background(), memo)
	assert.NoError(t, err)

	err = service.SetArchived(context.Background(), id, true)
	assert.NoError(t, err)

	got, err := service.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.True(t, got.Archived)
}

func TestMemoService_WatchCategory_FiltersSnapshots(t *testing.T) {
	store := &memoStore{}
	service := NewMemoService(store, zap.NewNop())

	_, err := service.Insert(context.Background(), &models.Memo{Title: "a", Category: "work"})
	assert.NoError(t, err)
	_, err = service.Insert(context.Background(), &models.Memo{Title: "b", Category: "home"})
	assert.NoError(t, err)

	stream, cancel := service.WatchCategory("work")
	defer cancel()

	var latest []models.Memo
	stop := stream.Listen(func(memos []models.Memo) {
		latest = memos
	})
	defer stop()

	assert.Len(t, latest, 1)
	assert.Equal(t, "a", latest[0].Title)

	_, err = service.Insert(context.Background(), &models.Memo{Title: "c", Category: "work"})
	assert.NoError(t, err)
	assert.Len(t, latest, 2)
}

func TestMemoService_Insert_RepoError(t *testing.T) {
	mockRepo := &memoRepositoryMock{
		InsertFunc: func(ctx context.Context, memo *models.Memo) (int64, error) {
			return 0, assert.AnError
		},
	}
	service := NewMemoService(mockRepo, zap.NewNop())

	_, err := service.Insert(context.Background(), &models.Memo{Title: "x"})
	assert.Error(t, err)
}
