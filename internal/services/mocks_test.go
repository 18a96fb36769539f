package services

import (
	"context"

	"linkeep/internal/models"
)

type memoRepositoryMock struct {
	GetAllFunc        func(ctx context.Context) ([]models.Memo, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*models.Memo, error)
	GetByCategoryFunc func(ctx context.Context, category string) ([]models.Memo, error)
	InsertFunc        func(ctx context.Context, memo *models.Memo) (int64, error)
	UpdateFunc        func(ctx context.Context, memo *models.Memo) error
	DeleteFunc        func(ctx context.Context, id int64) error
}

func (m *memoRepositoryMock) GetAll(ctx context.Context) ([]models.Memo, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return []models.Memo{}, nil
}

func (m *memoRepositoryMock) GetByID(ctx context.Context, id int64) (*models.Memo, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *memoRepositoryMock) GetByCategory(ctx context.Context, category string) ([]models.Memo, error) {
	if m.GetByCategoryFunc != nil {
		return m.GetByCategoryFunc(ctx, category)
	}
	return []models.Memo{}, nil
}

func (m *memoRepositoryMock) Insert(ctx context.Context, memo *models.Memo) (int64, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, memo)
	}
	return memo.ID, nil
}

func (m *memoRepositoryMock) Update(ctx context.Context, memo *models.Memo) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, memo)
	}
	return nil
}

func (m *memoRepositoryMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type settingsRepositoryMock struct {
	GetFunc func(ctx context.Context, key string) (string, bool, error)
	SetFunc func(ctx context.Context, key, value string) error
	AllFunc func(ctx context.Context) (map[string]string, error)

	stored map[string]string
}

func (m *settingsRepositoryMock) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	v, ok := m.stored[key]
	return v, ok, nil
}

func (m *settingsRepositoryMock) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	if m.stored == nil {
		m.stored = map[string]string{}
	}
	m.stored[key] = value
	return nil
}

func (m *settingsRepositoryMock) All(ctx context.Context) (map[string]string, error) {
	if m.AllFunc != nil {
		return m.AllFunc(ctx)
	}
	if m.stored == nil {
		return map[string]string{}, nil
	}
	return m.stored, nil
}

type enrichmentServiceMock struct {
	GenerateFunc func(ctx context.Context, in GenerateInput) models.EnrichmentResult
}

func (m *enrichmentServiceMock) Generate(ctx context.Context, in GenerateInput) models.EnrichmentResult {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, in)
	}
	return models.EnrichmentResult{Title: "t", Content: "c", Category: "cat"}
}

// memoStore is an in-memory MemoRepository for pipeline-level tests where the
// interesting assertions are about what ends up persisted.
type memoStore struct {
	nextID int64
	memos  []models.Memo
}

func (s *memoStore) GetAll(ctx context.Context) ([]models.Memo, error) {
	out := make([]models.Memo, len(s.memos))
	copy(out, s.memos)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *memoStore) GetByID(ctx context.Context, id int64) (*models.Memo, error) {
	for i := range s.memos {
		if s.memos[i].ID == id {
			m := s.memos[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoStore) GetByCategory(ctx context.Context, category string) ([]models.Memo, error) {
	var out []models.Memo
	for _, m := range s.memos {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memoStore) Insert(ctx context.Context, memo *models.Memo) (int64, error) {
	s.nextID++
	memo.ID = s.nextID
	s.memos = append(s.memos, *memo)
	return memo.ID, nil
}

func (s *memoStore) Update(ctx context.Context, memo *models.Memo) error {
	for i := range s.memos {
		if s.memos[i].ID == memo.ID {
			s.memos[i] = *memo
			return nil
		}
	}
	return ErrNotFound
}

func (s *memoStore) Delete(ctx context.Context, id int64) error {
	for i := range s.memos {
		if s.memos[i].ID == id {
			s.memos = append(s.memos[:i], s.memos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
