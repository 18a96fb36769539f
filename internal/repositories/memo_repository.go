package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"linkeep/internal/models"
)

// ErrNotFound is returned when an operation references a memo id that does
// not exist. Callers are expected to surface it without retrying.
var ErrNotFound = errors.New("memo not found")

type MemoRepository interface {
	GetAll(ctx context.Context) ([]models.Memo, error)
	GetByID(ctx context.Context, id int64) (*models.Memo, error)
	GetByCategory(ctx context.Context, category string) ([]models.Memo, error)
	Insert(ctx context.Context, memo *models.Memo) (int64, error)
	Update(ctx context.Context, memo *models.Memo) error
	Delete(ctx context.Context, id int64) error
}

type memoRepository struct {
	db *gorm.DB
}

func NewMemoRepository(db *gorm.DB) MemoRepository {
	return &memoRepository{db: db}
}

func (r *memoRepository) GetAll(ctx context.Context) ([]models.Memo, error) {
	var memos []models.Memo
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&memos).Error
	if err != nil {
		return nil, err
	}
	return memos, nil
}

func (r *memoRepository) GetByID(ctx context.Context, id int64) (*models.Memo, error) {
	var memo models.Memo
	if err := r.db.WithContext(ctx).First(&memo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &memo, nil
}

func (r *memoRepository) GetByCategory(ctx context.Context, category string) ([]models.Memo, error) {
	var memos []models.Memo
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&memos).Error
	if err != nil {
		return nil, err
	}
	return memos, nil
}

func (r *memoRepository) Insert(ctx context.Context, memo *models.Memo) (int64, error) {
	if err := r.db.WithContext(ctx).Create(memo).Error; err != nil {
		return 0, err
	}
	return memo.ID, nil
}

func (r *memoRepository) Update(ctx context.Context, memo *models.Memo) error {
	var existing models.Memo
	if err := r.db.WithContext(ctx).First(&existing, memo.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	// The id is immutable once assigned; everything else follows the caller.
	return r.db.WithContext(ctx).Save(memo).Error
}

func (r *memoRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Memo{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
