package document

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByPath(ctx context.Context, path string) (*Document, error)
	DeleteByPath(ctx context.Context, path string) error
	ListByUser(ctx context.Context, userID string) ([]*Document, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *gormRepository) GetByPath(ctx context.Context, path string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).Where("file_path = ?", path).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *gormRepository) DeleteByPath(ctx context.Context, path string) error {
	return r.db.WithContext(ctx).Where("file_path = ?", path).Delete(&Document{}).Error
}

func (r *gormRepository) ListByUser(ctx context.Context, userID string) ([]*Document, error) {
	var out []*Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
