package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type CollectionGormRepository struct {
	db *gorm.DB
}

// DI
func NewCollectionGormRepository(db *gorm.DB) *CollectionGormRepository {
	return &CollectionGormRepository{db: db}
}

func (r *CollectionGormRepository) List(ctx context.Context) ([]model.Collection, error) {
	var cs []model.Collection
	if err := r.db.WithContext(ctx).Order("id asc").Find(&cs).Error; err != nil {
		return []model.Collection{}, err
	}
	return cs, nil
}

func (r *CollectionGormRepository) FindByID(ctx context.Context, id int64) (model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Collection{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

func (r *CollectionGormRepository) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

func (r *CollectionGormRepository) Update(ctx context.Context, c model.Collection) error {
	res := r.db.WithContext(ctx).Model(&model.Collection{}).
		Where("id = ?", c.ID).
		Update("title", c.Title)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// コレクション削除。配下の商品もまとめて消す（カスケードはアプリ側で明示する）。
func (r *CollectionGormRepository) DeleteWithProducts(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Collection
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		if err := tx.Where("collection_id = ?", id).Delete(&model.Product{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Collection{}, id).Error
	})
}
