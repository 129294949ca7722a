package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CollectionRepository interface {
	List(ctx context.Context) ([]model.Collection, error)
	FindByID(ctx context.Context, id int64) (model.Collection, error)
	Create(ctx context.Context, c model.Collection) (model.Collection, error)
	Update(ctx context.Context, c model.Collection) error

	//配下の商品ごと消す
	DeleteWithProducts(ctx context.Context, id int64) error
}
