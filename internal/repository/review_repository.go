package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ReviewRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.Review, error)
	Create(ctx context.Context, r model.Review) (model.Review, error)
}

// 画像はメタデータ（URL）だけを保存する。
type ProductImageRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductImage, error)
	Create(ctx context.Context, img model.ProductImage) (model.ProductImage, error)
}
