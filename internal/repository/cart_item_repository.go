package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)

	// 同一商品は数量を置き換える（加算しない）
	UpsertByCartAndProduct(ctx context.Context, cartID string, productID int64, qty int64) error
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	BelongsToCart(ctx context.Context, cartItemID int64, cartID string) (bool, error)
}
