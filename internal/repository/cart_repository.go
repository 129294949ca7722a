package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	Create(ctx context.Context, cart model.Cart) (model.Cart, error)
	FindByID(ctx context.Context, cartID string) (model.Cart, error)

	//注文確定時は行ロック付きで引く（同一カートの同時確定を直列化する）
	FindByIDForUpdate(ctx context.Context, cartID string) (model.Cart, error)

	//明細ごと削除
	Delete(ctx context.Context, cartID string) error
}
