package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)

	//注文を持つユーザーは消せない。チェックはusecase側（CountByUserID）で行う。
	Delete(ctx context.Context, userID int64) error
}
