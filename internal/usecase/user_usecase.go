package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "storefront/internal/repository"
)

type UserUsecase struct {
	tx repo.TransactionManager
}

func NewUserUsecase(tx repo.TransactionManager) *UserUsecase {
	return &UserUsecase{tx: tx}
}

// DeleteAccount はユーザーを削除する。
// 注文を持つユーザーは消せない（カスケードではなく明示的な保護チェック）。
func (u *UserUsecase) DeleteAccount(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		count, err := r.Orders().CountByUserID(ctx, userID)
		if err != nil {
			return NewIntegrityError("db error")
		}
		if count > 0 {
			return NewValidationError("user has orders")
		}

		err = r.Users().Delete(ctx, userID)
		if errors.Is(err, repo.ErrUserNotFound) {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewIntegrityError("db error")
		}
		return nil
	})
}
