package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CollectionUsecase struct {
	collectionRepo repo.CollectionRepository
}

// DI
func NewCollectionUsecase(collectionRepo repo.CollectionRepository) *CollectionUsecase {
	return &CollectionUsecase{collectionRepo: collectionRepo}
}

type CollectionInput struct {
	Title string
}

func (u *CollectionUsecase) List(ctx context.Context) ([]model.Collection, error) {
	cs, err := u.collectionRepo.List(ctx)
	if err != nil {
		return []model.Collection{}, NewIntegrityError("db error")
	}
	return cs, nil
}

func (u *CollectionUsecase) Detail(ctx context.Context, id int64) (model.Collection, error) {
	if id <= 0 {
		return model.Collection{}, NewValidationError("invalid id")
	}

	c, err := u.collectionRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Collection{}, NewNotFoundError("not found")
	}
	if err != nil {
		return model.Collection{}, NewIntegrityError("db error")
	}
	return c, nil
}

func (u *CollectionUsecase) Create(ctx context.Context, in CollectionInput) (model.Collection, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 100 {
		return model.Collection{}, NewValidationError("invalid title")
	}

	c, err := u.collectionRepo.Create(ctx, model.Collection{Title: title})
	if err != nil {
		return model.Collection{}, NewIntegrityError("db error")
	}
	return c, nil
}

func (u *CollectionUsecase) Update(ctx context.Context, id int64, in CollectionInput) (model.Collection, error) {
	if id <= 0 {
		return model.Collection{}, NewValidationError("invalid id")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 100 {
		return model.Collection{}, NewValidationError("invalid title")
	}

	err := u.collectionRepo.Update(ctx, model.Collection{ID: id, Title: title})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Collection{}, NewNotFoundError("not found")
	}
	if err != nil {
		return model.Collection{}, NewIntegrityError("db error")
	}

	return model.Collection{ID: id, Title: title}, nil
}

// 配下の商品も一緒に消える（カスケード）。
func (u *CollectionUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewValidationError("invalid id")
	}

	err := u.collectionRepo.DeleteWithProducts(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("not found")
	}
	if err != nil {
		return NewIntegrityError("db error")
	}
	return nil
}
