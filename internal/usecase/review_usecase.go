package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo  repo.ReviewRepository
	productRepo repo.ProductRepository
}

// DI
func NewReviewUsecase(reviewRepo repo.ReviewRepository, productRepo repo.ProductRepository) *ReviewUsecase {
	return &ReviewUsecase{reviewRepo: reviewRepo, productRepo: productRepo}
}

type AddReviewInput struct {
	Name   string
	Review string
}

func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	if productID <= 0 {
		return []model.Review{}, NewValidationError("invalid id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return []model.Review{}, NewNotFoundError("not found")
		}
		return []model.Review{}, NewIntegrityError("db error")
	}

	reviews, err := u.reviewRepo.ListByProductID(ctx, productID)
	if err != nil {
		return []model.Review{}, NewIntegrityError("db error")
	}
	return reviews, nil
}

func (u *ReviewUsecase) Add(ctx context.Context, productID int64, in AddReviewInput) (model.Review, error) {
	if productID <= 0 {
		return model.Review{}, NewValidationError("invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return model.Review{}, NewValidationError("invalid name")
	}
	if strings.TrimSpace(in.Review) == "" {
		return model.Review{}, NewValidationError("invalid review")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Review{}, NewNotFoundError("not found")
		}
		return model.Review{}, NewIntegrityError("db error")
	}

	rev, err := u.reviewRepo.Create(ctx, model.Review{
		ProductID: productID,
		Name:      name,
		Review:    in.Review,
	})
	if err != nil {
		return model.Review{}, NewIntegrityError("db error")
	}
	return rev, nil
}
