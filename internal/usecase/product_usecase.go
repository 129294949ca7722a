package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// 商品一覧・明細にも使う簡易表現（現在価格）。
type ProductSummary struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type ProductUsecase struct {
	productRepo    repo.ProductRepository
	collectionRepo repo.CollectionRepository
	imageRepo      repo.ProductImageRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	collectionRepo repo.CollectionRepository,
	imageRepo repo.ProductImageRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		imageRepo:      imageRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

type ProductOutput struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`

	//常時10%引きの表示価格
	DiscountedPrice decimal.Decimal      `json:"discounted_price"`
	Inventory       int64                `json:"inventory"`
	CollectionID    int64                `json:"collection_id"`
	Images          []model.ProductImage `json:"product_images"`
}

type ProductListOutput struct {
	Items []ProductOutput `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type CreateProductInput struct {
	Title        string
	Description  string
	Price        decimal.Decimal
	Inventory    int64
	CollectionID int64
}

var discountRate = decimal.NewFromFloat(0.10)

func toProductOutput(p model.Product, images []model.ProductImage) ProductOutput {
	if images == nil {
		images = []model.ProductImage{}
	}
	return ProductOutput{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.Price.Sub(p.Price.Mul(discountRate)).Round(2),
		Inventory:       p.Inventory,
		CollectionID:    p.CollectionID,
		Images:          images,
	}
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewValidationError("invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewValidationError("invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewValidationError("q too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return ProductListOutput{}, NewValidationError("min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return ProductListOutput{}, NewValidationError("max_price must be >= 0")
	}

	products, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        in.Q,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewIntegrityError("db error")
	}

	items := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		//一覧では画像は出さない
		items = append(items, toProductOutput(p, nil))
	}

	return ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, id int64) (ProductOutput, error) {
	if id <= 0 {
		return ProductOutput{}, NewValidationError("invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewNotFoundError("not found")
	}
	if err != nil {
		return ProductOutput{}, NewIntegrityError("db error")
	}

	images, err := u.imageRepo.ListByProductID(ctx, id)
	if err != nil {
		return ProductOutput{}, NewIntegrityError("db error")
	}

	return toProductOutput(p, images), nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (ProductOutput, error) {
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	//コレクションの存在確認
	if _, err := u.collectionRepo.FindByID(ctx, in.CollectionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductOutput{}, NewValidationError("invalid collection_id")
		}
		return ProductOutput{}, NewIntegrityError("db error")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Price:        in.Price,
		Inventory:    in.Inventory,
		CollectionID: in.CollectionID,
	})
	if err != nil {
		return ProductOutput{}, NewIntegrityError("db error")
	}

	return toProductOutput(created, nil), nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in CreateProductInput) (ProductOutput, error) {
	if id <= 0 {
		return ProductOutput{}, NewValidationError("invalid id")
	}
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	if _, err := u.collectionRepo.FindByID(ctx, in.CollectionID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductOutput{}, NewValidationError("invalid collection_id")
		}
		return ProductOutput{}, NewIntegrityError("db error")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:           id,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Price:        in.Price,
		Inventory:    in.Inventory,
		CollectionID: in.CollectionID,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewNotFoundError("not found")
	}
	if err != nil {
		return ProductOutput{}, NewIntegrityError("db error")
	}

	return u.GetProductDetail(ctx, id)
}

// 削除はソフトデリート。注文明細からの参照は壊さない。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewValidationError("invalid id")
	}

	err := u.productRepo.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("not found")
	}
	if err != nil {
		return NewIntegrityError("db error")
	}
	return nil
}

type AddImageInput struct {
	URL string
}

// 画像メタデータを追加。バイト列は外部ストレージにあり、ここではURLだけ預かる。
func (u *ProductUsecase) AddImage(ctx context.Context, productID int64, in AddImageInput) (model.ProductImage, error) {
	if productID <= 0 {
		return model.ProductImage{}, NewValidationError("invalid id")
	}
	url := strings.TrimSpace(in.URL)
	if url == "" || len(url) > 500 {
		return model.ProductImage{}, NewValidationError("invalid url")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.ProductImage{}, NewNotFoundError("not found")
		}
		return model.ProductImage{}, NewIntegrityError("db error")
	}

	img, err := u.imageRepo.Create(ctx, model.ProductImage{ProductID: productID, URL: url})
	if err != nil {
		return model.ProductImage{}, NewIntegrityError("db error")
	}
	return img, nil
}

func (u *ProductUsecase) ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	if productID <= 0 {
		return []model.ProductImage{}, NewValidationError("invalid id")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return []model.ProductImage{}, NewNotFoundError("not found")
		}
		return []model.ProductImage{}, NewIntegrityError("db error")
	}

	imgs, err := u.imageRepo.ListByProductID(ctx, productID)
	if err != nil {
		return []model.ProductImage{}, NewIntegrityError("db error")
	}
	return imgs, nil
}

func validateProductInput(in CreateProductInput) error {
	if strings.TrimSpace(in.Title) == "" || len(in.Title) > 100 {
		return NewValidationError("invalid title")
	}
	if in.Price.IsNegative() {
		return NewValidationError("price must be >= 0")
	}
	if in.Inventory < 0 {
		return NewValidationError("inventory must be >= 0")
	}
	if in.CollectionID <= 0 {
		return NewValidationError("invalid collection_id")
	}
	return nil
}
