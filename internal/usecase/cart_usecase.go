package usecase

import (
	"context"
	"errors"

	repo "storefront/internal/repository"

	"storefront/internal/domain/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartUsecase は /carts の業務ロジックです。
// カートはログイン不要で、推測できないIDを知っていることが所有の証明になります。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	idGen        IDGenerator
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	idGen IDGenerator,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		idGen:        idGen,
	}
}

type CartItemResponse struct {
	ID        int64           `json:"id"`
	Product   ProductSummary  `json:"product"`
	Quantity  int64           `json:"quantity"`
	ItemTotal decimal.Decimal `json:"item_total"`
}

// カートの合計は現在の商品価格で計算する。スナップショットするのは注文だけ。
type CartResponse struct {
	CartID    string             `json:"cart_id"`
	Items     []CartItemResponse `json:"items"`
	CartTotal decimal.Decimal    `json:"cart_total"`
}

type AddCartItemInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// CreateCart は空カートを作る。IDはランダムUUID（連番にしない）。
func (u *CartUsecase) CreateCart(ctx context.Context) (CartResponse, error) {
	cart, err := u.cartRepo.Create(ctx, model.Cart{ID: u.idGen.NewID()})
	if err != nil {
		return CartResponse{}, NewIntegrityError("db error")
	}

	return CartResponse{CartID: cart.ID, Items: []CartItemResponse{}, CartTotal: decimal.Zero}, nil
}

func (u *CartUsecase) GetCart(ctx context.Context, cartID string) (CartResponse, error) {
	if err := validateCartID(cartID); err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewNotFoundError("cart not found")
	}
	if err != nil {
		return CartResponse{}, NewIntegrityError("db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

func (u *CartUsecase) DeleteCart(ctx context.Context, cartID string) error {
	if err := validateCartID(cartID); err != nil {
		return err
	}

	err := u.cartRepo.Delete(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("cart not found")
	}
	if err != nil {
		return NewIntegrityError("db error")
	}
	return nil
}

// AddItem はカートに追加。(cart, product)が既に在れば数量を「置き換える」。
// 加算ではない。増やしたいクライアントは現在値を読んでから送る。
func (u *CartUsecase) AddItem(ctx context.Context, cartID string, in AddCartItemInput) (CartResponse, error) {
	if err := validateCartID(cartID); err != nil {
		return CartResponse{}, err
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewValidationError("invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewValidationError("invalid quantity")
	}

	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewNotFoundError("cart not found")
	}
	if err != nil {
		return CartResponse{}, NewIntegrityError("db error")
	}

	//商品チェック
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewValidationError("invalid product_id")
		}
		return CartResponse{}, NewIntegrityError("db error")
	}

	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewIntegrityError("db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更（直接セット）。
func (u *CartUsecase) UpdateItem(ctx context.Context, cartID string, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if err := validateCartID(cartID); err != nil {
		return CartResponse{}, err
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewValidationError("invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewValidationError("invalid quantity")
	}

	owned, err := u.cartItemRepo.BelongsToCart(ctx, cartItemID, cartID)
	if err != nil {
		return CartResponse{}, NewIntegrityError("db error")
	}
	if !owned {
		return CartResponse{}, NewNotFoundError("not found")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewNotFoundError("not found")
		}
		return CartResponse{}, NewIntegrityError("db error")
	}

	return u.buildCartResponse(ctx, cartID)
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, cartID string, cartItemID int64) (CartResponse, error) {
	if err := validateCartID(cartID); err != nil {
		return CartResponse{}, err
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewValidationError("invalid id")
	}

	owned, err := u.cartItemRepo.BelongsToCart(ctx, cartItemID, cartID)
	if err != nil {
		return CartResponse{}, NewIntegrityError("db error")
	}
	if !owned {
		return CartResponse{}, NewNotFoundError("not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewNotFoundError("not found")
		}
		return CartResponse{}, NewIntegrityError("db error")
	}

	return u.buildCartResponse(ctx, cartID)
}

// cartIDの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID string) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewIntegrityError("db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}

		itemTotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			Product:   ProductSummary{ID: p.ID, Title: p.Title, Price: p.Price},
			Quantity:  it.Quantity,
			ItemTotal: itemTotal,
		})

		total = total.Add(itemTotal)
	}

	return CartResponse{CartID: cartID, Items: respItems, CartTotal: total}, nil
}

func validateCartID(cartID string) error {
	if _, err := uuid.Parse(cartID); err != nil {
		return NewValidationError("invalid cart_id")
	}
	return nil
}
