package unit

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type idGenMock struct{ id string }

func (g *idGenMock) NewID() string { return g.id }

func newCartFixture() (*CartRepoMock, *CartItemRepoMock, *ProductRepoMock, *usecase.CartUsecase) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)
	uc := usecase.NewCartUsecase(carts, items, products, &idGenMock{id: testCartID})
	return carts, items, products, uc
}

func TestCartUsecase_CreateCart_UsesRandomID(t *testing.T) {
	carts, _, _, uc := newCartFixture()

	carts.On("Create", mock.Anything, model.Cart{ID: testCartID}).
		Return(model.Cart{ID: testCartID}, nil)

	out, err := uc.CreateCart(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, testCartID, out.CartID)
	assert.Empty(t, out.Items)
	assert.True(t, out.CartTotal.IsZero())
}

// 同じ商品をもう一度入れると数量は「置き換え」になる（加算ではない）。
func TestCartUsecase_AddItem_ReplacesQuantity(t *testing.T) {
	carts, items, products, uc := newCartFixture()

	carts.On("FindByID", mock.Anything, testCartID).Return(model.Cart{ID: testCartID}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Title: "Beans", Price: price("10.00")}, nil)

	//既にqty=3の明細があるが、Upsertにはそのまま5が渡る
	items.On("UpsertByCartAndProduct", mock.Anything, testCartID, int64(10), int64(5)).Return(nil)
	items.On("ListByCartID", mock.Anything, testCartID).Return([]model.CartItem{
		{ID: 1, CartID: testCartID, ProductID: 10, Quantity: 5},
	}, nil)

	out, err := uc.AddItem(context.Background(), testCartID, usecase.AddCartItemInput{ProductID: 10, Quantity: 5})
	assert.NoError(t, err)

	items.AssertCalled(t, "UpsertByCartAndProduct", mock.Anything, testCartID, int64(10), int64(5))
	//8（3+5）で呼ばれていないこと
	items.AssertNotCalled(t, "UpsertByCartAndProduct", mock.Anything, testCartID, int64(10), int64(8))

	if assert.Len(t, out.Items, 1) {
		assert.Equal(t, int64(5), out.Items[0].Quantity)
		assert.True(t, out.Items[0].ItemTotal.Equal(price("50.00")))
	}
	assert.True(t, out.CartTotal.Equal(price("50.00")))
}

func TestCartUsecase_AddItem_InvalidQuantity(t *testing.T) {
	_, items, _, uc := newCartFixture()

	_, err := uc.AddItem(context.Background(), testCartID, usecase.AddCartItemInput{ProductID: 10, Quantity: 0})
	assertErrContains(t, err, "invalid quantity")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	items.AssertNotCalled(t, "UpsertByCartAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddItem_UnknownProduct(t *testing.T) {
	carts, items, products, uc := newCartFixture()

	carts.On("FindByID", mock.Anything, testCartID).Return(model.Cart{ID: testCartID}, nil)
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddItem(context.Background(), testCartID, usecase.AddCartItemInput{ProductID: 99, Quantity: 1})
	assertErrContains(t, err, "invalid product_id")

	items.AssertNotCalled(t, "UpsertByCartAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddItem_CartNotFound(t *testing.T) {
	carts, _, _, uc := newCartFixture()

	carts.On("FindByID", mock.Anything, testCartID).Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.AddItem(context.Background(), testCartID, usecase.AddCartItemInput{ProductID: 10, Quantity: 1})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestCartUsecase_GetCart_MalformedID(t *testing.T) {
	_, _, _, uc := newCartFixture()

	_, err := uc.GetCart(context.Background(), "zzz")
	assertErrContains(t, err, "invalid cart_id")
}

func TestCartUsecase_UpdateItem_InvalidQuantity(t *testing.T) {
	_, items, _, uc := newCartFixture()

	_, err := uc.UpdateItem(context.Background(), testCartID, 1, usecase.UpdateCartItemInput{Quantity: 0})
	assertErrContains(t, err, "invalid quantity")

	items.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateItem_NotInCart(t *testing.T) {
	_, items, _, uc := newCartFixture()

	items.On("BelongsToCart", mock.Anything, int64(1), testCartID).Return(false, nil)

	_, err := uc.UpdateItem(context.Background(), testCartID, 1, usecase.UpdateCartItemInput{Quantity: 2})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)

	items.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateItem_SetsQuantityDirectly(t *testing.T) {
	_, items, products, uc := newCartFixture()

	items.On("BelongsToCart", mock.Anything, int64(1), testCartID).Return(true, nil)
	items.On("UpdateQuantity", mock.Anything, int64(1), int64(7)).Return(nil)
	items.On("ListByCartID", mock.Anything, testCartID).Return([]model.CartItem{
		{ID: 1, CartID: testCartID, ProductID: 10, Quantity: 7},
	}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Price: price("1.50")}, nil)

	out, err := uc.UpdateItem(context.Background(), testCartID, 1, usecase.UpdateCartItemInput{Quantity: 7})
	assert.NoError(t, err)
	assert.True(t, out.CartTotal.Equal(price("10.50")))
}

// カートの表示合計は現在の商品価格で計算される（スナップショットしない）。
func TestCartUsecase_GetCart_TotalFollowsCurrentPrice(t *testing.T) {
	carts, items, products, uc := newCartFixture()

	carts.On("FindByID", mock.Anything, testCartID).Return(model.Cart{ID: testCartID}, nil)
	items.On("ListByCartID", mock.Anything, testCartID).Return([]model.CartItem{
		{ID: 1, CartID: testCartID, ProductID: 10, Quantity: 2},
	}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Price: price("20.00")}, nil).Once()

	out, err := uc.GetCart(context.Background(), testCartID)
	assert.NoError(t, err)
	assert.True(t, out.CartTotal.Equal(price("40.00")))

	//値上げ後はカート合計も追従する
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Price: price("25.00")}, nil)

	out, err = uc.GetCart(context.Background(), testCartID)
	assert.NoError(t, err)
	assert.True(t, out.CartTotal.Equal(price("50.00")))
}
