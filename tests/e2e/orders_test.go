package e2e

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"
)

func placeOrderJSON(t *testing.T, cartID string) []byte {
	t.Helper()
	return mustMarshal(t, map[string]string{"cart_id": cartID})
}

// カートを作って商品を入れる
func buildCartWith(t *testing.T, c *TestClient, ctx context.Context, productID int64, qty int64) string {
	t.Helper()

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/carts", "", nil)
	requireStatus(t, resp, http.StatusCreated, body)
	cart := mustDecodeCart(t, body)

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/carts/"+cart.CartID+"/items", "", addItemJSON(t, productID, qty))
	requireStatus(t, resp, http.StatusOK, body)

	return cart.CartID
}

func Test_Orders_PlaceOrder_FullFlow(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := bearerToken(t, 1)

	suffix := uniqueSuffix()
	collectionID := createCollection(t, c, ctx, access, "E2E-Order-"+suffix)
	p := createProduct(t, c, ctx, access, collectionID, "E2E-OrderProduct-"+suffix, "10.00", 50)

	cartID := buildCartWith(t, c, ctx, p.ID, 2)

	//注文確定：201でPENDINGの注文が返る
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/orders", access, placeOrderJSON(t, cartID))
	requireStatus(t, resp, http.StatusCreated, body)

	order := mustDecodeOrder(t, body)
	if order.ID == 0 {
		t.Fatalf("order id is zero")
	}
	if order.Status != "PENDING" {
		t.Fatalf("status=%q want PENDING", order.Status)
	}
	if order.PlacedAt.IsZero() {
		t.Fatalf("placed_at is zero")
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("items=%+v", order.Items)
	}
	if !order.Items[0].UnitPrice.Equal(mustPrice(t, "10.00")) {
		t.Fatalf("unit_price=%s want 10.00", order.Items[0].UnitPrice)
	}
	if !order.Total.Equal(mustPrice(t, "20.00")) {
		t.Fatalf("total=%s want 20.00", order.Total)
	}

	//カートは消えている
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/carts/"+cartID, "", nil)
	requireStatus(t, resp, http.StatusNotFound, body)

	//同じカートで再確定はvalidationエラー
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/orders", access, placeOrderJSON(t, cartID))
	requireStatus(t, resp, http.StatusBadRequest, body)
	_ = mustDecodeError(t, body)

	//確定後に値上げしても明細のunit_priceは変わらない
	patch := mustMarshal(t, map[string]interface{}{
		"title":         "E2E-OrderProduct-" + suffix,
		"description":   "e2e test product",
		"price":         "99.00",
		"inventory":     50,
		"collection_id": collectionID,
	})
	resp, body = c.doJSON(ctx, t, http.MethodPatch, "/products/"+strconv.FormatInt(p.ID, 10), access, patch)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/orders/"+strconv.FormatInt(order.ID, 10), access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	detail := mustDecodeOrder(t, body)
	if !detail.Items[0].UnitPrice.Equal(mustPrice(t, "10.00")) {
		t.Fatalf("unit_price=%s want snapshot 10.00", detail.Items[0].UnitPrice)
	}
	if !detail.Total.Equal(mustPrice(t, "20.00")) {
		t.Fatalf("total=%s want snapshot 20.00", detail.Total)
	}

	//一覧にも出てくる
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/orders", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	found := false
	for _, o := range mustDecodeOrders(t, body) {
		if o.ID == order.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("order %d not in list", order.ID)
	}
}

func Test_Orders_Validation(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := bearerToken(t, 1)

	//認証なしは401
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/orders", "", placeOrderJSON(t, "3f2c9a9e-6e1d-4a58-b2bf-8df6f5c0a0b1"))
	requireStatus(t, resp, http.StatusUnauthorized, body)

	//UUIDでないcart_idは400
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/orders", access, placeOrderJSON(t, "zzz"))
	requireStatus(t, resp, http.StatusBadRequest, body)

	//空カートでは確定できない
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/carts", "", nil)
	requireStatus(t, resp, http.StatusCreated, body)
	emptyCart := mustDecodeCart(t, body)

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/orders", access, placeOrderJSON(t, emptyCart.CartID))
	requireStatus(t, resp, http.StatusBadRequest, body)

	er := mustDecodeError(t, body)
	if er.Error == "" {
		t.Fatalf("error message is empty")
	}

	//空振りの注文ではカートは消えない
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/carts/"+emptyCart.CartID, "", nil)
	requireStatus(t, resp, http.StatusOK, body)
}

// 他人の注文は見えない
func Test_Orders_OwnershipIsolation(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	//userIDはテスト毎に変えて衝突を避ける
	base := time.Now().UnixNano() % 1_000_000
	owner := bearerToken(t, 100_000+base)
	other := bearerToken(t, 200_000+base)

	suffix := uniqueSuffix()
	collectionID := createCollection(t, c, ctx, owner, "E2E-Iso-"+suffix)
	p := createProduct(t, c, ctx, owner, collectionID, "E2E-IsoProduct-"+suffix, "5.00", 10)

	cartID := buildCartWith(t, c, ctx, p.ID, 1)

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/orders", owner, placeOrderJSON(t, cartID))
	requireStatus(t, resp, http.StatusCreated, body)
	order := mustDecodeOrder(t, body)

	//本人は見える
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/orders/"+strconv.FormatInt(order.ID, 10), owner, nil)
	requireStatus(t, resp, http.StatusOK, body)

	//他人には404
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/orders/"+strconv.FormatInt(order.ID, 10), other, nil)
	requireStatus(t, resp, http.StatusNotFound, body)

	//他人の一覧には出ない
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/orders", other, nil)
	requireStatus(t, resp, http.StatusOK, body)
	for _, o := range mustDecodeOrders(t, body) {
		if o.ID == order.ID {
			t.Fatalf("order %d leaked to another user", order.ID)
		}
	}
}
