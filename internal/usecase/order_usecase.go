package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewOrderUsecase(tx repo.TransactionManager, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, clock: clock}
}

type PlaceOrderInput struct {
	CartID string
}

type OrderItemOutput struct {
	Product   ProductSummary  `json:"product"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderOutput struct {
	ID       int64             `json:"id"`
	UserID   int64             `json:"user"`
	Status   string            `json:"status"`
	Total    decimal.Decimal   `json:"total"`
	PlacedAt time.Time         `json:"placed_at"`
	Items    []OrderItemOutput `json:"items"`
}

// PlaceOrder はカートを注文に変換する。
// 1トランザクションで、注文作成→明細一括作成（価格スナップショット）→カート削除まで行う。
// 途中で失敗したら全部ロールバック（明細の無い注文は残らない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if _, err := uuid.Parse(in.CartID); err != nil {
		return OrderOutput{}, NewValidationError("invalid cart_id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カートを行ロック付きで取得。同一カートの同時確定は片方がここで落ちる。
		_, err := r.Carts().FindByIDForUpdate(ctx, in.CartID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewValidationError("cart does not exist")
		}
		if err != nil {
			return NewIntegrityError("db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, in.CartID)
		if err != nil {
			return NewIntegrityError("db error")
		}
		if len(cartItems) == 0 {
			return NewValidationError("cannot place order for an empty cart")
		}

		//unit_priceは「この瞬間の」商品価格を写し取る
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		summaries := make(map[int64]ProductSummary, len(cartItems))
		total := decimal.Zero

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewValidationError("product no longer available")
			}
			if err != nil {
				return NewIntegrityError("db error")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				UnitPrice: p.Price,
			})
			summaries[p.ID] = ProductSummary{ID: p.ID, Title: p.Title, Price: p.Price}

			total = total.Add(p.Price.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		now := u.clock.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:   userID,
			Status:   model.OrderStatusPending,
			PlacedAt: now,
		})
		if err != nil {
			return NewIntegrityError("db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewIntegrityError("db error")
		}

		//カートは使い捨て。明細ごと消す。
		if err := r.Carts().Delete(ctx, in.CartID); err != nil {
			return NewIntegrityError("db error")
		}

		created := model.Order{
			ID:       orderID,
			UserID:   userID,
			Status:   model.OrderStatusPending,
			PlacedAt: now,
		}
		out = toOrderOutput(created, orderItems, summaries)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまず固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewIntegrityError("db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewIntegrityError("db error")
			}
			outs = append(outs, toOrderOutput(o, items, loadSummaries(ctx, r, items)))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewValidationError("invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("not found")
		}
		if err != nil {
			return NewIntegrityError("db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewNotFoundError("not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewIntegrityError("db error")
		}

		out = toOrderOutput(o, items, loadSummaries(ctx, r, items))
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 明細が参照する商品の現在情報を引く。ソフトデリート済みはIDだけ残す。
func loadSummaries(ctx context.Context, r repo.TxRepos, items []model.OrderItem) map[int64]ProductSummary {
	summaries := make(map[int64]ProductSummary, len(items))
	for _, it := range items {
		if _, ok := summaries[it.ProductID]; ok {
			continue
		}
		p, err := r.Products().FindByID(ctx, it.ProductID)
		if err != nil {
			summaries[it.ProductID] = ProductSummary{ID: it.ProductID}
			continue
		}
		summaries[it.ProductID] = ProductSummary{ID: p.ID, Title: p.Title, Price: p.Price}
	}
	return summaries
}

func toOrderOutput(o model.Order, items []model.OrderItem, summaries map[int64]ProductSummary) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			Product:   summaries[it.ProductID],
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}

	return OrderOutput{
		ID:       o.ID,
		UserID:   o.UserID,
		Status:   string(o.Status),
		Total:    total,
		PlacedAt: o.PlacedAt,
		Items:    outItems,
	}
}
