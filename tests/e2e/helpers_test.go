package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// トークンはIDプロバイダが発行する想定なので、e2eでは検証シークレットを
// 共有して自前で署名する。サーバー側と同じJWT_SECRETを使うこと。
func e2eJWTSecret() string {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return v
	}
	return "dev-secret"
}

func bearerToken(t *testing.T, userID int64) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": fmt.Sprintf("%d", userID),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(e2eJWTSecret()))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return signed
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CollectionDTO struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type ProductSummaryDTO struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type ProductImageDTO struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	URL       string `json:"url"`
}

type ProductDTO struct {
	ID              int64             `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Price           decimal.Decimal   `json:"price"`
	DiscountedPrice decimal.Decimal   `json:"discounted_price"`
	Inventory       int64             `json:"inventory"`
	CollectionID    int64             `json:"collection_id"`
	Images          []ProductImageDTO `json:"product_images"`
}

type ProductListDTO struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type CartItemDTO struct {
	ID        int64             `json:"id"`
	Product   ProductSummaryDTO `json:"product"`
	Quantity  int64             `json:"quantity"`
	ItemTotal decimal.Decimal   `json:"item_total"`
}

type CartDTO struct {
	CartID    string          `json:"cart_id"`
	Items     []CartItemDTO   `json:"items"`
	CartTotal decimal.Decimal `json:"cart_total"`
}

type OrderItemDTO struct {
	Product   ProductSummaryDTO `json:"product"`
	Quantity  int64             `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
}

type OrderDTO struct {
	ID       int64           `json:"id"`
	User     int64           `json:"user"`
	Status   string          `json:"status"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placed_at"`
	Items    []OrderItemDTO  `json:"items"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecodeError(t *testing.T, body []byte) ErrorResponse {
	t.Helper()
	var v ErrorResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeCollection(t *testing.T, body []byte) CollectionDTO {
	t.Helper()
	var v CollectionDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(CollectionDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeProduct(t *testing.T, body []byte) ProductDTO {
	t.Helper()
	var v ProductDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ProductDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeProductList(t *testing.T, body []byte) ProductListDTO {
	t.Helper()
	var v ProductListDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ProductListDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeCart(t *testing.T, body []byte) CartDTO {
	t.Helper()
	var v CartDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(CartDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeOrder(t *testing.T, body []byte) OrderDTO {
	t.Helper()
	var v OrderDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(OrderDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeOrders(t *testing.T, body []byte) []OrderDTO {
	t.Helper()
	var v []OrderDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal([]OrderDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

// テストごとにユニークな文字列（タイトル重複を避ける）
func uniqueSuffix() string {
	return time.Now().Format("20060102-150405.000000000")
}

// コレクションを作ってIDを返す
func createCollection(t *testing.T, c *TestClient, ctx context.Context, access string, title string) int64 {
	t.Helper()

	reqJSON, _ := json.Marshal(map[string]string{"title": title})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/collections", access, reqJSON)
	requireStatus(t, resp, http.StatusCreated, body)

	return mustDecodeCollection(t, body).ID
}

// 商品を作ってProductDTOを返す
func createProduct(t *testing.T, c *TestClient, ctx context.Context, access string, collectionID int64, title string, price string, inventory int64) ProductDTO {
	t.Helper()

	reqJSON, _ := json.Marshal(map[string]interface{}{
		"title":         title,
		"description":   "e2e test product",
		"price":         price,
		"inventory":     inventory,
		"collection_id": collectionID,
	})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/products", access, reqJSON)
	requireStatus(t, resp, http.StatusCreated, body)

	return mustDecodeProduct(t, body)
}

func mustPrice(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal.NewFromString(%q) failed: %v", s, err)
	}
	return d
}
