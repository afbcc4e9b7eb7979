// Package backend is the REST collaborator client for the shop
// platform: product search, order creation and status, merchant
// profiles. It does no retrying of its own; callers decide what a
// failure means.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/tnyamukapa/shopbot/internal/boterr"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "backend").Logger(),
	}
}

type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Reviews      int     `json:"reviews"`
	Category     string  `json:"category"`
	MerchantID   string  `json:"merchant_id"`
	MerchantName string  `json:"merchant_name"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"order_number"`
	Status       string      `json:"status"`
	Total        float64     `json:"total"`
	Items        []OrderItem `json:"items"`
	MerchantName string      `json:"merchant_name"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Merchant struct {
	ID           string  `json:"id"`
	BusinessName string  `json:"business_name"`
	Phone        string  `json:"phone"`
	Rating       float64 `json:"rating"`
	Address      string  `json:"address"`
	Open         bool    `json:"open"`
	Status       string  `json:"status"`
}

type CreateOrderRequest struct {
	CustomerPhone string      `json:"customer_phone"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
}

type SalesReport struct {
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Period  string  `json:"period"`
}

// request performs one JSON round trip. Every call carries the
// caller's context plus the client timeout; a timeout is just another
// failed request.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return boterr.Newf(boterr.NotFound, "not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("backend returned error status")
		return fmt.Errorf("backend: %s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var env dataEnvelope[[]Product]
	if err := c.request(ctx, http.MethodGet, "/api/products", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	var env dataEnvelope[[]Product]
	path := "/api/products/search?q=" + url.QueryEscape(query)
	if err := c.request(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ProductsBy fetches a curated product collection: "deals",
// "trending", "featured".
func (c *Client) ProductsBy(ctx context.Context, collection string) ([]Product, error) {
	var env dataEnvelope[[]Product]
	path := "/api/products?collection=" + url.QueryEscape(collection)
	if err := c.request(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	var env dataEnvelope[Product]
	if err := c.request(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &env); err != nil {
		return Product{}, err
	}
	return env.Data, nil
}

func (c *Client) MerchantProfile(ctx context.Context, id string) (Merchant, error) {
	var env dataEnvelope[Merchant]
	if err := c.request(ctx, http.MethodGet, "/api/merchants/"+url.PathEscape(id), nil, &env); err != nil {
		return Merchant{}, err
	}
	return env.Data, nil
}

func (c *Client) Merchants(ctx context.Context) ([]Merchant, error) {
	var env dataEnvelope[[]Merchant]
	if err := c.request(ctx, http.MethodGet, "/api/merchants", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) UpdateMerchantStatus(ctx context.Context, id, status, reason string) error {
	body := map[string]string{"status": status, "reason": reason}
	return c.request(ctx, http.MethodPost, "/api/merchants/"+url.PathEscape(id)+"/status", body, nil)
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	var env dataEnvelope[Order]
	if err := c.request(ctx, http.MethodPost, "/api/orders", req, &env); err != nil {
		return Order{}, err
	}
	return env.Data, nil
}

func (c *Client) CustomerOrders(ctx context.Context, phone string) ([]Order, error) {
	var env dataEnvelope[[]Order]
	path := "/api/orders?customer=" + url.QueryEscape(phone)
	if err := c.request(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) MerchantOrders(ctx context.Context, phone string) ([]Order, error) {
	var env dataEnvelope[[]Order]
	path := "/api/orders?merchant=" + url.QueryEscape(phone)
	if err := c.request(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) OrderStatus(ctx context.Context, id string) (Order, error) {
	var env dataEnvelope[Order]
	if err := c.request(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &env); err != nil {
		return Order{}, err
	}
	return env.Data, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status, reason string) error {
	body := map[string]string{"status": status, "reason": reason}
	return c.request(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(id)+"/status", body, nil)
}

func (c *Client) RateOrder(ctx context.Context, id string, rating int) error {
	body := map[string]int{"rating": rating}
	return c.request(ctx, http.MethodPost, "/api/orders/"+url.PathEscape(id)+"/rating", body, nil)
}

func (c *Client) Sales(ctx context.Context, merchantPhone string) (SalesReport, error) {
	var env dataEnvelope[SalesReport]
	path := "/api/reports/sales"
	if merchantPhone != "" {
		path += "?merchant=" + url.QueryEscape(merchantPhone)
	}
	if err := c.request(ctx, http.MethodGet, path, nil, &env); err != nil {
		return SalesReport{}, err
	}
	return env.Data, nil
}
