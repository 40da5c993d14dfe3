package collector

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"TradeSentinel/internal/model"
)

// DefaultCoinbaseURL is the Coinbase Exchange REST endpoint.
const DefaultCoinbaseURL = "https://api.exchange.coinbase.com"

// maxCandles is the most candles the exchange returns per request.
const maxCandles = 300

// CoinbaseCredentials authenticate private endpoints.
type CoinbaseCredentials struct {
	Key        string
	Secret     string // base64 encoded
	Passphrase string
}

// CoinbaseClient implements Exchange using the Coinbase Exchange REST API.
type CoinbaseClient struct {
	client *resty.Client
	creds  CoinbaseCredentials
	now    func() time.Time
}

// NewCoinbaseClient creates a client with optional proxy support.
func NewCoinbaseClient(baseURL string, creds CoinbaseCredentials, proxyURL string) *CoinbaseClient {
	if baseURL == "" {
		baseURL = DefaultCoinbaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("User-Agent", "TradeSentinel")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &CoinbaseClient{client: client, creds: creds, now: time.Now}
}

func (c *CoinbaseClient) Name() string { return "coinbase" }

type cbTicker struct {
	Price decimal.Decimal `json:"price"`
	Time  time.Time       `json:"time"`
}

// Ticker fetches the last trade price of productID.
func (c *CoinbaseClient) Ticker(ctx context.Context, productID string) (model.Ticker, error) {
	var t cbTicker
	if err := c.do(ctx, http.MethodGet, "/products/"+productID+"/ticker", nil, nil, &t); err != nil {
		return model.Ticker{}, fmt.Errorf("ticker %s: %w", productID, err)
	}
	if !t.Price.IsPositive() {
		return model.Ticker{}, fmt.Errorf("ticker %s: non-positive price %s", productID, t.Price)
	}
	return model.Ticker{ProductID: productID, Price: t.Price, Time: t.Time}, nil
}

// Candles fetches the most recent bars candles ending now.
func (c *CoinbaseClient) Candles(ctx context.Context, productID string, granularity time.Duration, bars int) ([]model.OHLCV, error) {
	if bars <= 0 || bars > maxCandles {
		return nil, fmt.Errorf("candles %s: bar count %d out of range [1, %d]", productID, bars, maxCandles)
	}
	end := c.now().UTC()
	start := end.Add(-time.Duration(bars) * granularity)
	query := url.Values{
		"granularity": {strconv.Itoa(int(granularity.Seconds()))},
		"start":       {start.Format(time.RFC3339)},
		"end":         {end.Format(time.RFC3339)},
	}

	var rows [][]float64
	if err := c.do(ctx, http.MethodGet, "/products/"+productID+"/candles", query, nil, &rows); err != nil {
		return nil, fmt.Errorf("candles %s: %w", productID, err)
	}
	history, err := model.BarsFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("candles %s: %w", productID, err)
	}
	if len(history) > bars {
		history = history[:bars]
	}
	return history, nil
}

type cbAccount struct {
	ID        string          `json:"id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Available decimal.Decimal `json:"available"`
}

// Accounts lists the wallets of the authenticated profile.
func (c *CoinbaseClient) Accounts(ctx context.Context) ([]model.Account, error) {
	var raw []cbAccount
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("accounts: %w", err)
	}
	accounts := make([]model.Account, len(raw))
	for i, a := range raw {
		accounts[i] = model.Account{ID: a.ID, Currency: a.Currency, Balance: a.Balance, Available: a.Available}
	}
	return accounts, nil
}

type cbOrderRequest struct {
	Type      string `json:"type"`
	Side      string `json:"side"`
	ProductID string `json:"product_id"`
	ClientOID string `json:"client_oid,omitempty"`
	Funds     string `json:"funds,omitempty"`
	Size      string `json:"size,omitempty"`
	Price     string `json:"price,omitempty"`
	Stop      string `json:"stop,omitempty"`
	StopPrice string `json:"stop_price,omitempty"`
}

type cbOrderResponse struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	FilledSize decimal.Decimal `json:"filled_size"`
}

func orderRequest(o model.Order) cbOrderRequest {
	req := cbOrderRequest{
		Type:      string(o.Kind),
		Side:      string(o.Side),
		ProductID: o.ProductID,
		ClientOID: o.ClientOID,
	}
	switch {
	case o.Market != nil && o.Market.Funds.IsPositive():
		req.Funds = o.Market.Funds.String()
	case o.Market != nil:
		req.Size = o.Market.Size.String()
	case o.Limit != nil:
		req.Price = o.Limit.Price.String()
		req.Size = o.Limit.Size.String()
		req.Stop = string(o.Limit.Stop)
		req.StopPrice = o.Limit.StopPrice.String()
	}
	return req
}

// PlaceOrder submits order. Malformed orders are rejected before any request is sent.
func (c *CoinbaseClient) PlaceOrder(ctx context.Context, order model.Order) (model.OrderResult, error) {
	if err := order.Validate(); err != nil {
		return model.OrderResult{}, err
	}
	var resp cbOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", nil, orderRequest(order), &resp); err != nil {
		return model.OrderResult{}, fmt.Errorf("place %s %s order: %w", order.Kind, order.Side, err)
	}
	return model.OrderResult{
		OrderID:    resp.ID,
		ClientOID:  order.ClientOID,
		Status:     resp.Status,
		FilledSize: resp.FilledSize,
		Success:    true,
	}, nil
}

type cbError struct {
	Message string `json:"message"`
}

func (c *CoinbaseClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	requestPath := path
	if len(query) > 0 {
		requestPath += "?" + query.Encode()
	}
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req := c.client.R().SetContext(ctx)
	if c.creds.Key != "" {
		headers, err := c.sign(method, requestPath, payload)
		if err != nil {
			return err
		}
		req.SetHeaders(headers)
	}
	if payload != nil {
		req.SetBody(payload)
	}

	resp, err := req.Execute(method, requestPath)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		var apiErr cbError
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("API error %d: %s", resp.StatusCode(), apiErr.Message)
		}
		return fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// sign produces the CB-ACCESS headers: a base64 HMAC-SHA256 of
// timestamp + method + requestPath + body keyed with the decoded secret.
func (c *CoinbaseClient) sign(method, requestPath string, body []byte) (map[string]string, error) {
	key, err := base64.StdEncoding.DecodeString(c.creds.Secret)
	if err != nil {
		return nil, fmt.Errorf("decode api secret: %w", err)
	}
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(timestamp + method + requestPath + string(body)))
	return map[string]string{
		"CB-ACCESS-KEY":        c.creds.Key,
		"CB-ACCESS-SIGN":       base64.StdEncoding.EncodeToString(mac.Sum(nil)),
		"CB-ACCESS-TIMESTAMP":  timestamp,
		"CB-ACCESS-PASSPHRASE": c.creds.Passphrase,
	}, nil
}
