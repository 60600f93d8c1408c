package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rublebank/rubank/internal/model"
)

const (
	ActionLogin    = "login"
	ActionRegister = "register"
)

// Config holds the endpoint URLs of the three remote services.
type Config struct {
	AuthURL         string
	TransactionsURL string
	BalanceURL      string
}

// Client wraps the raw HTTP calls to the banking endpoints with JSON
// decoding and error classification. Calls are never retried.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient, logger: logger}
}

// Authenticate performs a login or registration and returns the full
// Identity on success. The server reports failure either as a non-2xx
// response or as {success:false}; both carry an error message that is
// surfaced verbatim.
func (c *Client) Authenticate(ctx context.Context, action string, creds model.Credentials) (*model.Identity, error) {
	body := struct {
		Action   string `json:"action"`
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name,omitempty"`
	}{
		Action:   action,
		Username: creds.Username,
		Password: creds.Password,
		FullName: creds.FullName,
	}

	resp, err := c.postJSON(ctx, c.cfg.AuthURL, body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	var result struct {
		Success bool            `json:"success"`
		Error   string          `json:"error"`
		User    *model.Identity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &NetworkError{Err: err}
	}

	if !result.Success || result.User == nil {
		c.logger.Debug("Authentication rejected",
			zap.String("action", action),
			zap.String("username", creds.Username))
		return nil, &AuthError{Message: result.Error}
	}

	return result.User, nil
}

// ListTransactions fetches the user's transfer history. An absent or
// empty list is a valid empty result, not an error.
func (c *Client) ListTransactions(ctx context.Context, userID int64) ([]model.TransactionRecord, error) {
	resp, err := c.getForUser(ctx, c.cfg.TransactionsURL, userID)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var result struct {
		Transactions []model.TransactionRecord `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &FetchError{Err: err}
	}

	if result.Transactions == nil {
		return []model.TransactionRecord{}, nil
	}
	return result.Transactions, nil
}

// ReadBalance fetches the user's current balance. A response without a
// balance field reports ok=false so the caller keeps its cached value.
func (c *Client) ReadBalance(ctx context.Context, userID int64) (decimal.Decimal, bool, error) {
	resp, err := c.getForUser(ctx, c.cfg.BalanceURL, userID)
	if err != nil {
		return decimal.Zero, false, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, false, &FetchError{Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var result struct {
		Balance *float64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, false, &FetchError{Err: err}
	}

	if result.Balance == nil {
		return decimal.Zero, false, nil
	}
	return decimal.NewFromFloat(*result.Balance), true, nil
}

// Transfer submits a transfer and returns the sender's authoritative
// post-transfer balance. The recipient's balance is never reported.
func (c *Client) Transfer(ctx context.Context, fromUserID int64, toUsername string, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	body := struct {
		FromUserID  int64   `json:"from_user_id"`
		ToUsername  string  `json:"to_username"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
	}{
		FromUserID:  fromUserID,
		ToUsername:  toUsername,
		Amount:      amount.InexactFloat64(),
		Description: description,
	}

	resp, err := c.postJSON(ctx, c.cfg.TransactionsURL, body)
	if err != nil {
		return decimal.Zero, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	var result struct {
		Success    bool     `json:"success"`
		Error      string   `json:"error"`
		NewBalance *float64 `json:"new_balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, &NetworkError{Err: err}
	}

	if !result.Success || result.NewBalance == nil {
		c.logger.Debug("Transfer rejected",
			zap.String("to_username", toUsername),
			zap.String("error", result.Error))
		return decimal.Zero, &TransferError{Message: result.Error}
	}

	return decimal.NewFromFloat(*result.NewBalance), nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

func (c *Client) getForUser(ctx context.Context, endpoint string, userID int64) (*http.Response, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("user_id", strconv.FormatInt(userID, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	return c.http.Do(req)
}
