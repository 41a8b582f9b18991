// Package paper is the REST client for a paperbroker-style brokerage
// service.
package paper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"optiondesk/broker"
	"optiondesk/order"
)

// DefaultBaseURL is where the paperbroker development server listens.
const DefaultBaseURL = "http://127.0.0.1:8231"

// Client talks to the brokerage over HTTP. All endpoints are GETs with
// query-string parameters; that is the service's contract, not a choice
// made here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a brokerage client. baseURL defaults to
// DefaultBaseURL when empty; timeout <= 0 defaults to 30s; log may be
// nil.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// OpenAccount provisions a new brokerage account.
func (c *Client) OpenAccount(ctx context.Context) (broker.Account, error) {
	var acct broker.Account
	if err := c.getJSON(ctx, "/accounts/create", nil, &acct); err != nil {
		return broker.Account{}, fmt.Errorf("open account: %w", err)
	}
	c.log.Debug("opened account", zap.String("account_id", acct.ID))
	return acct, nil
}

// GetAccount fetches the current snapshot of an account.
func (c *Client) GetAccount(ctx context.Context, accountID string) (broker.Account, error) {
	if accountID == "" {
		return broker.Account{}, fmt.Errorf("account id is required")
	}

	var acct broker.Account
	path := "/accounts/" + url.PathEscape(accountID)
	if err := c.getJSON(ctx, path, nil, &acct); err != nil {
		return broker.Account{}, fmt.Errorf("get account %s: %w", accountID, err)
	}
	return acct, nil
}

// Expirations lists the option expiration dates available for an
// underlying symbol.
func (c *Client) Expirations(ctx context.Context, underlying string) ([]string, error) {
	if underlying == "" {
		return nil, fmt.Errorf("underlying symbol is required")
	}

	var dates []string
	path := "/expirations/" + url.PathEscape(underlying)
	if err := c.getJSON(ctx, path, nil, &dates); err != nil {
		return nil, fmt.Errorf("expirations for %s: %w", underlying, err)
	}
	return dates, nil
}

// OptionQuotes lists priced option quotes for an underlying and
// expiration date.
func (c *Client) OptionQuotes(ctx context.Context, underlying, expiration string) ([]broker.Quote, error) {
	if underlying == "" || expiration == "" {
		return nil, fmt.Errorf("underlying symbol and expiration are required")
	}

	var quotes []broker.Quote
	path := "/quotes/" + url.PathEscape(underlying) + "/options/" + url.PathEscape(expiration)
	if err := c.getJSON(ctx, path, nil, &quotes); err != nil {
		return nil, fmt.Errorf("option quotes for %s %s: %w", underlying, expiration, err)
	}
	return quotes, nil
}

// SimulateOrder asks the service to project the account state as if the
// order executed, without committing it.
func (c *Client) SimulateOrder(ctx context.Context, accountID string, ord order.Order) (broker.OrderImpact, error) {
	params := ord.Values()
	params.Set("simulate", "true")

	impact, err := c.createOrder(ctx, accountID, params)
	if err != nil {
		return broker.OrderImpact{}, fmt.Errorf("simulate order: %w", err)
	}
	return impact, nil
}

// EnterOrder commits the order against the account. The response shape
// matches SimulateOrder's.
func (c *Client) EnterOrder(ctx context.Context, accountID string, ord order.Order) (broker.OrderImpact, error) {
	impact, err := c.createOrder(ctx, accountID, ord.Values())
	if err != nil {
		return broker.OrderImpact{}, fmt.Errorf("enter order: %w", err)
	}
	return impact, nil
}

func (c *Client) createOrder(ctx context.Context, accountID string, params url.Values) (broker.OrderImpact, error) {
	if accountID == "" {
		return broker.OrderImpact{}, fmt.Errorf("account id is required")
	}

	var impact broker.OrderImpact
	path := "/accounts/" + url.PathEscape(accountID) + "/orders/create"
	if err := c.getJSON(ctx, path, params, &impact); err != nil {
		return broker.OrderImpact{}, err
	}
	return impact, nil
}

// getJSON issues a GET against the service and decodes the JSON
// response into out. Non-2xx statuses become *broker.ServiceError.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &broker.ServiceError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
