package blockchain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/amount"
	sdkcrypto "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/crypto"
)

// TaskStoreResource is the fully qualified type of the per-account bounty store.
func TaskStoreResource(moduleAddress string) string {
	return moduleAddress + "::task_bounty::TaskStore"
}

// RawBalance returns the account's coin balance body exactly as the node sent it.
func (c *Client) RawBalance(ctx context.Context, address string) (string, error) {
	addr, err := sdkcrypto.NormalizeAddress(address)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("/v1/accounts/%s/balance/%s", addr, c.config.CoinType)
	status, body, err := c.get(ctx, path)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", c.httpError(path, status, body)
	}
	return string(body), nil
}

// Balance returns the account's balance in display units. A body that is not a
// number yields types.ErrInvalidBalance.
func (c *Client) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	raw, err := c.RawBalance(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.FromOctas(raw)
}

// ResourceExists reports whether the account holds a resource of the given type.
// 200 means yes and 404 means no; any other status is an error.
func (c *Client) ResourceExists(ctx context.Context, address, resourceType string) (bool, error) {
	addr, err := sdkcrypto.NormalizeAddress(address)
	if err != nil {
		return false, err
	}
	path := fmt.Sprintf("/v1/accounts/%s/resource/%s", addr, url.QueryEscape(resourceType))
	status, body, err := c.get(ctx, path)
	if err != nil {
		return false, err
	}
	switch status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, c.httpError(path, status, body)
	}
}

// TaskStoreExists checks for the bounty store under the configured module.
func (c *Client) TaskStoreExists(ctx context.Context, address string) (bool, error) {
	return c.ResourceExists(ctx, address, TaskStoreResource(c.config.ModuleAddress))
}

// ModuleAddress returns the configured contract account.
func (c *Client) ModuleAddress() string { return c.config.ModuleAddress }

func nodeMessage(body []byte) string {
	var e struct {
		Message   string `json:"message"`
		ErrorCode string `json:"error_code"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if e.ErrorCode != "" && e.Message != "" {
		return e.ErrorCode + ": " + e.Message
	}
	return e.Message
}
