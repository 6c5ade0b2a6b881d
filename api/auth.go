package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

// Register creates an account. New accounts start unrated.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, "register/", false, registerBody{RegisterRequest: req}, &out)
	return out, err
}

// Login authenticates and persists the login state when the backend returns a
// token.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "login/", false, creds, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		c.logger.Warnf("login for %s returned no token", creds.Username)
		return &out, nil
	}
	err := c.store.SetAuth(ctx, types.AuthContext{
		Token:    out.Token,
		UserID:   out.UserID.String(),
		Username: creds.Username,
		UserRole: out.UserRole,
	})
	if err != nil {
		return &out, fmt.Errorf("persist login: %w", err)
	}
	return &out, nil
}

// Logout ends the backend session. The login state and the wallet session are
// cleared locally whether or not the backend call succeeds.
func (c *Client) Logout(ctx context.Context) (Record, error) {
	var out Record
	callErr := c.do(ctx, http.MethodPost, "logout/", true, struct{}{}, &out)
	if callErr != nil {
		c.logger.Warnf("logout request failed, clearing local session anyway: %v", callErr)
	}
	// The local clear must not share the request's deadline.
	if err := c.store.ClearAll(context.WithoutCancel(ctx)); err != nil {
		return out, errors.Join(callErr, fmt.Errorf("clear session: %w", err))
	}
	return out, callErr
}

// UserDetails fetches the profile of the logged-in user.
func (c *Client) UserDetails(ctx context.Context) (*UserDetails, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	return field[*UserDetails](ctx, c, "get-user-details/"+seg(a.Username), "user_details")
}
