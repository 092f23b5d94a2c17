// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// =============================================================================
// LOGIN / SIGNUP
// =============================================================================

// LoginResult is the backend's successful login response. UserID arrives
// as a JSON number but is kept as text since the session store persists
// strings.
type LoginResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Name        string      `json:"name"`
	UserID      json.Number `json:"userID"`
	Role        string      `json:"role"`
}

// Login authenticates with the backend. The caller is responsible for
// handing the result to session.Manager.Login; keeping the two steps
// separate lets tests drive the session model without a network.
func (c *Client) Login(ctx context.Context, id, password string) (*LoginResult, error) {
	req := struct {
		ID       string `json:"ID"`
		Password string `json:"password"`
	}{ID: id, Password: password}

	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignupRequest carries the registration fields.
type SignupRequest struct {
	ID       string `json:"ID"`
	Password string `json:"password"`
	Name     string `json:"name"`
	BirthDay string `json:"bdate"` // YYYY-MM-DD
	Phone    string `json:"phone"`
}

// Account is the backend's public view of a user account.
type Account struct {
	UserID   int    `json:"userID"`
	ID       string `json:"ID"`
	Name     string `json:"name"`
	BirthDay string `json:"bdate"`
	Phone    string `json:"phone"`
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPost, "/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckID reports whether a login id is still available.
func (c *Client) CheckID(ctx context.Context, id string) (bool, error) {
	var out struct {
		Available bool `json:"available"`
	}
	err := c.do(ctx, http.MethodGet, "/check-id"+query(map[string]string{"ID": id}), nil, &out)
	if err != nil {
		return false, err
	}
	return out.Available, nil
}

// =============================================================================
// ACCOUNT RECOVERY
// =============================================================================

// FindID looks up a login id by registered name and phone number.
func (c *Client) FindID(ctx context.Context, name, phone string) (string, error) {
	req := struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}{Name: name, Phone: phone}

	var out struct {
		ID string `json:"ID"`
	}
	if err := c.do(ctx, http.MethodPost, "/find-id", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// PasswordResetStart verifies identity and returns a short-lived reset
// token for PasswordResetConfirm.
func (c *Client) PasswordResetStart(ctx context.Context, id, name, phone string) (string, error) {
	req := struct {
		ID    string `json:"ID"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}{ID: id, Name: name, Phone: phone}

	var out struct {
		ResetToken string `json:"reset_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/password/reset-start", req, &out); err != nil {
		return "", err
	}
	return out.ResetToken, nil
}

// PasswordResetConfirm sets a new password using a reset token.
func (c *Client) PasswordResetConfirm(ctx context.Context, resetToken, newPassword string) error {
	req := struct {
		ResetToken  string `json:"reset_token"`
		NewPassword string `json:"new_password"`
	}{ResetToken: resetToken, NewPassword: newPassword}

	return c.do(ctx, http.MethodPost, "/password/reset-confirm", req, nil)
}

// =============================================================================
// MY PAGE
// =============================================================================

// MyPage fetches the logged-in user's account. Protected: a rejected
// session forces a logout before the error returns.
func (c *Client) MyPage(ctx context.Context) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodGet, "/mypage", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
