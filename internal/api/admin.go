// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// =============================================================================
// ADMIN USER MANAGEMENT
// =============================================================================

// AdminUser is one row of the admin user table.
type AdminUser struct {
	UserID    int        `json:"userID"`
	ID        string     `json:"ID"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	BirthDay  string     `json:"bdate"`
	Role      string     `json:"role"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *Timestamp `json:"deleted_at"`
	CreatedAt Timestamp  `json:"created_at"`
}

// AdminUserList is one page of the user table.
type AdminUserList struct {
	Total int         `json:"total"`
	Items []AdminUser `json:"items"`
}

// User list status filters accepted by ListUsers.
const (
	UserFilterActive  = "active"
	UserFilterDeleted = "deleted"
	UserFilterAll     = "all"
)

// ListUsers fetches a page of the user table. status is one of the
// UserFilter constants; q is an optional name/id search. Admin only: the
// backend answers 403 for non-admin sessions.
func (c *Client) ListUsers(ctx context.Context, status, q string, page, size int) (*AdminUserList, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	path := "/admin/users" + query(map[string]string{
		"status": status,
		"q":      q,
		"page":   strconv.Itoa(page),
		"size":   strconv.Itoa(size),
	})

	var out AdminUserList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SoftDeleteUser marks a user as withdrawn without removing the record.
func (c *Client) SoftDeleteUser(ctx context.Context, userID int) (*AdminUser, error) {
	var out AdminUser
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/soft-delete", userID), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RestoreUser reverses a soft delete.
func (c *Client) RestoreUser(ctx context.Context, userID int) (*AdminUser, error) {
	var out AdminUser
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/restore", userID), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// HardDeleteUser permanently removes a user record.
func (c *Client) HardDeleteUser(ctx context.Context, userID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", userID), nil, nil)
}
