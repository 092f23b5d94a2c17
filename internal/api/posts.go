// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
)

// =============================================================================
// POSTS
// =============================================================================

// Post is a board post as the backend returns it.
type Post struct {
	PostID     int       `json:"post_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  Timestamp `json:"created_at"`
	UserID     int       `json:"user_id"`
	AuthorName string    `json:"author_name"`
}

// ListPosts fetches all posts, newest first per backend ordering.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(ctx context.Context, postID int) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePost writes a new post. Protected.
func (c *Client) CreatePost(ctx context.Context, title, content string) (*Post, error) {
	req := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{Title: title, Content: content}

	var out Post
	if err := c.do(ctx, http.MethodPost, "/posts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePost edits an owned post. Protected; the backend enforces
// ownership and answers 403 for anyone else's post.
func (c *Client) UpdatePost(ctx context.Context, postID int, title, content string) (*Post, error) {
	req := struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}{Title: title, Content: content}

	var out Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", postID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePost removes an owned post. Protected.
func (c *Client) DeletePost(ctx context.Context, postID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), nil, nil)
}

// =============================================================================
// COMMENTS
// =============================================================================

// Comment is a post comment as the backend returns it.
type Comment struct {
	CommentID  int       `json:"comment_id"`
	PostID     int       `json:"post_id"`
	UserID     int       `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  Timestamp `json:"created_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
}

// ListComments fetches a post's comments in creation order.
func (c *Client) ListComments(ctx context.Context, postID int) ([]Comment, error) {
	var out []Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment adds a comment to a post. Protected.
func (c *Client) CreateComment(ctx context.Context, postID int, content string) (*Comment, error) {
	req := struct {
		Content string `json:"content"`
	}{Content: content}

	var out Comment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment edits an owned comment. Protected.
func (c *Client) UpdateComment(ctx context.Context, commentID int, content string) (*Comment, error) {
	req := struct {
		Content string `json:"content"`
	}{Content: content}

	var out Comment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", commentID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes an owned comment. Protected.
func (c *Client) DeleteComment(ctx context.Context, commentID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", commentID), nil, nil)
}
