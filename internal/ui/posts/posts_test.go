// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package posts

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/session"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

type stubBoard struct {
	listCalls int
	posts     []api.Post
	comments  []api.Comment
	err       error

	created        []string
	updated        map[int]string
	deletedPosts   []int
	commented      map[int]string
	editedComments map[int]string
	deletedComms   []int
}

func (s *stubBoard) ListPosts(_ context.Context) ([]api.Post, error) {
	s.listCalls++
	return s.posts, s.err
}

func (s *stubBoard) GetPost(_ context.Context, postID int) (*api.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.posts {
		if s.posts[i].PostID == postID {
			return &s.posts[i], nil
		}
	}
	return nil, api.ErrNotFound
}

func (s *stubBoard) CreatePost(_ context.Context, title, content string) (*api.Post, error) {
	s.created = append(s.created, title)
	return &api.Post{PostID: 99, Title: title, Content: content}, s.err
}

func (s *stubBoard) UpdatePost(_ context.Context, postID int, title, _ string) (*api.Post, error) {
	if s.updated == nil {
		s.updated = map[int]string{}
	}
	s.updated[postID] = title
	return &api.Post{PostID: postID, Title: title}, s.err
}

func (s *stubBoard) DeletePost(_ context.Context, postID int) error {
	s.deletedPosts = append(s.deletedPosts, postID)
	return s.err
}

func (s *stubBoard) ListComments(_ context.Context, _ int) ([]api.Comment, error) {
	return s.comments, s.err
}

func (s *stubBoard) CreateComment(_ context.Context, postID int, content string) (*api.Comment, error) {
	if s.commented == nil {
		s.commented = map[int]string{}
	}
	s.commented[postID] = content
	return &api.Comment{CommentID: 50, PostID: postID, Content: content}, s.err
}

func (s *stubBoard) UpdateComment(_ context.Context, commentID int, content string) (*api.Comment, error) {
	if s.editedComments == nil {
		s.editedComments = map[int]string{}
	}
	s.editedComments[commentID] = content
	return &api.Comment{CommentID: commentID, Content: content}, s.err
}

func (s *stubBoard) DeleteComment(_ context.Context, commentID int) error {
	s.deletedComms = append(s.deletedComms, commentID)
	return s.err
}

// signedInAs builds a session whose decoded subject is user 7.
func signedInAs7(t *testing.T) *session.Manager {
	t.Helper()
	sess := session.NewManager(session.NewMemStore())
	// {"alg":"HS256","typ":"JWT"} . {"sub":"7","role":"user"} . sig
	token := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiI3Iiwicm9sZSI6InVzZXIifQ." +
		"c2ln"
	if err := sess.Login(token, "Kim Jiyoung", "user", "7"); err != nil {
		t.Fatal(err)
	}
	return sess
}

func boardFixture() *stubBoard {
	return &stubBoard{
		posts: []api.Post{
			{PostID: 1, Title: "Mine", Content: "my body", UserID: 7, AuthorName: "Kim Jiyoung"},
			{PostID: 2, Title: "Theirs", Content: "their body", UserID: 3, AuthorName: "Lee"},
		},
		comments: []api.Comment{
			{CommentID: 10, PostID: 2, UserID: 7, AuthorName: "Kim Jiyoung", Content: "mine too"},
			{CommentID: 11, PostID: 2, UserID: 3, AuthorName: "Lee", Content: "not yours"},
		},
	}
}

func loaded(t *testing.T, board *stubBoard) Model {
	t.Helper()
	m := New(styles.NewTheme(), board, signedInAs7(t))
	msg := m.Init()()
	m, _ = m.Update(msg)
	return m
}

// opened drives the view into the detail mode for postID.
func opened(t *testing.T, board *stubBoard, postID int) Model {
	t.Helper()
	m := loaded(t, board)
	msg := m.openCmd(postID)()
	m, _ = m.Update(msg)
	if m.mode != modeDetail {
		t.Fatalf("mode = %v, want detail", m.mode)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// LIST
// =============================================================================

func TestInitLoadsBoard(t *testing.T) {
	board := boardFixture()
	m := loaded(t, board)

	if board.listCalls != 1 {
		t.Errorf("listCalls = %d", board.listCalls)
	}
	if len(m.posts) != 2 {
		t.Fatalf("loaded %d posts", len(m.posts))
	}
	if !strings.Contains(m.View(), "Board (2 posts)") {
		t.Error("list header should count posts")
	}
}

func TestEnterOpensSelectedPost(t *testing.T) {
	board := boardFixture()
	m := loaded(t, board)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should issue an open command")
	}
	m, _ = m.Update(cmd())

	if m.mode != modeDetail || m.current == nil || m.current.PostID != 1 {
		t.Fatalf("detail should show the first row, got %+v", m.current)
	}
	if got := m.View(); !strings.Contains(got, "my body") || !strings.Contains(got, "Comments") {
		t.Error("detail should render content and the comment section")
	}
}

func TestListErrorSurfaces(t *testing.T) {
	board := &stubBoard{err: api.ErrServer}
	m := loaded(t, board)

	if m.errText == "" {
		t.Error("load failure should surface an error message")
	}
	if !strings.Contains(m.View(), m.errText) {
		t.Error("error text should be rendered")
	}
}

// =============================================================================
// COMPOSE
// =============================================================================

func TestWriteCreatesPostAndReloads(t *testing.T) {
	board := boardFixture()
	m := loaded(t, board)

	m, _ = m.Update(key("w"))
	if m.mode != modeCompose {
		t.Fatal("w should open the compose form")
	}

	m.titleInput.SetValue("Hello board")
	m.bodyInput.SetValue("first post")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s should issue a save command")
	}
	m, cmd = m.Update(cmd())

	if len(board.created) != 1 || board.created[0] != "Hello board" {
		t.Errorf("created = %v", board.created)
	}
	if m.mode != modeList {
		t.Error("a saved post should return to the list")
	}
	if cmd == nil {
		t.Error("the list should reload after a save")
	}
}

func TestComposeRejectsEmptyFields(t *testing.T) {
	board := boardFixture()
	m := loaded(t, board)

	m, _ = m.Update(key("w"))
	m.titleInput.SetValue("Title only")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	if cmd != nil || m.busy {
		t.Error("an empty body should not submit")
	}
	if len(board.created) != 0 {
		t.Error("backend must not be called")
	}
}

func TestEditOwnPostPrefillsForm(t *testing.T) {
	board := boardFixture()
	m := opened(t, board, 1)

	m, _ = m.Update(key("e"))
	if m.mode != modeCompose {
		t.Fatal("e on an owned post should open the compose form")
	}
	if m.titleInput.Value() != "Mine" || m.bodyInput.Value() != "my body" {
		t.Error("edit should prefill the owned post")
	}

	m.titleInput.SetValue("Mine, revised")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(cmd())

	if board.updated[1] != "Mine, revised" {
		t.Errorf("updated = %v", board.updated)
	}
}

func TestEditForeignPostIgnored(t *testing.T) {
	board := boardFixture()
	m := opened(t, board, 2)

	m, cmd := m.Update(key("e"))
	if m.mode != modeDetail || cmd != nil {
		t.Error("e on someone else's post must be a no-op")
	}
	if strings.Contains(m.detailHelp(), "edit") {
		t.Error("help must not advertise edit for foreign content")
	}
}

func TestDeleteOwnPostReturnsToList(t *testing.T) {
	board := boardFixture()
	m := opened(t, board, 1)

	m, cmd := m.Update(key("x"))
	if cmd == nil {
		t.Fatal("x on an owned post should issue a delete command")
	}
	m, _ = m.Update(cmd())

	if len(board.deletedPosts) != 1 || board.deletedPosts[0] != 1 {
		t.Errorf("deletedPosts = %v", board.deletedPosts)
	}
	if m.mode != modeList {
		t.Error("a deleted post should return to the list")
	}
}

// =============================================================================
// COMMENTS
// =============================================================================

func TestCommentSubmitTargetsOpenPost(t *testing.T) {
	board := boardFixture()
	m := opened(t, board, 2)

	m, _ = m.Update(key("c"))
	if m.mode != modeComment {
		t.Fatal("c should open the comment form")
	}

	m.commentInput.SetValue("nice post")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should issue a save command")
	}
	m, cmd = m.Update(cmd())

	if board.commented[2] != "nice post" {
		t.Errorf("commented = %v", board.commented)
	}
	if m.mode != modeDetail || cmd == nil {
		t.Error("a saved comment should reload the open post")
	}
}

func TestCommentCursorGatesOwnership(t *testing.T) {
	board := boardFixture()
	m := opened(t, board, 2)

	// First press selects the first comment, owned by user 7.
	m, _ = m.Update(key("j"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	m, _ = m.Update(key("e"))
	if m.mode != modeComment || m.editingComment != 10 {
		t.Fatal("e should edit the owned comment under the cursor")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	// Second comment belongs to someone else.
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("x"))
	if len(board.deletedComms) != 0 {
		t.Error("x on a foreign comment must not reach the backend")
	}
}

func TestDeleteOwnComment(t *testing.T) {
	board := boardFixture()
	m := opened(t, board, 2)

	m, _ = m.Update(key("j"))
	m, cmd := m.Update(key("x"))
	if cmd == nil {
		t.Fatal("x on an owned comment should issue a delete command")
	}
	m, _ = m.Update(cmd())

	if len(board.deletedComms) != 1 || board.deletedComms[0] != 10 {
		t.Errorf("deletedComms = %v", board.deletedComms)
	}
	if m.mode != modeDetail {
		t.Error("a deleted comment should stay on the post")
	}
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestEscWalksBackToList(t *testing.T) {
	board := boardFixture()
	m := opened(t, board, 2)

	if m.AtRoot() {
		t.Error("detail is not the root")
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeList || !m.AtRoot() {
		t.Error("esc from detail should return to the list")
	}
	if cmd == nil {
		t.Error("returning to the list should reload it")
	}
}
