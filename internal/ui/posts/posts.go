// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package posts provides the community board view for the customchat
// TUI: the post table, a detail view with comments, and compose forms
// for owned content. The backend enforces ownership on every write; the
// view hides the shortcuts for content the signed-in user does not own
// so a 403 is never the first feedback.
package posts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/session"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
	"github.com/jeranaias/customchat-tui/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// listLoadedMsg carries the board index.
type listLoadedMsg struct {
	posts []api.Post
	err   error
}

// postLoadedMsg carries one post and its comments.
type postLoadedMsg struct {
	post     *api.Post
	comments []api.Comment
	err      error
}

// postSavedMsg signals a finished post write or delete; the board
// reloads after.
type postSavedMsg struct {
	err error
}

// commentDoneMsg signals a finished comment write or delete; the open
// post reloads after.
type commentDoneMsg struct {
	postID int
	err    error
}

// Board is the backend surface the view needs. *api.Client satisfies it.
type Board interface {
	ListPosts(ctx context.Context) ([]api.Post, error)
	GetPost(ctx context.Context, postID int) (*api.Post, error)
	CreatePost(ctx context.Context, title, content string) (*api.Post, error)
	UpdatePost(ctx context.Context, postID int, title, content string) (*api.Post, error)
	DeletePost(ctx context.Context, postID int) error
	ListComments(ctx context.Context, postID int) ([]api.Comment, error)
	CreateComment(ctx context.Context, postID int, content string) (*api.Comment, error)
	UpdateComment(ctx context.Context, commentID int, content string) (*api.Comment, error)
	DeleteComment(ctx context.Context, commentID int) error
}

// =============================================================================
// MODEL
// =============================================================================

// boardMode selects what the view shows. List is the root; esc walks
// every other mode back toward it.
type boardMode int

const (
	modeList boardMode = iota
	modeDetail
	modeCompose
	modeComment
)

// cursorPost marks the post itself as the detail selection, so the
// edit and delete shortcuts target the post instead of a comment.
const cursorPost = -1

// Model is the Bubble Tea model for the board view.
type Model struct {
	theme   *styles.Theme
	client  Board
	session *session.Manager

	mode  boardMode
	table table.Model
	posts []api.Post

	current  *api.Post
	comments []api.Comment
	// cursor selects what e/x act on in the detail view: cursorPost for
	// the post, otherwise an index into comments.
	cursor int

	// Compose form. editingPost is the id being edited, zero for a new
	// post.
	titleInput  textinput.Model
	bodyInput   textarea.Model
	composeBody bool
	editingPost int

	// Comment form. editingComment is the id being edited, zero for a
	// new comment.
	commentInput   textinput.Model
	editingComment int

	busy    bool
	errText string

	width  int
	height int
}

// New creates the board view.
func New(theme *styles.Theme, client Board, sess *session.Manager) Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Title", Width: 36},
		{Title: "Author", Width: 14},
		{Title: "Posted", Width: 10},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(styles.TextSecondary).
		BorderBottom(true)
	s.Selected = theme.TableSelected
	tbl.SetStyles(s)

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Title"
	title.CharLimit = 120

	body := textarea.New()
	body.Placeholder = "Write your post..."
	body.CharLimit = 0

	comment := textinput.New()
	comment.Prompt = ""
	comment.Placeholder = "Write a comment..."
	comment.CharLimit = 500

	return Model{
		theme:        theme,
		client:       client,
		session:      sess,
		table:        tbl,
		cursor:       cursorPost,
		titleInput:   title,
		bodyInput:    body,
		commentInput: comment,
	}
}

// Init triggers the initial board load.
func (m Model) Init() tea.Cmd {
	return m.loadListCmd()
}

// AtRoot reports whether esc should leave the board entirely instead of
// walking back one mode.
func (m Model) AtRoot() bool {
	return m.mode == modeList
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	h := height - 6
	if h < 5 {
		h = 5
	}
	m.table.SetHeight(h)

	bw := width - 8
	if bw < 20 {
		bw = 20
	}
	m.bodyInput.SetWidth(bw)
	m.bodyInput.SetHeight(10)
	m.commentInput.Width = bw
}

// owns reports whether the signed-in user owns content attributed to
// userID. An admin owns nothing here; moderation lives elsewhere.
func (m Model) owns(userID int) bool {
	claim := m.session.Current()
	return claim != nil && claim.SubjectID == strconv.Itoa(userID)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case listLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = api.Detail(msg.err)
			return m, nil
		}
		m.errText = ""
		m.posts = msg.posts
		m.table.SetRows(m.rows())
		return m, nil

	case postLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = api.Detail(msg.err)
			return m, nil
		}
		m.errText = ""
		m.mode = modeDetail
		m.current = msg.post
		m.comments = msg.comments
		m.cursor = cursorPost
		return m, nil

	case postSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = api.Detail(msg.err)
			return m, nil
		}
		m.mode = modeList
		m.current = nil
		return m, m.loadListCmd()

	case commentDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = api.Detail(msg.err)
			return m, nil
		}
		m.mode = modeDetail
		return m, m.openCmd(msg.postID)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeDetail:
		return m.handleDetailKey(msg)
	case modeCompose:
		return m.handleComposeKey(msg)
	default:
		return m.handleCommentKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if post, ok := m.selected(); ok {
			m.busy = true
			return m, m.openCmd(post.PostID)
		}
		return m, nil
	case "w":
		return m.startCompose(nil), nil
	case "R":
		m.busy = true
		return m, m.loadListCmd()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.current = nil
		return m, m.loadListCmd()
	case "up", "k":
		if m.cursor > cursorPost {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.comments)-1 {
			m.cursor++
		}
		return m, nil
	case "c":
		return m.startComment(nil), nil
	case "e":
		return m.editSelection()
	case "x":
		return m.deleteSelection()
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = m.composeReturnMode()
		return m, nil
	case "tab":
		m.composeBody = !m.composeBody
		if m.composeBody {
			m.titleInput.Blur()
			return m, m.bodyInput.Focus()
		}
		m.bodyInput.Blur()
		return m, m.titleInput.Focus()
	case "ctrl+s":
		return m.submitPost()
	}

	return m.updateInputs(msg)
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeDetail
		return m, nil
	case "enter":
		return m.submitComment()
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeCompose:
		if m.composeBody {
			m.bodyInput, cmd = m.bodyInput.Update(msg)
		} else {
			m.titleInput, cmd = m.titleInput.Update(msg)
		}
	case modeComment:
		m.commentInput, cmd = m.commentInput.Update(msg)
	}
	return m, cmd
}

// composeReturnMode picks where a cancelled compose goes back to: the
// detail view when editing, the list when writing fresh.
func (m Model) composeReturnMode() boardMode {
	if m.editingPost != 0 && m.current != nil {
		return modeDetail
	}
	return modeList
}

// =============================================================================
// SELECTION AND OWNERSHIP ACTIONS
// =============================================================================

func (m Model) selected() (api.Post, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.posts) {
		return api.Post{}, false
	}
	return m.posts[idx], true
}

// startCompose opens the compose form, prefilled when editing.
func (m Model) startCompose(edit *api.Post) Model {
	m.mode = modeCompose
	m.composeBody = false
	m.bodyInput.Blur()
	m.titleInput.Focus()

	if edit != nil {
		m.editingPost = edit.PostID
		m.titleInput.SetValue(edit.Title)
		m.bodyInput.SetValue(edit.Content)
	} else {
		m.editingPost = 0
		m.titleInput.Reset()
		m.bodyInput.Reset()
	}
	return m
}

// startComment opens the comment form, prefilled when editing.
func (m Model) startComment(edit *api.Comment) Model {
	m.mode = modeComment
	m.commentInput.Focus()

	if edit != nil {
		m.editingComment = edit.CommentID
		m.commentInput.SetValue(edit.Content)
	} else {
		m.editingComment = 0
		m.commentInput.Reset()
	}
	return m
}

// editSelection opens the right compose form for the detail cursor.
// Only owned content is editable.
func (m Model) editSelection() (Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	if m.cursor == cursorPost {
		if !m.owns(m.current.UserID) {
			return m, nil
		}
		return m.startCompose(m.current), nil
	}

	comment := m.comments[m.cursor]
	if !m.owns(comment.UserID) {
		return m, nil
	}
	return m.startComment(&comment), nil
}

// deleteSelection removes the post or comment under the cursor. Only
// owned content is deletable.
func (m Model) deleteSelection() (Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}
	client := m.client

	if m.cursor == cursorPost {
		if !m.owns(m.current.UserID) {
			return m, nil
		}
		m.busy = true
		id := m.current.PostID
		return m, func() tea.Msg {
			return postSavedMsg{err: client.DeletePost(context.Background(), id)}
		}
	}

	comment := m.comments[m.cursor]
	if !m.owns(comment.UserID) {
		return m, nil
	}
	m.busy = true
	postID := m.current.PostID
	return m, func() tea.Msg {
		return commentDoneMsg{postID: postID, err: client.DeleteComment(context.Background(), comment.CommentID)}
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) loadListCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		posts, err := client.ListPosts(context.Background())
		return listLoadedMsg{posts: posts, err: err}
	}
}

// openCmd loads a post and its comments in one trip.
func (m Model) openCmd(postID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		post, err := client.GetPost(context.Background(), postID)
		if err != nil {
			return postLoadedMsg{err: err}
		}
		comments, err := client.ListComments(context.Background(), postID)
		if err != nil {
			return postLoadedMsg{err: err}
		}
		return postLoadedMsg{post: post, comments: comments}
	}
}

func (m Model) submitPost() (Model, tea.Cmd) {
	title := strings.TrimSpace(m.titleInput.Value())
	content := strings.TrimSpace(m.bodyInput.Value())
	if title == "" || content == "" {
		return m, nil
	}

	m.busy = true
	client := m.client
	editing := m.editingPost
	return m, func() tea.Msg {
		var err error
		if editing != 0 {
			_, err = client.UpdatePost(context.Background(), editing, title, content)
		} else {
			_, err = client.CreatePost(context.Background(), title, content)
		}
		return postSavedMsg{err: err}
	}
}

func (m Model) submitComment() (Model, tea.Cmd) {
	content := strings.TrimSpace(m.commentInput.Value())
	if content == "" || m.current == nil {
		return m, nil
	}

	m.busy = true
	client := m.client
	postID := m.current.PostID
	editing := m.editingComment
	return m, func() tea.Msg {
		var err error
		if editing != 0 {
			_, err = client.UpdateComment(context.Background(), editing, content)
		} else {
			_, err = client.CreateComment(context.Background(), postID, content)
		}
		return commentDoneMsg{postID: postID, err: err}
	}
}

func (m Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.posts))
	for _, p := range m.posts {
		rows = append(rows, table.Row{
			strconv.Itoa(p.PostID),
			util.TruncateWidth(p.Title, 36),
			util.TruncateWidth(p.AuthorName, 14),
			p.CreatedAt.Time.Format("2006-01-02"),
		})
	}
	return rows
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the board view.
func (m Model) View() string {
	switch m.mode {
	case modeDetail:
		return m.viewDetail()
	case modeCompose:
		return m.viewCompose()
	case modeComment:
		return m.viewComment()
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render(fmt.Sprintf("Board (%d posts)", len(m.posts))))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(m.theme.FormHint.Render("Working..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorText.Render(m.errText))
	default:
		b.WriteString(m.helpLine(
			"enter", "open",
			"w", "write",
			"R", "reload",
		))
	}
	return b.String()
}

func (m Model) viewDetail() string {
	if m.current == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(m.theme.FormTitle.Render(m.current.Title))
	b.WriteString("\n")
	byline := fmt.Sprintf("%s, %s", m.current.AuthorName, m.current.CreatedAt.Time.Format("2006-01-02 15:04"))
	b.WriteString(m.theme.SidebarMuted.Render(byline))
	b.WriteString("\n\n")
	b.WriteString(m.current.Content)
	b.WriteString("\n\n")

	b.WriteString(m.theme.TableHeader.Render(fmt.Sprintf("Comments (%d)", len(m.comments))))
	b.WriteString("\n")
	for i, c := range m.comments {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s: %s", marker, c.AuthorName, c.Content)
		if i == m.cursor {
			b.WriteString(m.theme.TableSelected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(m.theme.FormHint.Render("Working..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorText.Render(m.errText))
	default:
		b.WriteString(m.detailHelp())
	}
	return b.String()
}

// detailHelp hides e/x when the selection is not owned.
func (m Model) detailHelp() string {
	parts := []string{
		"esc", "back",
		"j/k", "select",
		"c", "comment",
	}

	ownerID := m.current.UserID
	if m.cursor > cursorPost {
		ownerID = m.comments[m.cursor].UserID
	}
	if m.owns(ownerID) {
		parts = append(parts, "e", "edit", "x", "delete")
	}
	return m.helpLine(parts...)
}

func (m Model) viewCompose() string {
	var b strings.Builder

	title := "New post"
	if m.editingPost != 0 {
		title = "Edit post"
	}
	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n\n")

	titleStyle := m.theme.FormField
	if !m.composeBody {
		titleStyle = m.theme.FormFocused
	}
	b.WriteString(titleStyle.Render(m.titleInput.View()))
	b.WriteString("\n\n")
	b.WriteString(m.bodyInput.View())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(m.theme.FormHint.Render("Working..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorText.Render(m.errText))
	default:
		b.WriteString(m.helpLine(
			"tab", "switch field",
			"ctrl+s", "save",
			"esc", "cancel",
		))
	}
	return b.String()
}

func (m Model) viewComment() string {
	var b strings.Builder

	title := "New comment"
	if m.editingComment != 0 {
		title = "Edit comment"
	}
	b.WriteString(m.theme.FormTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.theme.FormFocused.Render(m.commentInput.View()))
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(m.theme.FormHint.Render("Working..."))
	case m.errText != "":
		b.WriteString(m.theme.ErrorText.Render(m.errText))
	default:
		b.WriteString(m.helpLine("enter", "save", "esc", "cancel"))
	}
	return b.String()
}

// helpLine renders key/description pairs in the shared shortcut style.
func (m Model) helpLine(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, m.theme.ShortcutKey.Render(pairs[i])+m.theme.ShortcutDesc.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
