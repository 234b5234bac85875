package tui

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/config"
	"github.com/helper-labs/helper-portal/internal/devserver"
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
	"github.com/helper-labs/helper-portal/internal/service"
	"github.com/helper-labs/helper-portal/internal/session"
	"github.com/helper-labs/helper-portal/internal/storage/bolt"
)

type harness struct {
	srv   *devserver.Server
	model *Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()

	serverStore, err := bolt.New(filepath.Join(dir, "devserver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverStore.Close() })
	srv, err := devserver.New(context.Background(), cfg, serverStore, logger)
	require.NoError(t, err)

	clientStore, err := bolt.NewClientStore(filepath.Join(dir, "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientStore.Close() })

	client, err := apiclient.New("http://portal.test", 0,
		apiclient.WithHTTPClient(&http.Client{Transport: srv.Transport()}),
		apiclient.WithLogger(logger))
	require.NoError(t, err)

	sess := session.New(client, logger)
	svc := Services{
		Notices:  service.NewNoticeService(client, cfg, logger),
		Qna:      service.NewQnaService(client, cfg, logger),
		Policies: service.NewPolicyService(client, cfg, logger),
		Chat:     service.NewChatService(client, clientStore, sess, logger),
		Auth:     service.NewAuthService(client, sess, logger),
		Session:  sess,
	}
	return &harness{
		srv:   srv,
		model: New(svc, cfg, WithCursorMode(cursor.CursorStatic), WithLogger(logger)),
	}
}

// adminClient is a second, independent client used to seed data.
func (h *harness) adminClient(t *testing.T) *apiclient.Client {
	t.Helper()
	client, err := apiclient.New("http://portal.test", 0,
		apiclient.WithHTTPClient(&http.Client{Transport: h.srv.Transport()}))
	require.NoError(t, err)
	_, err = client.Login(context.Background(), "admin", "admin1234")
	require.NoError(t, err)
	return client
}

func (h *harness) seedNotices(t *testing.T, n int) {
	t.Helper()
	admin := h.adminClient(t)
	for i := 1; i <= n; i++ {
		_, err := admin.NoticeWrite(context.Background(), fmt.Sprintf("notice %d", i), "body")
		require.NoError(t, err)
	}
}

// run executes cmd and every command it leads to, feeding the msgs back
// through Update.
func run(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		run(m, cmd)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		run(m, cmd)
	}
}

func login(t *testing.T, m *Model, id, pw string) {
	t.Helper()
	if m.Route() != "login" {
		press(m, "l")
	}
	require.Equal(t, "login", m.Route())
	typeText(m, id)
	press(m, "tab")
	typeText(m, pw)
	press(m, "enter")
	require.True(t, m.sess.IsLoggedIn, m.alert.Message)
}

func TestHomeShowsLatestNotices(t *testing.T) {
	h := newHarness(t)
	h.seedNotices(t, 3)
	m := h.model

	run(m, m.Init())

	assert.Equal(t, "home", m.Route())
	require.Len(t, m.latest, 2)
	assert.Equal(t, "notice 3", m.latest[0].Title)
	assert.Contains(t, m.View(), "Guest")
	assert.Contains(t, m.View(), "notice 2")

	press(m, "j", "enter")
	assert.Equal(t, "notice/view", m.Route())
	require.NotNil(t, m.notice)
	assert.Equal(t, "notice 2", m.notice.Title)
}

func TestNoticeListPaging(t *testing.T) {
	h := newHarness(t)
	h.seedNotices(t, 25)
	m := h.model
	run(m, m.Init())

	press(m, "n")
	require.Equal(t, "notice/list", m.Route())
	require.NotNil(t, m.notices.result.Window)
	assert.Equal(t, 1, m.notices.page())
	assert.Len(t, m.notices.result.Records, 10)

	press(m, "]")
	assert.Equal(t, 2, m.notices.page())

	press(m, "3")
	assert.Equal(t, 3, m.notices.page())
	assert.Len(t, m.notices.result.Records, 5)

	// last page: next is hidden, so the key does nothing
	press(m, "]")
	assert.Equal(t, 3, m.notices.page())

	press(m, "[", "pgdown")
	assert.Equal(t, 3, m.notices.page())
	assert.Contains(t, m.View(), "25 posts")
}

func TestStalePageIsDropped(t *testing.T) {
	h := newHarness(t)
	h.seedNotices(t, 15)
	m := h.model
	m.route = routeNoticeList

	slow := m.loadNotices(1)
	fresh := m.loadNotices(2)
	run(m, fresh)
	run(m, slow)

	assert.Equal(t, 2, m.notices.page())
}

func TestStaleSearchDoesNotLeakIntoPaging(t *testing.T) {
	h := newHarness(t)
	m := h.model
	run(m, m.Init())
	login(t, m, "admin", "admin1234")
	press(m, "c")
	require.Equal(t, "chat", m.Route())

	slow := m.loadPolicies(1, "youth")
	fresh := m.loadPolicies(1, "")
	run(m, fresh)
	run(m, slow)
	require.Empty(t, m.policies.word)
	require.Equal(t, 2, m.policies.result.Window.TotalPage)

	press(m, "pgdown")
	assert.Equal(t, 2, m.policies.page())
	assert.Empty(t, m.policies.word)
	assert.Len(t, m.policies.result.Records, 2)
}

func TestGuardsRedirectToLogin(t *testing.T) {
	h := newHarness(t)
	m := h.model
	run(m, m.Init())

	press(m, "c")
	assert.Equal(t, "login", m.Route())
	assert.Equal(t, "Please log in to use the chatbot.", m.alert.Message)

	press(m, "esc", "a", "w")
	assert.Equal(t, "login", m.Route())
	assert.Equal(t, "Please log in to write a question.", m.alert.Message)
}

func TestMemberCannotWriteNotices(t *testing.T) {
	h := newHarness(t)
	m := h.model
	run(m, m.Init())
	press(m, "s")
	typeText(m, "alice1")
	press(m, "ctrl+k")
	require.True(t, m.creds.validated(), m.alert.Message)
	press(m, "tab")
	typeText(m, "secret")
	press(m, "enter")
	require.Equal(t, "login", m.Route(), m.alert.Message)

	login(t, m, "alice1", "secret")
	press(m, "n", "w")
	assert.Equal(t, "notice/list", m.Route())
	assert.True(t, m.alert.IsError())
}

func TestAdminWritesAndDeletesNotice(t *testing.T) {
	h := newHarness(t)
	m := h.model
	run(m, m.Init())
	login(t, m, "admin", "admin1234")
	assert.Contains(t, m.View(), "Logged in as admin")

	press(m, "n", "w")
	require.Equal(t, "notice/write", m.Route())
	typeText(m, "Rent support")
	press(m, "tab")
	typeText(m, "Applications open monday.")
	press(m, "ctrl+s")

	require.Equal(t, "notice/list", m.Route(), m.alert.Message)
	require.Len(t, m.notices.result.Records, 1)
	assert.Equal(t, "Rent support", m.notices.result.Records[0].Title)

	press(m, "enter")
	require.Equal(t, "notice/view", m.Route())

	press(m, "d")
	assert.Contains(t, m.View(), "Delete this notice? (y/n)")
	press(m, "n")
	assert.Equal(t, "notice/view", m.Route())

	press(m, "d", "y")
	assert.Equal(t, "notice/list", m.Route())
	assert.False(t, m.alert.IsError(), m.alert.Message)
	assert.Empty(t, m.notices.result.Records)
}

func TestQuestionOwnerFlow(t *testing.T) {
	h := newHarness(t)
	m := h.model
	run(m, m.Init())
	_, err := h.adminClient(t).SignUp(context.Background(), "bob12", "secret")
	require.NoError(t, err)
	login(t, m, "bob12", "secret")

	press(m, "a", "w")
	require.Equal(t, "qna/question/write", m.Route())
	typeText(m, "Loan")
	press(m, "tab")
	typeText(m, "Am I eligible?")
	press(m, "ctrl+s")
	require.Equal(t, "qna/list", m.Route(), m.alert.Message)
	assert.Equal(t, "Your question was posted successfully.", m.alert.Message)

	press(m, "enter")
	require.Equal(t, "qna/view", m.Route())
	assert.Contains(t, m.View(), "No answer yet.")

	// answering is for admins
	press(m, "A")
	assert.Equal(t, "qna/view", m.Route())
	assert.True(t, m.alert.IsError())

	press(m, "e")
	require.Equal(t, "qna/question/update", m.Route())
	title, body := m.editor.values()
	assert.Equal(t, "Loan", title)
	assert.Equal(t, "Am I eligible?", body)
}

func TestChatAsksAndSearches(t *testing.T) {
	h := newHarness(t)
	m := h.model
	run(m, m.Init())
	login(t, m, "admin", "admin1234")

	press(m, "c")
	require.Equal(t, "chat", m.Route())
	require.Len(t, m.chat.transcript, 1)
	assert.Equal(t, service.ChatGreeting, m.chat.transcript[0].Text)
	assert.NotEmpty(t, m.policies.result.Records)

	typeText(m, "youth housing")
	press(m, "enter")
	require.Len(t, m.chat.transcript, 3)
	assert.Equal(t, model.SenderUser, m.chat.transcript[1].Sender)
	assert.Contains(t, m.chat.transcript[2].Text, "These policies may help:")
	assert.Empty(t, m.chat.question.Value())

	press(m, "tab")
	typeText(m, "youth")
	press(m, "enter")
	assert.Equal(t, "youth", m.policies.word)
	assert.Len(t, m.policies.result.Records, 4)
}

func TestDigitTarget(t *testing.T) {
	w := &model.PageWindow{Page: 12, StartPage: 11, EndPage: 20, TotalPage: 23}
	for _, tc := range []struct {
		key  string
		want int
		ok   bool
	}{
		{"1", 11, true},
		{"2", 0, false},
		{"0", 20, true},
		{"x", 0, false},
	} {
		got, ok := digitTarget(tc.key, w)
		assert.Equal(t, tc.ok, ok, tc.key)
		assert.Equal(t, tc.want, got, tc.key)
	}

	short := &model.PageWindow{Page: 1, StartPage: 1, EndPage: 3, TotalPage: 3}
	_, ok := digitTarget("4", short)
	assert.False(t, ok)
}

func TestRenderControls(t *testing.T) {
	w := pagination.Compute(12, 10, 230, 10)
	bar := renderControls(&w)
	for _, label := range []string{"«", "‹", "11", "20", "›", "»"} {
		assert.Contains(t, bar, label)
	}

	first := pagination.Compute(1, 10, 5, 10)
	bar = renderControls(&first)
	assert.NotContains(t, bar, "‹")
	assert.NotContains(t, bar, "»")
	assert.True(t, strings.Contains(bar, "1"))

	assert.Empty(t, renderControls(nil))
}
