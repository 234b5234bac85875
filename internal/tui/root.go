// Package tui is the portal's terminal front end. Each route is one page of
// the portal; async work runs in tea.Cmds that report back with typed msgs.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/helper-labs/helper-portal/internal/config"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/service"
	"github.com/helper-labs/helper-portal/internal/session"
)

type route int

const (
	routeHome route = iota
	routeNoticeList
	routeNoticeView
	routeNoticeWrite
	routeNoticeUpdate
	routeQnaList
	routeQnaView
	routeQuestionWrite
	routeQuestionUpdate
	routeAnswerWrite
	routeAnswerUpdate
	routeChat
	routeLogin
	routeSignUp
)

// Services are the page services the TUI drives.
type Services struct {
	Notices  *service.NoticeService
	Qna      *service.QnaService
	Policies *service.PolicyService
	Chat     *service.ChatService
	Auth     *service.AuthService
	Session  *session.Store
}

// Option customises a Model.
type Option func(*Model)

// WithCursorMode sets the text cursor mode of every input.
func WithCursorMode(mode cursor.Mode) Option {
	return func(m *Model) { m.cursorMode = mode }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) { m.logger = logging.OrNop(logger) }
}

// pendingDelete is a delete waiting for y/n.
type pendingDelete int

const (
	deleteNone pendingDelete = iota
	deleteNotice
	deleteQuestion
	deleteAnswer
)

// Model is the root bubbletea model.
type Model struct {
	svc        Services
	cfg        *config.Config
	logger     *zap.Logger
	keys       KeyMap
	cursorMode cursor.Mode
	md         markdown

	route  route
	seq    map[route]uint64
	width  int
	height int

	sess    model.Session
	alert   model.Alert
	confirm pendingDelete

	latest    []model.Notice
	homeIndex int

	notices   listState[model.Notice]
	questions listState[model.Question]
	policies  listState[model.Policy]

	viewNo  int64
	notice  *model.Notice
	qna     *model.QnaView
	viewErr string
	loading bool

	editor editor
	creds  credentials
	chat   chatPane
}

// New builds the root model on the home route.
func New(svc Services, cfg *config.Config, opts ...Option) *Model {
	m := &Model{
		svc:        svc,
		cfg:        cfg,
		logger:     zap.NewNop(),
		keys:       DefaultKeyMap(),
		cursorMode: cursor.CursorBlink,
		seq:        make(map[route]uint64),
		width:      80,
		height:     24,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.notices.fetcher = svc.Notices.Fetcher()
	m.questions.fetcher = svc.Qna.Fetcher()
	m.policies.fetcher = svc.Policies.Fetcher()
	m.editor = newEditor(m.cursorMode)
	m.creds = newCredentials(m.cursorMode)
	m.chat = newChatPane(m.cursorMode)
	m.sess = svc.Session.Snapshot()
	return m
}

// Init checks the stored login and loads the home page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.checkStatusCmd(), m.goTo(routeHome, 0))
}

func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	if m.cfg.API.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), m.cfg.API.RequestTimeout)
	}
	return context.WithCancel(context.Background())
}

// next bumps the request counter of r; replies carrying an older value are stale.
func (m *Model) next(r route) uint64 {
	m.seq[r]++
	return m.seq[r]
}

func (m *Model) current(r route, seq uint64) bool {
	return m.seq[r] == seq
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case SessionMsg:
		m.sess = msg.State
		return m, nil

	case statusMsg:
		m.sess = msg.state
		return m, nil

	case latestMsg:
		if m.current(routeHome, msg.seq) {
			m.latest = msg.notices
			m.loading = false
			if m.homeIndex >= len(m.latest) {
				m.homeIndex = 0
			}
		}
		return m, nil

	case pageLoadedMsg[model.Notice]:
		if m.current(msg.route, msg.seq) {
			m.notices.apply(msg)
		}
		return m, nil

	case pageLoadedMsg[model.Question]:
		if m.current(msg.route, msg.seq) {
			m.questions.apply(msg)
		}
		return m, nil

	case pageLoadedMsg[model.Policy]:
		if m.current(msg.route, msg.seq) {
			m.policies.apply(msg)
		}
		return m, nil

	case noticeLoadedMsg:
		if m.current(routeNoticeView, msg.seq) {
			m.notice, m.viewErr, m.loading = msg.notice, msg.errMsg, false
		}
		return m, nil

	case qnaLoadedMsg:
		if m.current(routeQnaView, msg.seq) {
			m.qna, m.viewErr, m.loading = msg.view, msg.errMsg, false
		}
		return m, nil

	case actionMsg:
		m.alert = msg.alert
		if msg.ok {
			return m, m.goTo(msg.next, msg.no)
		}
		return m, nil

	case loginMsg:
		m.sess = msg.state
		m.alert = msg.alert
		if msg.state.IsLoggedIn {
			return m, m.goTo(routeHome, 0)
		}
		return m, nil

	case logoutMsg:
		m.alert = msg.alert
		if msg.ok {
			m.sess = m.svc.Session.Snapshot()
			return m, m.goTo(routeHome, 0)
		}
		return m, nil

	case validatedMsg:
		m.alert = msg.alert
		if msg.ok {
			m.creds.validatedID = msg.memberID
		}
		return m, nil

	case transcriptMsg:
		if msg.err != nil {
			m.alert = model.Error("Could not load the conversation: " + msg.err.Error())
			return m, nil
		}
		m.chat.transcript = msg.messages
		return m, nil

	case chatMsg:
		m.chat.waiting = false
		if errors.Is(msg.err, service.ErrBusy) {
			m.alert = model.Error("Please wait for the current answer.")
			return m, nil
		}
		if msg.err != nil {
			m.alert = model.Error("Could not save the conversation: " + msg.err.Error())
		}
		m.chat.transcript = append(m.chat.transcript, msg.added...)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, m.updateFocused(msg)
}

// updateFocused forwards non-key msgs (cursor blinks) to the active inputs.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	switch m.route {
	case routeNoticeWrite, routeNoticeUpdate, routeQuestionWrite, routeQuestionUpdate, routeAnswerWrite, routeAnswerUpdate:
		return m.editor.update(msg)
	case routeLogin, routeSignUp:
		return m.creds.update(msg)
	case routeChat:
		return m.chat.update(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Force) {
		return tea.Quit
	}
	m.alert = model.Alert{}

	if m.confirm != deleteNone {
		pending := m.confirm
		m.confirm = deleteNone
		if key.Matches(msg, m.keys.Confirm) {
			return m.runDelete(pending)
		}
		return nil
	}

	switch m.route {
	case routeNoticeWrite, routeNoticeUpdate, routeQuestionWrite, routeQuestionUpdate, routeAnswerWrite, routeAnswerUpdate:
		return m.handleEditorKey(msg)
	case routeLogin, routeSignUp:
		return m.handleCredentialsKey(msg)
	case routeChat:
		return m.handleChatKey(msg)
	}

	// browsing routes: single letter keys are commands
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.Home):
		return m.goTo(routeHome, 0)
	case key.Matches(msg, m.keys.Notices):
		return m.goTo(routeNoticeList, 0)
	case key.Matches(msg, m.keys.Qna):
		return m.goTo(routeQnaList, 0)
	case key.Matches(msg, m.keys.Chat):
		return m.goTo(routeChat, 0)
	case key.Matches(msg, m.keys.Login):
		if m.sess.IsLoggedIn {
			return m.logoutCmd()
		}
		return m.goTo(routeLogin, 0)
	case key.Matches(msg, m.keys.SignUp):
		return m.goTo(routeSignUp, 0)
	case key.Matches(msg, m.keys.Refresh):
		return tea.Batch(m.checkStatusCmd(), m.reload())
	}

	switch m.route {
	case routeHome:
		return m.handleHomeKey(msg)
	case routeNoticeList:
		return m.handleNoticeListKey(msg)
	case routeQnaList:
		return m.handleQnaListKey(msg)
	case routeNoticeView:
		return m.handleNoticeViewKey(msg)
	case routeQnaView:
		return m.handleQnaViewKey(msg)
	}
	return nil
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.homeIndex > 0 {
			m.homeIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.homeIndex < len(m.latest)-1 {
			m.homeIndex++
		}
	case key.Matches(msg, m.keys.Open):
		if m.homeIndex < len(m.latest) {
			return m.goTo(routeNoticeView, m.latest[m.homeIndex].NoticeNo)
		}
	}
	return nil
}

func (m *Model) handleNoticeListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.notices.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.notices.move(1)
	case key.Matches(msg, m.keys.Open):
		if n, ok := m.notices.current(); ok {
			return m.goTo(routeNoticeView, n.NoticeNo)
		}
	case key.Matches(msg, m.keys.Write):
		return m.goTo(routeNoticeWrite, 0)
	default:
		if page, ok := pageTarget(m.keys, msg, m.notices.result.Window); ok {
			return m.loadNotices(page)
		}
	}
	return nil
}

func (m *Model) handleQnaListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.questions.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.questions.move(1)
	case key.Matches(msg, m.keys.Open):
		if q, ok := m.questions.current(); ok {
			return m.goTo(routeQnaView, q.QuestionNo)
		}
	case key.Matches(msg, m.keys.Write):
		return m.goTo(routeQuestionWrite, 0)
	default:
		if page, ok := pageTarget(m.keys, msg, m.questions.result.Window); ok {
			return m.loadQuestions(page)
		}
	}
	return nil
}

func (m *Model) handleNoticeViewKey(msg tea.KeyMsg) tea.Cmd {
	if m.notice == nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		return m.goTo(routeNoticeUpdate, m.viewNo)
	case key.Matches(msg, m.keys.Delete):
		if m.requireAdmin() {
			m.confirm = deleteNotice
		}
	}
	return nil
}

func (m *Model) handleQnaViewKey(msg tea.KeyMsg) tea.Cmd {
	if m.qna == nil || m.qna.Question == nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		return m.goTo(routeQuestionUpdate, m.viewNo)
	case key.Matches(msg, m.keys.Delete):
		if m.requireOwner() {
			m.confirm = deleteQuestion
		}
	case key.Matches(msg, m.keys.AnswerWrite):
		if m.qna.Answer != nil {
			m.alert = model.Error("This question already has an answer.")
			return nil
		}
		return m.goTo(routeAnswerWrite, m.viewNo)
	case key.Matches(msg, m.keys.AnswerEdit):
		if m.qna.Answer == nil {
			return nil
		}
		return m.goTo(routeAnswerUpdate, m.viewNo)
	case key.Matches(msg, m.keys.AnswerDelete):
		if m.qna.Answer != nil && m.requireAdmin() {
			m.confirm = deleteAnswer
		}
	}
	return nil
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.NextField):
		return m.editor.next()
	case key.Matches(msg, m.keys.Submit):
		return m.submitEditor()
	}
	return m.editor.update(msg)
}

func (m *Model) handleCredentialsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.NextField):
		return m.creds.next()
	case key.Matches(msg, m.keys.CheckID) && m.route == routeSignUp:
		return m.validateCmd(m.creds.id.Value())
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Submit):
		if m.route == routeLogin {
			return m.loginCmd(m.creds.id.Value(), m.creds.pw.Value())
		}
		return m.signUpCmd(m.creds.id.Value(), m.creds.pw.Value(), m.creds.validated())
	}
	return m.creds.update(msg)
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.NextField):
		return m.chat.next()
	case key.Matches(msg, m.keys.ClearChat):
		return m.clearChatCmd()
	case key.Matches(msg, m.keys.Open):
		if m.chat.focus == 0 {
			return m.loadPolicies(1, m.chat.search.Value())
		}
		return m.askCmd()
	case msg.Type != tea.KeyRunes:
		if page, ok := pageTarget(m.keys, msg, m.policies.result.Window); ok {
			return m.loadPolicies(page, m.policies.word)
		}
	}
	return m.chat.update(msg)
}

// requireAdmin reports whether the session may run admin actions, setting
// an alert when it may not.
func (m *Model) requireAdmin() bool {
	if m.svc.Qna.IsAdmin(m.sess) {
		return true
	}
	m.alert = model.Error("You do not have permission to perform this action.")
	return false
}

func (m *Model) requireOwner() bool {
	if m.qna != nil && (m.svc.Qna.CanEditQuestion(m.sess, m.qna.Question) || m.svc.Qna.IsAdmin(m.sess)) {
		return true
	}
	m.alert = model.Error("Only the author can change this question.")
	return false
}

// back goes to the parent page of the current route.
func (m *Model) back() tea.Cmd {
	switch m.route {
	case routeNoticeView, routeNoticeWrite:
		return m.goTo(routeNoticeList, 0)
	case routeNoticeUpdate:
		return m.goTo(routeNoticeView, m.viewNo)
	case routeQnaView, routeQuestionWrite:
		return m.goTo(routeQnaList, 0)
	case routeQuestionUpdate, routeAnswerWrite, routeAnswerUpdate:
		return m.goTo(routeQnaView, m.viewNo)
	case routeHome:
		return nil
	default:
		return m.goTo(routeHome, 0)
	}
}

// reload re-requests whatever the current page shows.
func (m *Model) reload() tea.Cmd {
	switch m.route {
	case routeHome:
		return m.loadLatest()
	case routeNoticeList:
		return m.loadNotices(m.notices.page())
	case routeQnaList:
		return m.loadQuestions(m.questions.page())
	case routeNoticeView:
		return m.loadNotice(m.viewNo)
	case routeQnaView:
		return m.loadQna(m.viewNo)
	}
	return nil
}

// goTo switches to r, applying the page's access rules and starting its loads.
func (m *Model) goTo(r route, no int64) tea.Cmd {
	switch r {
	case routeNoticeWrite, routeNoticeUpdate, routeAnswerWrite, routeAnswerUpdate:
		if !m.requireAdmin() {
			return nil
		}
	case routeQuestionWrite:
		if !m.sess.IsLoggedIn {
			m.alert = model.Error("Please log in to write a question.")
			return m.goTo(routeLogin, 0)
		}
	case routeQuestionUpdate:
		if !m.requireOwner() {
			return nil
		}
	case routeChat:
		if !m.sess.IsLoggedIn {
			m.alert = model.Error("Please log in to use the chatbot.")
			return m.goTo(routeLogin, 0)
		}
	}

	m.route = r
	m.confirm = deleteNone
	switch r {
	case routeHome:
		return m.loadLatest()
	case routeNoticeList:
		return m.loadNotices(m.notices.page())
	case routeQnaList:
		return m.loadQuestions(m.questions.page())
	case routeNoticeView:
		m.viewNo = no
		return m.loadNotice(no)
	case routeQnaView:
		m.viewNo = no
		return m.loadQna(no)
	case routeNoticeWrite:
		return m.editor.reset("", "", false)
	case routeNoticeUpdate:
		if m.notice == nil {
			return nil
		}
		return m.editor.reset(m.notice.Title, m.notice.Content, false)
	case routeQuestionWrite:
		return m.editor.reset("", "", false)
	case routeQuestionUpdate:
		q := m.qna.Question
		return m.editor.reset(q.Title, q.Content, false)
	case routeAnswerWrite:
		return m.editor.reset("", "", true)
	case routeAnswerUpdate:
		body := ""
		if m.qna != nil && m.qna.Answer != nil {
			body = m.qna.Answer.Content
		}
		return m.editor.reset("", body, true)
	case routeChat:
		return tea.Batch(m.chat.reset(), m.transcriptCmd(), m.loadPolicies(1, ""))
	case routeLogin, routeSignUp:
		return m.creds.reset()
	}
	return nil
}

// Route reports the page being shown, for tests and logging.
func (m *Model) Route() string {
	return routeNames[m.route]
}

var routeNames = map[route]string{
	routeHome:           "home",
	routeNoticeList:     "notice/list",
	routeNoticeView:     "notice/view",
	routeNoticeWrite:    "notice/write",
	routeNoticeUpdate:   "notice/update",
	routeQnaList:        "qna/list",
	routeQnaView:        "qna/view",
	routeQuestionWrite:  "qna/question/write",
	routeQuestionUpdate: "qna/question/update",
	routeAnswerWrite:    "qna/answer/write",
	routeAnswerUpdate:   "qna/answer/update",
	routeChat:           "chat",
	routeLogin:          "login",
	routeSignUp:         "signup",
}
