package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
)

func (m *Model) loadLatest() tea.Cmd {
	seq := m.next(routeHome)
	m.loading = true
	notices, n, ctx := m.svc.Notices, m.cfg.Portal.LatestNotices, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		return latestMsg{seq: seq, notices: notices.Latest(c, n)}
	}
}

func (m *Model) loadNotices(page int) tea.Cmd {
	m.notices.loading = true
	return loadPageCmd(routeNoticeList, m.next(routeNoticeList), m.notices.fetcher, m.requestContext, page, "")
}

func (m *Model) loadQuestions(page int) tea.Cmd {
	m.questions.loading = true
	return loadPageCmd(routeQnaList, m.next(routeQnaList), m.questions.fetcher, m.requestContext, page, "")
}

func (m *Model) loadPolicies(page int, word string) tea.Cmd {
	m.policies.loading = true
	return loadPageCmd(routeChat, m.next(routeChat), m.policies.fetcher, m.requestContext, page, strings.TrimSpace(word))
}

func (m *Model) loadNotice(no int64) tea.Cmd {
	seq := m.next(routeNoticeView)
	m.notice, m.viewErr, m.loading = nil, "", true
	notices, ctx := m.svc.Notices, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		notice, errMsg := notices.View(c, no)
		return noticeLoadedMsg{seq: seq, notice: notice, errMsg: errMsg}
	}
}

func (m *Model) loadQna(no int64) tea.Cmd {
	seq := m.next(routeQnaView)
	m.qna, m.viewErr, m.loading = nil, "", true
	qna, ctx := m.svc.Qna, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		view, errMsg := qna.View(c, no)
		return qnaLoadedMsg{seq: seq, view: view, errMsg: errMsg}
	}
}

// submitEditor sends the form of the current write/update route.
func (m *Model) submitEditor() tea.Cmd {
	title, body := m.editor.values()
	no, sess, ctx := m.viewNo, m.sess, m.requestContext
	notices, qna := m.svc.Notices, m.svc.Qna

	var run func() (bool, model.Alert)
	next, nextNo := routeQnaView, no
	switch m.route {
	case routeNoticeWrite:
		m.notices.result = pagination.Result[model.Notice]{}
		next, nextNo = routeNoticeList, 0
		run = func() (bool, model.Alert) {
			c, cancel := ctx()
			defer cancel()
			return notices.Write(c, title, body)
		}
	case routeNoticeUpdate:
		next = routeNoticeView
		run = func() (bool, model.Alert) {
			c, cancel := ctx()
			defer cancel()
			return notices.Update(c, no, title, body)
		}
	case routeQuestionWrite:
		m.questions.result = pagination.Result[model.Question]{}
		next, nextNo = routeQnaList, 0
		run = func() (bool, model.Alert) {
			c, cancel := ctx()
			defer cancel()
			return qna.WriteQuestion(c, sess, title, body)
		}
	case routeQuestionUpdate:
		run = func() (bool, model.Alert) {
			c, cancel := ctx()
			defer cancel()
			return qna.UpdateQuestion(c, sess, no, title, body)
		}
	case routeAnswerWrite:
		run = func() (bool, model.Alert) {
			c, cancel := ctx()
			defer cancel()
			return qna.WriteAnswer(c, no, body)
		}
	case routeAnswerUpdate:
		run = func() (bool, model.Alert) {
			c, cancel := ctx()
			defer cancel()
			return qna.UpdateAnswer(c, no, body)
		}
	default:
		return nil
	}
	return func() tea.Msg {
		ok, alert := run()
		return actionMsg{ok: ok, alert: alert, next: next, no: nextNo}
	}
}

func (m *Model) runDelete(what pendingDelete) tea.Cmd {
	no, sess, ctx := m.viewNo, m.sess, m.requestContext
	notices, qna := m.svc.Notices, m.svc.Qna
	switch what {
	case deleteNotice:
		return func() tea.Msg {
			c, cancel := ctx()
			defer cancel()
			ok, alert := notices.Delete(c, no)
			return actionMsg{ok: ok, alert: alert, next: routeNoticeList}
		}
	case deleteQuestion:
		return func() tea.Msg {
			c, cancel := ctx()
			defer cancel()
			ok, alert := qna.DeleteQuestion(c, sess, no)
			return actionMsg{ok: ok, alert: alert, next: routeQnaList}
		}
	case deleteAnswer:
		return func() tea.Msg {
			c, cancel := ctx()
			defer cancel()
			ok, alert := qna.DeleteAnswer(c, no)
			return actionMsg{ok: ok, alert: alert, next: routeQnaView, no: no}
		}
	}
	return nil
}

func (m *Model) checkStatusCmd() tea.Cmd {
	store, ctx := m.svc.Session, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		return statusMsg{state: store.CheckStatus(c)}
	}
}

func (m *Model) loginCmd(id, pw string) tea.Cmd {
	auth, ctx := m.svc.Auth, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		state, alert := auth.Login(c, id, pw)
		return loginMsg{state: state, alert: alert}
	}
}

func (m *Model) logoutCmd() tea.Cmd {
	auth, ctx := m.svc.Auth, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		ok, alert := auth.Logout(c)
		return logoutMsg{ok: ok, alert: alert}
	}
}

func (m *Model) validateCmd(id string) tea.Cmd {
	auth, ctx := m.svc.Auth, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		ok, alert := auth.ValidateMemberID(c, id)
		return validatedMsg{memberID: id, ok: ok, alert: alert}
	}
}

func (m *Model) signUpCmd(id, pw string, validated bool) tea.Cmd {
	auth, ctx := m.svc.Auth, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		ok, alert := auth.SignUp(c, id, pw, validated)
		return actionMsg{ok: ok, alert: alert, next: routeLogin}
	}
}

func (m *Model) transcriptCmd() tea.Cmd {
	chat, ctx := m.svc.Chat, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		msgs, err := chat.Transcript(c)
		return transcriptMsg{messages: msgs, err: err}
	}
}

func (m *Model) clearChatCmd() tea.Cmd {
	chat, ctx := m.svc.Chat, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		if err := chat.Clear(c); err != nil {
			return transcriptMsg{err: err}
		}
		msgs, err := chat.Transcript(c)
		return transcriptMsg{messages: msgs, err: err}
	}
}

func (m *Model) askCmd() tea.Cmd {
	question := strings.TrimSpace(m.chat.question.Value())
	if question == "" {
		return nil
	}
	if m.chat.waiting {
		m.alert = model.Error("Please wait for the current answer.")
		return nil
	}
	m.chat.waiting = true
	m.chat.question.SetValue("")
	chat, ctx := m.svc.Chat, m.requestContext
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		added, err := chat.Ask(c, question)
		return chatMsg{added: added, err: err}
	}
}
