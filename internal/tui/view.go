package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/helper-labs/helper-portal/internal/model"
)

// View renders the current page.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	if m.confirm != deleteNone {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(confirmPrompt(m.confirm)))
	}
	if !m.alert.Empty() {
		b.WriteString("\n")
		if m.alert.IsError() {
			b.WriteString(ErrorStyle.Render(m.alert.Message))
		} else {
			b.WriteString(InfoStyle.Render(m.alert.Message))
		}
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.helpLine()))
	return b.String()
}

func confirmPrompt(p pendingDelete) string {
	switch p {
	case deleteNotice:
		return "Delete this notice? (y/n)"
	case deleteQuestion:
		return "Delete this question? (y/n)"
	case deleteAnswer:
		return "Delete this answer? (y/n)"
	}
	return ""
}

func (m *Model) renderHeader() string {
	who := "Guest"
	if m.sess.IsLoggedIn {
		who = "Logged in as " + m.sess.MemberID
	}
	return HeaderStyle.Render(m.cfg.Portal.Title) + SessionStyle.Render(who)
}

func (m *Model) renderBody() string {
	switch m.route {
	case routeHome:
		return m.renderHome()
	case routeNoticeList:
		return renderList(&m.notices, "Notices", func(n model.Notice) (string, string) {
			return n.Title, n.CreatedAt.Date()
		})
	case routeQnaList:
		return renderList(&m.questions, "Q&A", func(q model.Question) (string, string) {
			return q.Title, q.MemberID + "  " + q.CreatedAt.Date()
		})
	case routeNoticeView:
		return m.renderNotice()
	case routeQnaView:
		return m.renderQna()
	case routeNoticeWrite, routeNoticeUpdate, routeQuestionWrite, routeQuestionUpdate, routeAnswerWrite, routeAnswerUpdate:
		return m.renderEditor()
	case routeLogin, routeSignUp:
		return m.renderCredentials()
	case routeChat:
		return m.renderChat()
	}
	return ""
}

func (m *Model) renderHome() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Latest notices"))
	b.WriteString("\n")
	if m.loading && len(m.latest) == 0 {
		b.WriteString(MetaStyle.Render("  Loading..."))
		return b.String()
	}
	if len(m.latest) == 0 {
		b.WriteString(MetaStyle.Render("  No notices yet."))
		return b.String()
	}
	for i, n := range m.latest {
		b.WriteString(row(i == m.homeIndex, n.Title, n.CreatedAt.Date()))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func row(selected bool, title, meta string) string {
	line := title
	if meta != "" {
		line += "  " + MetaStyle.Render(meta)
	}
	if selected {
		return SelectedRowStyle.Render(line)
	}
	return RowStyle.Render(line)
}

func renderList[T any](l *listState[T], heading string, describe func(T) (string, string)) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(heading))
	if w := l.result.Window; w != nil && w.TotalRow > 0 {
		b.WriteString(MetaStyle.Render(fmt.Sprintf("  %d posts", w.TotalRow)))
	}
	b.WriteString("\n")
	switch {
	case l.result.Err != "":
		b.WriteString(ErrorStyle.Render(l.result.Err))
	case l.loading && len(l.result.Records) == 0:
		b.WriteString(MetaStyle.Render("  Loading..."))
	case len(l.result.Records) == 0:
		b.WriteString(MetaStyle.Render("  Nothing to show."))
	default:
		for i, rec := range l.result.Records {
			title, meta := describe(rec)
			b.WriteString(row(i == l.selected, title, meta))
			b.WriteString("\n")
		}
	}
	if bar := renderControls(l.result.Window); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) bodyWidth() int {
	return m.width - 4
}

func (m *Model) renderNotice() string {
	if m.viewErr != "" {
		return ErrorStyle.Render(m.viewErr)
	}
	if m.notice == nil {
		return MetaStyle.Render("Loading...")
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.notice.Title))
	b.WriteString("  ")
	b.WriteString(MetaStyle.Render(m.notice.CreatedAt.Date()))
	b.WriteString("\n")
	b.WriteString(BodyStyle.Render(m.md.render(m.notice.Content, m.bodyWidth())))
	return b.String()
}

func (m *Model) renderQna() string {
	if m.viewErr != "" {
		return ErrorStyle.Render(m.viewErr)
	}
	if m.qna == nil || m.qna.Question == nil {
		return MetaStyle.Render("Loading...")
	}
	q := m.qna.Question
	var b strings.Builder
	b.WriteString(TitleStyle.Render(q.Title))
	b.WriteString("  ")
	b.WriteString(MetaStyle.Render(q.MemberID + "  " + q.CreatedAt.Date()))
	b.WriteString("\n")
	b.WriteString(BodyStyle.Render(m.md.render(q.Content, m.bodyWidth())))
	b.WriteString("\n")
	if m.qna.Answer == nil {
		b.WriteString(MetaStyle.Render("No answer yet."))
		return b.String()
	}
	b.WriteString(LabelStyle.Render("Answer"))
	b.WriteString("  ")
	b.WriteString(MetaStyle.Render(m.qna.Answer.CreatedAt.Date()))
	b.WriteString("\n")
	b.WriteString(BodyStyle.Render(m.md.render(m.qna.Answer.Content, m.bodyWidth())))
	return b.String()
}

var editorHeadings = map[route]string{
	routeNoticeWrite:    "Write a notice",
	routeNoticeUpdate:   "Edit notice",
	routeQuestionWrite:  "Ask a question",
	routeQuestionUpdate: "Edit question",
	routeAnswerWrite:    "Write the answer",
	routeAnswerUpdate:   "Edit the answer",
}

func (m *Model) renderEditor() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(editorHeadings[m.route]))
	b.WriteString("\n\n")
	if !m.editor.bodyOnly {
		b.WriteString(m.editor.title.View())
		b.WriteString("\n\n")
	}
	b.WriteString(m.editor.body.View())
	return b.String()
}

func (m *Model) renderCredentials() string {
	heading := "Log in"
	if m.route == routeSignUp {
		heading = "Sign up"
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(m.creds.id.View())
	if m.route == routeSignUp && m.creds.validated() {
		b.WriteString(InfoStyle.Render("  ✓"))
	}
	b.WriteString("\n")
	b.WriteString(m.creds.pw.View())
	return b.String()
}

func (m *Model) renderChat() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Policies"))
	b.WriteString("\n")
	b.WriteString(m.chat.search.View())
	b.WriteString("\n")
	b.WriteString(renderList(&m.policies, "", func(p model.Policy) (string, string) {
		return p.Title, p.URL
	}))
	b.WriteString("\n\n")
	b.WriteString(TitleStyle.Render("Chatbot"))
	b.WriteString("\n")
	for _, msg := range m.chat.transcript {
		if msg.Sender == model.SenderUser {
			b.WriteString(UserLineStyle.Render("you: " + msg.Text))
		} else {
			b.WriteString(BotLineStyle.Render("bot: " + msg.Text))
		}
		b.WriteString("\n")
	}
	if m.chat.waiting {
		b.WriteString(MetaStyle.Render("bot is typing..."))
		b.WriteString("\n")
	}
	b.WriteString(m.chat.question.View())
	return b.String()
}

func (m *Model) helpLine() string {
	var bindings []key.Binding
	switch m.route {
	case routeHome:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Notices, m.keys.Qna, m.keys.Chat, m.keys.Login, m.keys.Quit}
	case routeNoticeList, routeQnaList:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.PrevPage, m.keys.NextPage, m.keys.PrevGroup, m.keys.NextGroup, m.keys.Write, m.keys.Back}
	case routeNoticeView:
		bindings = []key.Binding{m.keys.Edit, m.keys.Delete, m.keys.Back}
	case routeQnaView:
		bindings = []key.Binding{m.keys.Edit, m.keys.Delete, m.keys.AnswerWrite, m.keys.AnswerEdit, m.keys.AnswerDelete, m.keys.Back}
	case routeLogin:
		bindings = []key.Binding{m.keys.NextField, m.keys.Open, m.keys.Back}
	case routeSignUp:
		bindings = []key.Binding{m.keys.NextField, m.keys.CheckID, m.keys.Open, m.keys.Back}
	case routeChat:
		bindings = []key.Binding{m.keys.NextField, m.keys.Open, m.keys.ClearChat, m.keys.Back}
	default:
		bindings = []key.Binding{m.keys.NextField, m.keys.Submit, m.keys.Back}
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// ForwardSession relays session changes into p until ch closes.
func ForwardSession(p *tea.Program, ch <-chan model.Session) {
	for state := range ch {
		p.Send(SessionMsg{State: state})
	}
}
