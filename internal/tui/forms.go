package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/helper-labs/helper-portal/internal/model"
)

func newInput(placeholder, prompt string, limit int, mode cursor.Mode) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.PromptStyle = LabelStyle
	ti.CharLimit = limit
	ti.Width = 60
	ti.Cursor.SetMode(mode)
	return ti
}

// editor is the title + body form shared by notices, questions and answers.
type editor struct {
	title    textinput.Model
	body     textarea.Model
	bodyOnly bool
	focus    int
}

func newEditor(mode cursor.Mode) editor {
	body := textarea.New()
	body.Placeholder = "Content (markdown)"
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.SetWidth(70)
	body.SetHeight(10)
	body.Cursor.SetMode(mode)
	return editor{
		title: newInput("Title", "Title: ", 200, mode),
		body:  body,
	}
}

// reset prepares the form for a new record, or an edit of an existing one.
func (e *editor) reset(title, body string, bodyOnly bool) tea.Cmd {
	e.title.SetValue(title)
	e.body.SetValue(body)
	e.bodyOnly = bodyOnly
	e.focus = 0
	if bodyOnly {
		e.focus = 1
	}
	return e.applyFocus()
}

func (e *editor) next() tea.Cmd {
	if e.bodyOnly {
		return nil
	}
	e.focus = (e.focus + 1) % 2
	return e.applyFocus()
}

func (e *editor) applyFocus() tea.Cmd {
	if e.focus == 0 {
		e.body.Blur()
		return e.title.Focus()
	}
	e.title.Blur()
	return e.body.Focus()
}

func (e *editor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.focus == 0 {
		e.title, cmd = e.title.Update(msg)
	} else {
		e.body, cmd = e.body.Update(msg)
	}
	return cmd
}

func (e *editor) values() (string, string) {
	return e.title.Value(), e.body.Value()
}

// credentials is the member id + password pair used by login and sign-up.
type credentials struct {
	id    textinput.Model
	pw    textinput.Model
	focus int

	// sign-up only: the id that passed the duplicate check
	validatedID string
}

func newCredentials(mode cursor.Mode) credentials {
	pw := newInput("Password", "Password:  ", 64, mode)
	pw.EchoMode = textinput.EchoPassword
	return credentials{
		id: newInput("Member id", "Member id: ", 20, mode),
		pw: pw,
	}
}

func (c *credentials) reset() tea.Cmd {
	c.id.SetValue("")
	c.pw.SetValue("")
	c.validatedID = ""
	c.focus = 0
	c.pw.Blur()
	return c.id.Focus()
}

func (c *credentials) next() tea.Cmd {
	c.focus = (c.focus + 1) % 2
	if c.focus == 0 {
		c.pw.Blur()
		return c.id.Focus()
	}
	c.id.Blur()
	return c.pw.Focus()
}

func (c *credentials) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if c.focus == 0 {
		c.id, cmd = c.id.Update(msg)
	} else {
		c.pw, cmd = c.pw.Update(msg)
	}
	return cmd
}

// validated reports whether the id currently typed is the one that passed
// the duplicate check.
func (c *credentials) validated() bool {
	return c.validatedID != "" && c.validatedID == c.id.Value()
}

// chatPane is the chatbot page: policy search on top, conversation below.
type chatPane struct {
	search     textinput.Model
	question   textinput.Model
	focus      int
	transcript []*model.ChatMessage
	waiting    bool
}

func newChatPane(mode cursor.Mode) chatPane {
	return chatPane{
		search:   newInput("Search policies", "Search: ", 50, mode),
		question: newInput("Ask the chatbot", "Ask: ", 500, mode),
		focus:    1,
	}
}

func (c *chatPane) reset() tea.Cmd {
	c.focus = 1
	c.search.Blur()
	return c.question.Focus()
}

func (c *chatPane) next() tea.Cmd {
	c.focus = (c.focus + 1) % 2
	if c.focus == 0 {
		c.question.Blur()
		return c.search.Focus()
	}
	c.search.Blur()
	return c.question.Focus()
}

func (c *chatPane) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if c.focus == 0 {
		c.search, cmd = c.search.Update(msg)
	} else {
		c.question, cmd = c.question.Update(msg)
	}
	return cmd
}
