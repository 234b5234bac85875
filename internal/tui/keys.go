package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the portal.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Open  key.Binding
	Back  key.Binding
	Quit  key.Binding
	Force key.Binding

	// Menu
	Home    key.Binding
	Notices key.Binding
	Qna     key.Binding
	Chat    key.Binding
	Login   key.Binding
	SignUp  key.Binding
	Refresh key.Binding

	// Pagination
	PrevPage  key.Binding
	NextPage  key.Binding
	PrevGroup key.Binding
	NextGroup key.Binding

	// Records
	Write        key.Binding
	Edit         key.Binding
	Delete       key.Binding
	AnswerWrite  key.Binding
	AnswerEdit   key.Binding
	AnswerDelete key.Binding
	Confirm      key.Binding

	// Forms
	NextField key.Binding
	Submit    key.Binding
	CheckID   key.Binding
	ClearChat key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "home"),
		),
		Notices: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notices"),
		),
		Qna: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "q&a"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chatbot"),
		),
		Login: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "login/logout"),
		),
		SignUp: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sign up"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next page"),
		),
		PrevGroup: key.NewBinding(
			key.WithKeys("{", "ctrl+pgup"),
			key.WithHelp("{", "prev group"),
		),
		NextGroup: key.NewBinding(
			key.WithKeys("}", "ctrl+pgdown"),
			key.WithHelp("}", "next group"),
		),
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		AnswerWrite: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "answer"),
		),
		AnswerEdit: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit answer"),
		),
		AnswerDelete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete answer"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		CheckID: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "check id"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear chat"),
		),
	}
}
