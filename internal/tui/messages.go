package tui

import (
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
)

// SessionMsg carries a new session state published by the session store.
type SessionMsg struct {
	State model.Session
}

type latestMsg struct {
	seq     uint64
	notices []model.Notice
}

type pageLoadedMsg[T any] struct {
	route  route
	seq    uint64
	word   string
	result pagination.Result[T]
}

type noticeLoadedMsg struct {
	seq    uint64
	notice *model.Notice
	errMsg string
}

type qnaLoadedMsg struct {
	seq    uint64
	view   *model.QnaView
	errMsg string
}

// actionMsg reports a mutation; on success the model moves to next.
type actionMsg struct {
	ok    bool
	alert model.Alert
	next  route
	no    int64
}

type loginMsg struct {
	state model.Session
	alert model.Alert
}

type logoutMsg struct {
	ok    bool
	alert model.Alert
}

type statusMsg struct {
	state model.Session
}

type validatedMsg struct {
	memberID string
	ok       bool
	alert    model.Alert
}

type transcriptMsg struct {
	messages []*model.ChatMessage
	err      error
}

type chatMsg struct {
	added []*model.ChatMessage
	err   error
}
