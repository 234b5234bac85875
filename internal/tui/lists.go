package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
)

// listState is one paginated board: its fetcher, the last shown result and
// the highlighted row. word is the search word of the shown result; paging
// keeps it even when a dropped load searched for something else.
type listState[T any] struct {
	fetcher  *pagination.Fetcher[T]
	result   pagination.Result[T]
	word     string
	selected int
	loading  bool
}

func (l *listState[T]) apply(msg pageLoadedMsg[T]) {
	l.result = msg.result
	l.word = msg.word
	res := msg.result
	l.loading = false
	if l.selected >= len(res.Records) {
		l.selected = len(res.Records) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

func (l *listState[T]) move(delta int) {
	l.selected += delta
	if l.selected >= len(l.result.Records) {
		l.selected = len(l.result.Records) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

func (l *listState[T]) current() (T, bool) {
	var zero T
	if l.selected < 0 || l.selected >= len(l.result.Records) {
		return zero, false
	}
	return l.result.Records[l.selected], true
}

// page is the page currently shown, 1 before anything loaded.
func (l *listState[T]) page() int {
	if l.result.Window == nil {
		return 1
	}
	return l.result.Window.Page
}

func loadPageCmd[T any](r route, seq uint64, f *pagination.Fetcher[T], ctx func() (context.Context, context.CancelFunc), page int, word string) tea.Cmd {
	return func() tea.Msg {
		c, cancel := ctx()
		defer cancel()
		return pageLoadedMsg[T]{route: r, seq: seq, word: word, result: f.Load(c, page, word)}
	}
}

// pageTarget maps a pagination key to the page it requests. Controls that
// are hidden for w request nothing.
func pageTarget(keys KeyMap, msg tea.KeyMsg, w *model.PageWindow) (int, bool) {
	if w == nil {
		return 0, false
	}
	switch {
	case key.Matches(msg, keys.PrevPage):
		return pagination.PreviousPageTarget(*w)
	case key.Matches(msg, keys.NextPage):
		return pagination.NextPageTarget(*w)
	case key.Matches(msg, keys.PrevGroup):
		return pagination.PreviousGroupTarget(*w)
	case key.Matches(msg, keys.NextGroup):
		return pagination.NextGroupTarget(*w)
	}
	return digitTarget(msg.String(), w)
}

// digitTarget jumps to the n-th link of the window; 0 is the tenth.
func digitTarget(s string, w *model.PageWindow) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	n, _ := strconv.Atoi(s)
	if n == 0 {
		n = 10
	}
	target := w.StartPage + n - 1
	if target > w.EndPage || target == w.Page {
		return 0, false
	}
	return target, true
}

// renderControls draws the pagination bar with the current page bold and underlined.
func renderControls(w *model.PageWindow) string {
	controls := pagination.Controls(w)
	if len(controls) == 0 {
		return ""
	}
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		if c.Current {
			parts = append(parts, CurrentPageStyle.Render(c.Label()))
			continue
		}
		parts = append(parts, PageLinkStyle.Render(c.Label()))
	}
	return strings.Join(parts, " ")
}
