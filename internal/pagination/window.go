// Package pagination holds the page-window arithmetic shared by every list
// page, and the fetcher that loads pages through it.
package pagination

import (
	"strconv"
	"strings"

	"github.com/helper-labs/helper-portal/internal/model"
)

// DefaultGroupWidth is the number of direct page links the server shows.
const DefaultGroupWidth = 10

// ControlKind identifies one pagination control.
type ControlKind int

const (
	PrevGroup ControlKind = iota
	PrevPage
	PageLink
	NextPage
	NextGroup
)

// Control is one clickable element of the pagination bar.
type Control struct {
	Kind ControlKind
	// Target is the page this control requests.
	Target int
	// Current marks the link for the page being shown.
	Current bool
}

// Label is the text shown for the control.
func (c Control) Label() string {
	switch c.Kind {
	case PrevGroup:
		return "«"
	case PrevPage:
		return "‹"
	case NextPage:
		return "›"
	case NextGroup:
		return "»"
	default:
		return strconv.Itoa(c.Target)
	}
}

// Controls assembles the pagination bar for w, left to right: previous group,
// previous page, one link per page of the window, next page, next group.
// Edge controls appear only when they lead somewhere.
func Controls(w *model.PageWindow) []Control {
	if w == nil {
		return nil
	}
	controls := make([]Control, 0, w.Width()+4)
	if target, ok := PreviousGroupTarget(*w); ok {
		controls = append(controls, Control{Kind: PrevGroup, Target: target})
	}
	if target, ok := PreviousPageTarget(*w); ok {
		controls = append(controls, Control{Kind: PrevPage, Target: target})
	}
	for i := w.StartPage; i <= w.EndPage; i++ {
		controls = append(controls, Control{Kind: PageLink, Target: i, Current: i == w.Page})
	}
	if target, ok := NextPageTarget(*w); ok {
		controls = append(controls, Control{Kind: NextPage, Target: target})
	}
	if target, ok := NextGroupTarget(*w); ok {
		controls = append(controls, Control{Kind: NextGroup, Target: target})
	}
	return controls
}

// PreviousPageTarget is page-1, offered only past the first page.
func PreviousPageTarget(w model.PageWindow) (int, bool) {
	if w.Page > 1 {
		return w.Page - 1, true
	}
	return 0, false
}

// NextPageTarget is page+1, offered only before the last page.
func NextPageTarget(w model.PageWindow) (int, bool) {
	if w.Page < w.TotalPage {
		return w.Page + 1, true
	}
	return 0, false
}

// PreviousGroupTarget is the page just before the window. The server
// recomputes the window around it, so the client never assumes a width.
func PreviousGroupTarget(w model.PageWindow) (int, bool) {
	if w.StartPage > 1 {
		return w.StartPage - 1, true
	}
	return 0, false
}

// NextGroupTarget is the page just after the window.
func NextGroupTarget(w model.PageWindow) (int, bool) {
	if w.EndPage < w.TotalPage {
		return w.EndPage + 1, true
	}
	return 0, false
}

// ParsePage reads a page number from a navigation source, defaulting to 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Compute builds the window the server reports for page out of totalRow rows.
// An empty listing still has one (empty) page.
func Compute(page, perPageNum, totalRow, groupWidth int) model.PageWindow {
	if perPageNum < 1 {
		perPageNum = 10
	}
	if groupWidth < 1 {
		groupWidth = DefaultGroupWidth
	}
	if totalRow < 0 {
		totalRow = 0
	}
	totalPage := (totalRow + perPageNum - 1) / perPageNum
	if totalPage < 1 {
		totalPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPage {
		page = totalPage
	}
	startPage := (page-1)/groupWidth*groupWidth + 1
	endPage := startPage + groupWidth - 1
	if endPage > totalPage {
		endPage = totalPage
	}
	return model.PageWindow{
		Page:       page,
		StartPage:  startPage,
		EndPage:    endPage,
		TotalPage:  totalPage,
		PerPageNum: perPageNum,
		TotalRow:   totalRow,
	}
}

// Offset is the index of the first row of w's page.
func Offset(w model.PageWindow) int {
	return (w.Page - 1) * w.PerPageNum
}
