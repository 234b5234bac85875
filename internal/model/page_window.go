package model

import "fmt"

// PageWindow is the server's pageObject: which page numbers are shown as
// direct links and how many pages exist in total.
type PageWindow struct {
	Page       int    `json:"page"`
	StartPage  int    `json:"startPage"`
	EndPage    int    `json:"endPage"`
	TotalPage  int    `json:"totalPage"`
	PerPageNum int    `json:"perPageNum,omitempty"`
	TotalRow   int    `json:"totalRow,omitempty"`
	Word       string `json:"word,omitempty"`
}

// Width is the number of direct page links in the window.
func (w PageWindow) Width() int {
	return w.EndPage - w.StartPage + 1
}

// Validate checks 1 <= startPage <= page <= endPage <= totalPage.
func (w PageWindow) Validate() error {
	if w.TotalPage < 1 {
		return fmt.Errorf("page window: totalPage %d < 1", w.TotalPage)
	}
	if w.StartPage < 1 || w.StartPage > w.Page || w.Page > w.EndPage || w.EndPage > w.TotalPage {
		return fmt.Errorf("page window: want 1 <= start(%d) <= page(%d) <= end(%d) <= total(%d)",
			w.StartPage, w.Page, w.EndPage, w.TotalPage)
	}
	return nil
}

// ListPage is the {list, pageObject} payload every list endpoint returns.
type ListPage[T any] struct {
	List       []T         `json:"list"`
	PageObject *PageWindow `json:"pageObject"`
}
