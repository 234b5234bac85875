package pagination

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/model"
)

type call struct {
	page int
	word string
}

// fakeBoard serves totalRow numbered rows, ten per page.
type fakeBoard struct {
	totalRow int
	calls    []call
	err      error
	nilList  bool
	badPage  bool
}

func (b *fakeBoard) load(_ context.Context, page int, word string) (model.ListPage[int], error) {
	b.calls = append(b.calls, call{page, word})
	if b.err != nil {
		return model.ListPage[int]{}, b.err
	}
	if b.nilList {
		return model.ListPage[int]{}, nil
	}
	w := Compute(page, 10, b.totalRow, DefaultGroupWidth)
	if b.badPage {
		w.StartPage = w.Page + 1
	}
	rows := []int{}
	for i := Offset(w); i < Offset(w)+10 && i < b.totalRow; i++ {
		rows = append(rows, i+1)
	}
	return model.ListPage[int]{List: rows, PageObject: &w}, nil
}

func TestFetcherNavigates(t *testing.T) {
	board := &fakeBoard{totalRow: 230}
	f := NewFetcher(board.load, zaptest.NewLogger(t))
	ctx := context.Background()

	_, ok := f.NextPage(ctx)
	assert.False(t, ok, "nothing loaded yet")

	res := f.Load(ctx, 0, "youth")
	require.NotNil(t, res.Window)
	assert.Equal(t, 1, res.Window.Page)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, res.Records)
	assert.Equal(t, "youth", f.Word())

	res, ok = f.NextGroup(ctx)
	require.True(t, ok)
	assert.Equal(t, 11, res.Window.Page)

	res, ok = f.PreviousPage(ctx)
	require.True(t, ok)
	assert.Equal(t, 10, res.Window.Page)

	res = f.GoToPage(ctx, 23)
	assert.Equal(t, []int{221, 222, 223, 224, 225, 226, 227, 228, 229, 230}, res.Records)
	_, ok = f.NextPage(ctx)
	assert.False(t, ok)
	_, ok = f.NextGroup(ctx)
	assert.False(t, ok)

	res, ok = f.PreviousGroup(ctx)
	require.True(t, ok)
	assert.Equal(t, 20, res.Window.Page)

	for _, c := range board.calls {
		assert.Equal(t, "youth", c.word)
	}
	assert.Equal(t, 1, board.calls[0].page)
}

func TestFetcherNeverCaches(t *testing.T) {
	board := &fakeBoard{totalRow: 5}
	f := NewFetcher(board.load, nil)
	f.Load(context.Background(), 1, "")
	f.Load(context.Background(), 1, "")
	assert.Len(t, board.calls, 2)
}

func TestFetcherErrorBecomesMessage(t *testing.T) {
	board := &fakeBoard{err: &apiclient.StatusError{Code: 500, Message: "db down", Body: `{"message":"db down"}`}}
	f := NewFetcher(board.load, zaptest.NewLogger(t))

	res := f.Load(context.Background(), 3, "")
	assert.Equal(t, "Error: 500 - db down", res.Err)
	assert.Empty(t, res.Records)
	assert.NotNil(t, res.Records)
	assert.Nil(t, res.Window)
	assert.Nil(t, f.Window())
}

func TestFetcherTransportError(t *testing.T) {
	board := &fakeBoard{err: &apiclient.TransportError{Op: "GET /user/notice/list.do", Err: errors.New("connection refused")}}
	res := NewFetcher(board.load, nil).Load(context.Background(), 1, "")
	assert.Equal(t, "Network error: cannot connect to the server.", res.Err)
}

func TestFetcherNilList(t *testing.T) {
	board := &fakeBoard{nilList: true}
	res := NewFetcher(board.load, nil).Load(context.Background(), 1, "")
	assert.Empty(t, res.Err)
	assert.Empty(t, res.Records)
	assert.Nil(t, res.Window)
}

func TestFetcherDropsInvalidWindow(t *testing.T) {
	board := &fakeBoard{totalRow: 30, badPage: true}
	f := NewFetcher(board.load, zaptest.NewLogger(t))
	res := f.Load(context.Background(), 2, "")
	assert.Len(t, res.Records, 10)
	assert.Nil(t, res.Window)
	_, ok := f.NextPage(context.Background())
	assert.False(t, ok)
}

func TestFetcherWindowIsACopy(t *testing.T) {
	board := &fakeBoard{totalRow: 30}
	f := NewFetcher(board.load, nil)
	f.Load(context.Background(), 2, "")
	w := f.Window()
	w.Page = 99
	assert.Equal(t, 2, f.Window().Page)
}
