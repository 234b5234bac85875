package pagination

import (
	"context"
	"sync"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/model"
	"go.uber.org/zap"
)

// LoadFunc requests one page of records, optionally filtered by a search word.
type LoadFunc[T any] func(ctx context.Context, page int, word string) (model.ListPage[T], error)

// Result is what a list page renders: records plus the window for its
// navigation bar, or an error message with nothing to show.
type Result[T any] struct {
	Records []T
	Window  *model.PageWindow
	Err     string
}

// Fetcher turns page requests into server calls. It never caches: every
// load goes to the server.
type Fetcher[T any] struct {
	load   LoadFunc[T]
	logger *zap.Logger

	mu     sync.Mutex
	window *model.PageWindow
	word   string
}

// NewFetcher builds a Fetcher around load.
func NewFetcher[T any](load LoadFunc[T], logger *zap.Logger) *Fetcher[T] {
	return &Fetcher[T]{load: load, logger: logging.OrNop(logger)}
}

// Load requests page (coerced to at least 1) for word. Failures never
// escape: they come back as an empty Result carrying the message to show.
func (f *Fetcher[T]) Load(ctx context.Context, page int, word string) Result[T] {
	if page < 1 {
		page = 1
	}
	resp, err := f.load(ctx, page, word)
	if err != nil {
		f.logger.Warn("list fetch failed", zap.Int("page", page), zap.String("word", word), zap.Error(err))
		f.remember(nil, word)
		return Result[T]{Records: []T{}, Err: apiclient.DescribeLoadError(err)}
	}
	if resp.List == nil {
		f.remember(nil, word)
		return Result[T]{Records: []T{}}
	}

	window := resp.PageObject
	if window != nil {
		if verr := window.Validate(); verr != nil {
			f.logger.Warn("discarding invalid page window", zap.Error(verr))
			window = nil
		} else {
			copied := *window
			window = &copied
		}
	}
	f.remember(window, word)
	return Result[T]{Records: resp.List, Window: window}
}

func (f *Fetcher[T]) remember(window *model.PageWindow, word string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.window = window
	f.word = word
}

// Window returns the last accepted window, or nil.
func (f *Fetcher[T]) Window() *model.PageWindow {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.window == nil {
		return nil
	}
	copied := *f.window
	return &copied
}

// Word returns the search word of the last load.
func (f *Fetcher[T]) Word() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.word
}

// GoToPage requests n as-is; callers only offer targets from Controls.
func (f *Fetcher[T]) GoToPage(ctx context.Context, n int) Result[T] {
	return f.Load(ctx, n, f.Word())
}

// PreviousPage loads page-1 when offered.
func (f *Fetcher[T]) PreviousPage(ctx context.Context) (Result[T], bool) {
	return f.step(ctx, PreviousPageTarget)
}

// NextPage loads page+1 when offered.
func (f *Fetcher[T]) NextPage(ctx context.Context) (Result[T], bool) {
	return f.step(ctx, NextPageTarget)
}

// PreviousGroup loads startPage-1 when offered.
func (f *Fetcher[T]) PreviousGroup(ctx context.Context) (Result[T], bool) {
	return f.step(ctx, PreviousGroupTarget)
}

// NextGroup loads endPage+1 when offered.
func (f *Fetcher[T]) NextGroup(ctx context.Context) (Result[T], bool) {
	return f.step(ctx, NextGroupTarget)
}

func (f *Fetcher[T]) step(ctx context.Context, target func(model.PageWindow) (int, bool)) (Result[T], bool) {
	window := f.Window()
	if window == nil {
		return Result[T]{}, false
	}
	page, ok := target(*window)
	if !ok {
		return Result[T]{}, false
	}
	return f.Load(ctx, page, f.Word()), true
}
