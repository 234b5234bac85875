package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helper-labs/helper-portal/internal/model"
)

func win(page, start, end, total int) model.PageWindow {
	return model.PageWindow{Page: page, StartPage: start, EndPage: end, TotalPage: total}
}

func labels(controls []Control) []string {
	out := make([]string, 0, len(controls))
	for _, c := range controls {
		out = append(out, c.Label())
	}
	return out
}

func TestControlsMiddleOfFirstGroup(t *testing.T) {
	w := win(5, 1, 10, 12)
	controls := Controls(&w)

	assert.Equal(t, []string{"‹", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "›", "»"}, labels(controls))
	assert.Equal(t, Control{Kind: PrevPage, Target: 4}, controls[0])
	assert.Equal(t, Control{Kind: PageLink, Target: 5, Current: true}, controls[5])
	assert.Equal(t, Control{Kind: NextPage, Target: 6}, controls[11])
	assert.Equal(t, Control{Kind: NextGroup, Target: 11}, controls[12])
}

func TestControlsLastGroup(t *testing.T) {
	w := win(15, 11, 20, 20)
	controls := Controls(&w)

	require.NotEmpty(t, controls)
	assert.Equal(t, Control{Kind: PrevGroup, Target: 10}, controls[0])
	assert.Equal(t, Control{Kind: PrevPage, Target: 14}, controls[1])
	last := controls[len(controls)-1]
	assert.Equal(t, Control{Kind: NextPage, Target: 16}, last)
}

func TestControlsSinglePage(t *testing.T) {
	w := win(1, 1, 1, 1)
	assert.Equal(t, []Control{{Kind: PageLink, Target: 1, Current: true}}, Controls(&w))
	assert.Nil(t, Controls(nil))
}

func TestTargets(t *testing.T) {
	tests := []struct {
		name   string
		w      model.PageWindow
		target func(model.PageWindow) (int, bool)
		want   int
		ok     bool
	}{
		{"previous page on first", win(1, 1, 10, 12), PreviousPageTarget, 0, false},
		{"previous page", win(3, 1, 10, 12), PreviousPageTarget, 2, true},
		{"next page on last", win(12, 11, 12, 12), NextPageTarget, 0, false},
		{"next page", win(10, 1, 10, 12), NextPageTarget, 11, true},
		{"previous group in first group", win(5, 1, 10, 12), PreviousGroupTarget, 0, false},
		{"previous group", win(15, 11, 20, 20), PreviousGroupTarget, 10, true},
		{"next group in last group", win(15, 11, 20, 20), NextGroupTarget, 0, false},
		{"next group", win(5, 1, 10, 12), NextGroupTarget, 11, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.target(tc.w)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeAlwaysValid(t *testing.T) {
	for total := 0; total <= 130; total += 7 {
		for page := -1; page <= 15; page++ {
			w := Compute(page, 10, total, 10)
			require.NoError(t, w.Validate(), "page=%d total=%d", page, total)
			assert.LessOrEqual(t, w.Width(), 10)
		}
	}
}

func TestCompute(t *testing.T) {
	assert.Equal(t, model.PageWindow{Page: 2, StartPage: 1, EndPage: 2, TotalPage: 2, PerPageNum: 10, TotalRow: 12},
		Compute(2, 10, 12, 10))
	assert.Equal(t, model.PageWindow{Page: 1, StartPage: 1, EndPage: 1, TotalPage: 1, PerPageNum: 10},
		Compute(1, 10, 0, 10))

	clamped := Compute(99, 10, 230, 10)
	assert.Equal(t, 23, clamped.Page)
	assert.Equal(t, 21, clamped.StartPage)
	assert.Equal(t, 23, clamped.EndPage)

	assert.Equal(t, 20, Offset(Compute(3, 10, 230, 10)))
}

func TestParsePage(t *testing.T) {
	for raw, want := range map[string]int{
		"":    1,
		"abc": 1,
		"0":   1,
		"-4":  1,
		" 7 ": 7,
		"12":  12,
	} {
		assert.Equal(t, want, ParsePage(raw), raw)
	}
}
