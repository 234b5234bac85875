package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
)

func TestWriteNoticePage(t *testing.T) {
	w := pagination.Compute(2, 10, 12, 10)
	var out bytes.Buffer
	writeNoticePage(&out, pagination.Result[model.Notice]{
		Records: []model.Notice{{NoticeNo: 2, Title: "second"}, {NoticeNo: 1, Title: "first"}},
		Window:  &w,
	})

	text := out.String()
	assert.Contains(t, text, "second")
	assert.Contains(t, text, "‹ 1 [2]  (page 2 of 2)")
	assert.NotContains(t, text, "›")
}

func TestWriteNoticePageEmpty(t *testing.T) {
	w := pagination.Compute(1, 10, 0, 10)
	var out bytes.Buffer
	writeNoticePage(&out, pagination.Result[model.Notice]{Records: []model.Notice{}, Window: &w})
	assert.Equal(t, "No notices.\n\n[1]  (page 1 of 1)\n", out.String())
}

func TestWriteNoticePageError(t *testing.T) {
	var out bytes.Buffer
	writeNoticePage(&out, pagination.Result[model.Notice]{Err: "Error: 500 - db down"})
	assert.Empty(t, out.String())
}
