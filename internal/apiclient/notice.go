package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/helper-labs/helper-portal/internal/model"
)

// NoticeList fetches one page of notices.
func (c *Client) NoticeList(ctx context.Context, page, perPageNum int) (model.ListPage[model.Notice], error) {
	payload, err := c.get(ctx, pathNoticeList, pageQuery(page, perPageNum, ""))
	if err != nil {
		return model.ListPage[model.Notice]{}, err
	}
	return decodeJSON[model.ListPage[model.Notice]](payload, pathNoticeList)
}

// NoticeView fetches a single notice including its content.
func (c *Client) NoticeView(ctx context.Context, noticeNo int64) (*model.Notice, error) {
	query := url.Values{}
	query.Set("notice_no", strconv.FormatInt(noticeNo, 10))
	payload, err := c.get(ctx, pathNoticeView, query)
	if err != nil {
		return nil, err
	}
	notice, err := decodeJSON[model.Notice](payload, pathNoticeView)
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

// NoticeWrite creates a notice (admin only) and returns the server's text result.
func (c *Client) NoticeWrite(ctx context.Context, title, content string) (string, error) {
	return c.postText(ctx, pathNoticeWrite, model.NoticeRequest{Title: title, Content: content})
}

// NoticeUpdate replaces a notice's title and content (admin only).
func (c *Client) NoticeUpdate(ctx context.Context, noticeNo int64, title, content string) (string, error) {
	return c.postText(ctx, pathNoticeUpdate, model.NoticeRequest{NoticeNo: noticeNo, Title: title, Content: content})
}

// NoticeDelete removes a notice (admin only).
func (c *Client) NoticeDelete(ctx context.Context, noticeNo int64) (string, error) {
	return c.postText(ctx, pathNoticeDelete, model.NoticeRequest{NoticeNo: noticeNo})
}

func (c *Client) postText(ctx context.Context, p string, body any) (string, error) {
	payload, err := c.post(ctx, p, body)
	if err != nil {
		return "", err
	}
	return text(payload), nil
}

func pageQuery(page, perPageNum int, word string) url.Values {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if perPageNum > 0 {
		query.Set("perPageNum", strconv.Itoa(perPageNum))
	}
	if word != "" {
		query.Set("word", word)
	}
	return query
}
