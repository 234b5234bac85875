package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/helper-labs/helper-portal/internal/model"
)

// QnaList fetches one page of questions.
func (c *Client) QnaList(ctx context.Context, page, perPageNum int) (model.ListPage[model.Question], error) {
	payload, err := c.get(ctx, pathQnaList, pageQuery(page, perPageNum, ""))
	if err != nil {
		return model.ListPage[model.Question]{}, err
	}
	return decodeJSON[model.ListPage[model.Question]](payload, pathQnaList)
}

// QnaView fetches a question and its answer, if any.
func (c *Client) QnaView(ctx context.Context, questionNo int64) (*model.QnaView, error) {
	query := url.Values{}
	query.Set("question_no", strconv.FormatInt(questionNo, 10))
	payload, err := c.get(ctx, pathQnaView, query)
	if err != nil {
		return nil, err
	}
	view, err := decodeJSON[model.QnaView](payload, pathQnaView)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// QuestionWrite posts a new question as memberID.
func (c *Client) QuestionWrite(ctx context.Context, memberID, title, content string) (string, error) {
	return c.postText(ctx, pathQuestionWrite, model.QuestionRequest{Title: title, Content: content, MemberID: memberID})
}

// QuestionUpdate edits a question owned by memberID.
func (c *Client) QuestionUpdate(ctx context.Context, questionNo int64, memberID, title, content string) (string, error) {
	return c.postText(ctx, pathQuestionUpdate, model.QuestionRequest{
		QuestionNo: questionNo,
		Title:      title,
		Content:    content,
		MemberID:   memberID,
	})
}

// QuestionDelete removes a question.
func (c *Client) QuestionDelete(ctx context.Context, questionNo int64, memberID string) (string, error) {
	return c.postText(ctx, pathQuestionDelete, model.QuestionRequest{QuestionNo: questionNo, MemberID: memberID})
}

// AnswerWrite attaches an answer to a question (admin only).
func (c *Client) AnswerWrite(ctx context.Context, questionNo int64, content string) (string, error) {
	return c.postText(ctx, pathAnswerWrite, model.AnswerRequest{QuestionNo: questionNo, Content: content})
}

// AnswerUpdate edits an answer (admin only).
func (c *Client) AnswerUpdate(ctx context.Context, questionNo int64, content string) (string, error) {
	return c.postText(ctx, pathAnswerUpdate, model.AnswerRequest{QuestionNo: questionNo, Content: content})
}

// AnswerDelete removes an answer (admin only).
func (c *Client) AnswerDelete(ctx context.Context, questionNo int64) (string, error) {
	return c.postText(ctx, pathAnswerDelete, model.AnswerRequest{QuestionNo: questionNo})
}
