package apiclient

import (
	"context"

	"github.com/helper-labs/helper-portal/internal/model"
)

// PolicyList fetches one page of policies matching word. It fails with
// ErrLoginRequired without touching the network when no refresh token is stored.
func (c *Client) PolicyList(ctx context.Context, page, perPageNum int, word string) (model.ListPage[model.Policy], error) {
	if !c.Credentials().HasRefresh() {
		return model.ListPage[model.Policy]{}, ErrLoginRequired
	}
	payload, err := c.get(ctx, pathPolicyList, pageQuery(page, perPageNum, word))
	if err != nil {
		return model.ListPage[model.Policy]{}, err
	}
	return decodeJSON[model.ListPage[model.Policy]](payload, pathPolicyList)
}

// Ask sends a question to the chatbot and returns its free-text answer.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	return c.postText(ctx, pathChatAsk, model.ChatRequest{Question: question})
}
