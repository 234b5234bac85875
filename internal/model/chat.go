package model

import "time"

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one line of the chatbot transcript.
type ChatMessage struct {
	ID        uint64    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatRequest is the body of /member/chatbot/ask.do.
type ChatRequest struct {
	Question string `json:"question"`
}
