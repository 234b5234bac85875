package model

// Question is a Q&A board question.
type Question struct {
	QuestionNo int64     `json:"question_no"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	MemberID   string    `json:"member_id"`
	CreatedAt  Timestamp `json:"created_at"`
}

// Answer is the admin reply attached to a question.
type Answer struct {
	QuestionNo int64     `json:"question_no"`
	Content    string    `json:"content"`
	CreatedAt  Timestamp `json:"created_at"`
}

// QnaView is the /user/qna/view.do payload.
type QnaView struct {
	Question *Question `json:"questionVO"`
	Answer   *Answer   `json:"answerVO"`
}

// QuestionRequest is the body of member question mutations.
type QuestionRequest struct {
	QuestionNo int64  `json:"question_no,omitempty"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
	MemberID   string `json:"member_id,omitempty"`
}

// AnswerRequest is the body of admin answer mutations.
type AnswerRequest struct {
	QuestionNo int64  `json:"question_no"`
	Content    string `json:"content,omitempty"`
}
