package model

// Notice is a notice board record. List responses omit Content.
type Notice struct {
	NoticeNo  int64     `json:"notice_no"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// NoticeRequest is the body of the admin notice mutations.
type NoticeRequest struct {
	NoticeNo int64  `json:"notice_no,omitempty"`
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
}
