package model

// Policy is a government policy entry listed on the chatbot page.
type Policy struct {
	PolicyNo int64  `json:"policy_no"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}
