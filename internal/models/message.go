// internal/models/message.go
package models

// Message is one record of the remote member message log.
type Message struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	UserName  string `json:"user_name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// MessagePage is a single skip/limit page returned by the messages service.
type MessagePage struct {
	Total int       `json:"total"`
	Items []Message `json:"items"`
}
