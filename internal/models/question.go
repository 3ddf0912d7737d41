// internal/models/question.go
package models

// AskRequest is the inbound question shared by the HTTP, worker and MCP surfaces.
type AskRequest struct {
	Question string `json:"question" form:"question"`
}

// AskResponse keeps the public contract of the ask operation: a single answer field.
type AskResponse struct {
	Answer string `json:"answer"`
}
