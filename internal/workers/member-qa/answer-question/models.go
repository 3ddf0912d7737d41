// internal/workers/member-qa/answer-question/models.go
package answerquestion

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Answer  string `json:"answer"`
	Subject string `json:"subject"`
	Intent  string `json:"intent"`
	Outcome string `json:"outcome"`
}
