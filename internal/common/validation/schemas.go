package validation

// MessagePage accepts the messages service page payload. Missing fields are
// tolerated; present fields must carry the expected JSON types.
var MessagePage = MustCompile("message-page", `{
  "type": "object",
  "properties": {
    "total": {"type": "integer", "minimum": 0},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id":        {"type": ["string", "null"]},
          "user_id":   {"type": ["string", "null"]},
          "user_name": {"type": ["string", "null"]},
          "message":   {"type": ["string", "null"]},
          "timestamp": {"type": ["string", "null"]}
        }
      }
    }
  }
}`)

// AnswerQuestionInput checks the variables of an answer-member-question job.
var AnswerQuestionInput = MustCompile("answer-question-input", `{
  "type": "object",
  "required": ["question"],
  "properties": {
    "question": {"type": "string", "minLength": 1}
  }
}`)
