package models

// Answer is one answer to a question as it arrives on the wire.
type Answer struct {
	AnswerID        int64  `json:"answer_id"`
	Body            string `json:"body"`
	Score           int    `json:"score"`
	IsAccepted      bool   `json:"is_accepted"`
	OwnerReputation int    `json:"owner_reputation"`
}

// Question is a question event plus the derived fields computed on the
// write path. TopAnswers, HasAccepted and IsUnanswered are never read from
// the wire; they are recomputed before every put.
type Question struct {
	QuestionID      int64    `json:"question_id"`
	Title           string   `json:"title"`
	Body            string   `json:"body"`
	CreationDate    int64    `json:"creation_date"`
	Score           int      `json:"score"`
	OwnerReputation int      `json:"owner_reputation"`
	Tags            []string `json:"tags"`
	Answers         []Answer `json:"answers"`

	HasAccepted  bool     `json:"has_accepted,omitempty"`
	IsUnanswered bool     `json:"is_unanswered,omitempty"`
	TopAnswers   []Answer `json:"top_answers,omitempty"`
}
