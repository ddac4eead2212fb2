package models

// TrendEvent is one per-tag rollup arriving on the trends topic. RawCount is
// optional on the wire; when absent the stored record simply omits the cell.
type TrendEvent struct {
	Tag               string  `json:"tag"`
	PeriodType        string  `json:"period_type"`
	Timestamp         int64   `json:"timestamp"`
	TotalQuestions    int     `json:"total_questions"`
	UnansweredPercent float64 `json:"unanswered_percent"`
	AcceptedPercent   float64 `json:"accepted_percent"`
	AvgQuestionScore  float64 `json:"avg_question_score"`
	AvgAnswerScore    float64 `json:"avg_answer_score"`
	RawCount          *int    `json:"count,omitempty"`
}

// TrendRecord is a decoded trend row. Tag, Period and Bucket come from the
// row key; the metrics come from the trend column family.
type TrendRecord struct {
	Tag               string  `json:"tag"`
	Period            string  `json:"period"`
	Bucket            string  `json:"bucket"`
	TotalQuestions    int     `json:"total_questions"`
	UnansweredPercent float64 `json:"unanswered_percent"`
	AcceptedPercent   float64 `json:"accepted_percent"`
	AvgQuestionScore  float64 `json:"avg_question_score"`
	AvgAnswerScore    float64 `json:"avg_answer_score"`
	RawCount          *int    `json:"raw_count,omitempty"`
}
