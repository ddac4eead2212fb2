package records

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/ranking"
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/store"
)

// ErrMissingRequiredField is returned when a write lacks an identity field.
// Optional fields default silently on both write and read instead.
var ErrMissingRequiredField = errors.New("missing required field")

// AssembleQuestionRecord builds the full cell map for one question row and
// recomputes the derived fields: top_answers via the ranking policy,
// has_accepted, is_unanswered. Every put carries the complete set of cells,
// so re-ingesting a question overwrites the previous record.
func AssembleQuestionRecord(q models.Question) (string, map[string][]byte, error) {
	if q.QuestionID == 0 {
		return "", nil, fmt.Errorf("%w: question_id", ErrMissingRequiredField)
	}
	if q.Title == "" {
		return "", nil, fmt.Errorf("%w: title", ErrMissingRequiredField)
	}
	if q.Body == "" {
		return "", nil, fmt.Errorf("%w: body", ErrMissingRequiredField)
	}

	tags, err := json.Marshal(q.Tags)
	if err != nil {
		return "", nil, fmt.Errorf("[Records] failed to encode tags for question %d: %w", q.QuestionID, err)
	}

	hasAccepted := false
	for _, a := range q.Answers {
		if a.IsAccepted {
			hasAccepted = true
			break
		}
	}

	cells := map[string][]byte{
		store.FAMILY_QUESTION + ":title":            []byte(q.Title),
		store.FAMILY_QUESTION + ":body":             []byte(q.Body),
		store.FAMILY_QUESTION + ":creation_date":    formatInt(q.CreationDate),
		store.FAMILY_QUESTION + ":score":            formatInt(int64(q.Score)),
		store.FAMILY_QUESTION + ":owner_reputation": formatInt(int64(q.OwnerReputation)),
		store.FAMILY_QUESTION + ":tags":             tags,
		store.FAMILY_QUESTION + ":has_accepted":     formatBool(hasAccepted),
		store.FAMILY_QUESTION + ":is_unanswered":    formatBool(len(q.Answers) == 0),
	}

	for i, a := range q.Answers {
		addAnswerCells(cells, store.FAMILY_ANSWERS, fmt.Sprintf("answer%d", i+1), a)
	}
	for i, a := range ranking.SelectTopAnswers(q.Answers) {
		addAnswerCells(cells, store.FAMILY_TOP_ANSWERS, fmt.Sprintf("top%d", i+1), a)
	}

	return rowkey.QuestionRowKey(q.QuestionID), cells, nil
}

func addAnswerCells(cells map[string][]byte, family, prefix string, a models.Answer) {
	cells[family+":"+prefix+"_id"] = formatInt(a.AnswerID)
	cells[family+":"+prefix+"_body"] = []byte(a.Body)
	cells[family+":"+prefix+"_score"] = formatInt(int64(a.Score))
	cells[family+":"+prefix+"_is_accepted"] = formatBool(a.IsAccepted)
	cells[family+":"+prefix+"_owner_reputation"] = formatInt(int64(a.OwnerReputation))
}

// DecodeQuestionRecord rebuilds a Question from a stored cell map. Missing
// cells default to zero values; only the id comes from the row key.
func DecodeQuestionRecord(questionID int64, cells map[string][]byte) models.Question {
	q := models.Question{
		QuestionID:      questionID,
		Title:           string(cells[store.FAMILY_QUESTION+":title"]),
		Body:            string(cells[store.FAMILY_QUESTION+":body"]),
		CreationDate:    parseInt(cells[store.FAMILY_QUESTION+":creation_date"]),
		Score:           int(parseInt(cells[store.FAMILY_QUESTION+":score"])),
		OwnerReputation: int(parseInt(cells[store.FAMILY_QUESTION+":owner_reputation"])),
		HasAccepted:     parseBool(cells[store.FAMILY_QUESTION+":has_accepted"]),
		IsUnanswered:    parseBool(cells[store.FAMILY_QUESTION+":is_unanswered"]),
	}

	if raw, ok := cells[store.FAMILY_QUESTION+":tags"]; ok {
		var tags []string
		if err := json.Unmarshal(raw, &tags); err == nil {
			q.Tags = tags
		}
	}

	for i := 1; ; i++ {
		a, ok := decodeAnswer(cells, store.FAMILY_ANSWERS, fmt.Sprintf("answer%d", i))
		if !ok {
			break
		}
		q.Answers = append(q.Answers, a)
	}
	for i := 1; i <= ranking.MAX_TOP_ANSWERS; i++ {
		a, ok := decodeAnswer(cells, store.FAMILY_TOP_ANSWERS, fmt.Sprintf("top%d", i))
		if !ok {
			break
		}
		q.TopAnswers = append(q.TopAnswers, a)
	}

	return q
}

func decodeAnswer(cells map[string][]byte, family, prefix string) (models.Answer, bool) {
	id, ok := cells[family+":"+prefix+"_id"]
	if !ok {
		return models.Answer{}, false
	}
	return models.Answer{
		AnswerID:        parseInt(id),
		Body:            string(cells[family+":"+prefix+"_body"]),
		Score:           int(parseInt(cells[family+":"+prefix+"_score"])),
		IsAccepted:      parseBool(cells[family+":"+prefix+"_is_accepted"]),
		OwnerReputation: int(parseInt(cells[family+":"+prefix+"_owner_reputation"])),
	}, true
}
