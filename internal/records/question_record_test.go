package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/store"
)

func sampleQuestion(answers []models.Answer) models.Question {
	return models.Question{
		QuestionID:      12345,
		Title:           "How to connect Spark to HBase?",
		Body:            "<p>I'm trying to read from HBase.</p>",
		CreationDate:    1654012800,
		Score:           25,
		OwnerReputation: 3500,
		Tags:            []string{"spark", "hbase", "java"},
		Answers:         answers,
	}
}

func TestAssembleQuestionRecord_Cells(t *testing.T) {
	q := sampleQuestion([]models.Answer{
		{AnswerID: 98765, Body: "<p>Use the connector.</p>", Score: 15, IsAccepted: true, OwnerReputation: 12500},
		{AnswerID: 98766, Body: "<p>Another approach.</p>", Score: 8, OwnerReputation: 7800},
	})

	key, cells, err := AssembleQuestionRecord(q)
	require.NoError(t, err)
	assert.Equal(t, "12345", key)

	assert.Equal(t, []byte("How to connect Spark to HBase?"), cells["question:title"])
	assert.Equal(t, []byte("25"), cells["question:score"])
	assert.Equal(t, []byte(`["spark","hbase","java"]`), cells["question:tags"])
	assert.Equal(t, []byte("True"), cells["question:has_accepted"])
	assert.Equal(t, []byte("False"), cells["question:is_unanswered"])

	assert.Equal(t, []byte("98765"), cells["answers:answer1_id"])
	assert.Equal(t, []byte("98766"), cells["answers:answer2_id"])
	assert.Equal(t, []byte("False"), cells["answers:answer2_is_accepted"])

	// Accepted answer lands in the first top slot.
	assert.Equal(t, []byte("98765"), cells["top_answers:top1_id"])
	assert.Equal(t, []byte("98766"), cells["top_answers:top2_id"])
	_, ok := cells["top_answers:top3_id"]
	assert.False(t, ok)
}

func TestAssembleQuestionRecord_NoAnswers(t *testing.T) {
	_, cells, err := AssembleQuestionRecord(sampleQuestion(nil))
	require.NoError(t, err)

	assert.Equal(t, []byte("False"), cells["question:has_accepted"])
	assert.Equal(t, []byte("True"), cells["question:is_unanswered"])
	_, ok := cells["answers:answer1_id"]
	assert.False(t, ok)
	_, ok = cells["top_answers:top1_id"]
	assert.False(t, ok)
}

func TestAssembleQuestionRecord_RequiredFields(t *testing.T) {
	q := sampleQuestion(nil)
	q.QuestionID = 0
	_, _, err := AssembleQuestionRecord(q)
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	q = sampleQuestion(nil)
	q.Title = ""
	_, _, err = AssembleQuestionRecord(q)
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	q = sampleQuestion(nil)
	q.Body = ""
	_, _, err = AssembleQuestionRecord(q)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestQuestionRecord_RoundTrip(t *testing.T) {
	answerSets := map[string][]models.Answer{
		"no answers":  nil,
		"one answer":  {{AnswerID: 1, Body: "a", Score: 2, OwnerReputation: 10}},
		"five answers": {
			{AnswerID: 1, Body: "a", Score: 1, OwnerReputation: 50},
			{AnswerID: 2, Body: "b", Score: 5, OwnerReputation: 2000},
			{AnswerID: 3, Body: "c", Score: 3, IsAccepted: true, OwnerReputation: 10},
			{AnswerID: 4, Body: "d", Score: 9, OwnerReputation: 1500},
			{AnswerID: 5, Body: "e", Score: -2, OwnerReputation: 0},
		},
	}

	for name, answers := range answerSets {
		t.Run(name, func(t *testing.T) {
			q := sampleQuestion(answers)
			_, cells, err := AssembleQuestionRecord(q)
			require.NoError(t, err)

			got := DecodeQuestionRecord(q.QuestionID, cells)

			assert.Equal(t, q.QuestionID, got.QuestionID)
			assert.Equal(t, q.Title, got.Title)
			assert.Equal(t, q.Body, got.Body)
			assert.Equal(t, q.CreationDate, got.CreationDate)
			assert.Equal(t, q.Score, got.Score)
			assert.Equal(t, q.OwnerReputation, got.OwnerReputation)
			assert.Equal(t, q.Tags, got.Tags)
			assert.Equal(t, q.Answers, got.Answers)
			assert.Equal(t, len(answers) == 0, got.IsUnanswered)
			assert.LessOrEqual(t, len(got.TopAnswers), 3)
		})
	}
}

func TestDecodeQuestionRecord_MissingCellsDefault(t *testing.T) {
	got := DecodeQuestionRecord(42, map[string][]byte{
		store.FAMILY_QUESTION + ":title": []byte("only a title"),
	})

	assert.Equal(t, int64(42), got.QuestionID)
	assert.Equal(t, "only a title", got.Title)
	assert.Empty(t, got.Body)
	assert.Zero(t, got.Score)
	assert.Empty(t, got.Tags)
	assert.False(t, got.HasAccepted)
	assert.Empty(t, got.Answers)
}

func TestQuestionRecord_IdempotentOverwrite(t *testing.T) {
	q := sampleQuestion([]models.Answer{{AnswerID: 1, Body: "a", Score: 2, OwnerReputation: 10}})

	_, first, err := AssembleQuestionRecord(q)
	require.NoError(t, err)
	_, second, err := AssembleQuestionRecord(q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
