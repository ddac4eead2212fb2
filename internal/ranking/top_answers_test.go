package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightstack/stackstream/internal/models"
)

func TestSelectTopAnswers_Empty(t *testing.T) {
	assert.Empty(t, SelectTopAnswers(nil))
	assert.Empty(t, SelectTopAnswers([]models.Answer{}))
}

func TestSelectTopAnswers_AcceptedAlwaysFirst(t *testing.T) {
	answers := []models.Answer{
		{AnswerID: 1, Score: 5, IsAccepted: false, OwnerReputation: 500},
		{AnswerID: 2, Score: 3, IsAccepted: true, OwnerReputation: 200},
		{AnswerID: 3, Score: 9, IsAccepted: false, OwnerReputation: 1500},
	}

	top := SelectTopAnswers(answers)
	require.Len(t, top, 3)
	assert.Equal(t, int64(2), top[0].AnswerID)
	assert.Equal(t, int64(3), top[1].AnswerID)
	assert.Equal(t, int64(1), top[2].AnswerID)
}

func TestSelectTopAnswers_ScoreFallback(t *testing.T) {
	answers := []models.Answer{
		{AnswerID: 10, Score: 1, OwnerReputation: 50},
		{AnswerID: 11, Score: 5, OwnerReputation: 50},
		{AnswerID: 12, Score: 3, OwnerReputation: 50},
		{AnswerID: 13, Score: 9, OwnerReputation: 50},
		{AnswerID: 14, Score: 2, OwnerReputation: 50},
	}

	top := SelectTopAnswers(answers)
	require.Len(t, top, 3)
	assert.Equal(t, int64(13), top[0].AnswerID)
	assert.Equal(t, int64(11), top[1].AnswerID)
	assert.Equal(t, int64(12), top[2].AnswerID)
	for _, a := range top {
		assert.False(t, a.IsAccepted)
	}
}

func TestSelectTopAnswers_LengthIsMinOfThree(t *testing.T) {
	answers := []models.Answer{}
	for i := 0; i < 6; i++ {
		answers = append(answers, models.Answer{AnswerID: int64(i), Score: i})
		want := len(answers)
		if want > 3 {
			want = 3
		}
		assert.Len(t, SelectTopAnswers(answers), want)
	}
}

func TestSelectTopAnswers_Deterministic(t *testing.T) {
	answers := []models.Answer{
		{AnswerID: 1, Score: 4, OwnerReputation: 2000},
		{AnswerID: 2, Score: 4, OwnerReputation: 3000},
		{AnswerID: 3, Score: 4, IsAccepted: true, OwnerReputation: 10},
		{AnswerID: 4, Score: 4, OwnerReputation: 10},
	}

	first := SelectTopAnswers(answers)
	second := SelectTopAnswers(answers)
	assert.Equal(t, first, second)

	// Equal scores keep input order within each pool.
	require.Len(t, first, 3)
	assert.Equal(t, int64(3), first[0].AnswerID)
	assert.Equal(t, int64(1), first[1].AnswerID)
	assert.Equal(t, int64(2), first[2].AnswerID)
}

func TestSelectTopAnswers_MultipleAcceptedUsesFirst(t *testing.T) {
	answers := []models.Answer{
		{AnswerID: 1, Score: 1, IsAccepted: true},
		{AnswerID: 2, Score: 9, IsAccepted: true},
	}

	top := SelectTopAnswers(answers)
	require.Len(t, top, 2)
	assert.Equal(t, int64(1), top[0].AnswerID)
	assert.Equal(t, int64(2), top[1].AnswerID)
}

func TestSelectTopAnswers_DoesNotMutateInput(t *testing.T) {
	answers := []models.Answer{
		{AnswerID: 1, Score: 1, OwnerReputation: 5000},
		{AnswerID: 2, Score: 9, OwnerReputation: 5000},
		{AnswerID: 3, Score: 5, OwnerReputation: 5000},
	}
	original := append([]models.Answer(nil), answers...)

	SelectTopAnswers(answers)
	assert.Equal(t, original, answers)
}
