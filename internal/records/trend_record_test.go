package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/rowkey"
)

func sampleTrend() models.TrendEvent {
	count := 1500
	return models.TrendEvent{
		Tag:               "spark",
		PeriodType:        "monthly",
		Timestamp:         1654041600, // 2022-06-01 00:00 UTC
		TotalQuestions:    1250,
		UnansweredPercent: 22.4,
		AcceptedPercent:   45.6,
		AvgQuestionScore:  3.7,
		AvgAnswerScore:    4.2,
		RawCount:          &count,
	}
}

func TestAssembleTrendRecord(t *testing.T) {
	codec := rowkey.NewCodec(time.UTC)

	key, cells, err := AssembleTrendRecord(codec, sampleTrend())
	require.NoError(t, err)

	assert.Equal(t, "spark#monthly#202206", key)
	assert.Equal(t, []byte("1250"), cells["trend:total_questions"])
	assert.Equal(t, []byte("22.4"), cells["trend:unanswered_percent"])
	assert.Equal(t, []byte("4.2"), cells["trend:avg_answer_score"])
	assert.Equal(t, []byte("1500"), cells["trend:raw_count"])
}

func TestAssembleTrendRecord_ZeroMetrics(t *testing.T) {
	codec := rowkey.NewCodec(time.UTC)

	ev := models.TrendEvent{Tag: "go", PeriodType: "daily", Timestamp: 1654041600}
	_, cells, err := AssembleTrendRecord(codec, ev)
	require.NoError(t, err)

	assert.Equal(t, []byte("0"), cells["trend:total_questions"])
	assert.Equal(t, []byte("0.0"), cells["trend:unanswered_percent"])
	_, ok := cells["trend:raw_count"]
	assert.False(t, ok)
}

func TestAssembleTrendRecord_Errors(t *testing.T) {
	codec := rowkey.NewCodec(time.UTC)

	ev := sampleTrend()
	ev.PeriodType = "weekly"
	_, _, err := AssembleTrendRecord(codec, ev)
	assert.ErrorIs(t, err, rowkey.ErrInvalidPeriodType)

	ev = sampleTrend()
	ev.Tag = ""
	_, _, err = AssembleTrendRecord(codec, ev)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestTrendRecord_RoundTrip(t *testing.T) {
	codec := rowkey.NewCodec(time.UTC)
	ev := sampleTrend()

	key, cells, err := AssembleTrendRecord(codec, ev)
	require.NoError(t, err)

	rec, err := DecodeTrendRecord(key, cells)
	require.NoError(t, err)

	assert.Equal(t, "spark", rec.Tag)
	assert.Equal(t, "monthly", rec.Period)
	assert.Equal(t, "202206", rec.Bucket)
	assert.Equal(t, ev.TotalQuestions, rec.TotalQuestions)
	assert.Equal(t, ev.UnansweredPercent, rec.UnansweredPercent)
	assert.Equal(t, ev.AcceptedPercent, rec.AcceptedPercent)
	assert.Equal(t, ev.AvgQuestionScore, rec.AvgQuestionScore)
	assert.Equal(t, ev.AvgAnswerScore, rec.AvgAnswerScore)
	require.NotNil(t, rec.RawCount)
	assert.Equal(t, *ev.RawCount, *rec.RawCount)
}

func TestDecodeTrendRecord_MissingCellsDefault(t *testing.T) {
	rec, err := DecodeTrendRecord("go#daily#20220601", nil)
	require.NoError(t, err)

	assert.Equal(t, "go", rec.Tag)
	assert.Zero(t, rec.TotalQuestions)
	assert.Zero(t, rec.UnansweredPercent)
	assert.Nil(t, rec.RawCount)

	_, err = DecodeTrendRecord("not-a-trend-key", nil)
	assert.ErrorIs(t, err, rowkey.ErrMalformedTrendKey)
}
