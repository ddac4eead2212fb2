package records

import (
	"fmt"

	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/store"
)

// AssembleTrendRecord builds the row key and trend cells for one rollup
// event. The bucket comes from the event timestamp truncated by the codec;
// missing metrics are stored as zeros, the raw count cell only when present.
func AssembleTrendRecord(codec *rowkey.Codec, ev models.TrendEvent) (string, map[string][]byte, error) {
	if ev.Tag == "" {
		return "", nil, fmt.Errorf("%w: tag", ErrMissingRequiredField)
	}

	period, err := rowkey.ParsePeriodType(ev.PeriodType)
	if err != nil {
		return "", nil, err
	}
	bucket, err := codec.FormatBucket(ev.Timestamp, period)
	if err != nil {
		return "", nil, err
	}

	cells := map[string][]byte{
		store.FAMILY_TREND + ":total_questions":    formatInt(int64(ev.TotalQuestions)),
		store.FAMILY_TREND + ":unanswered_percent": formatFloat(ev.UnansweredPercent),
		store.FAMILY_TREND + ":accepted_percent":   formatFloat(ev.AcceptedPercent),
		store.FAMILY_TREND + ":avg_question_score": formatFloat(ev.AvgQuestionScore),
		store.FAMILY_TREND + ":avg_answer_score":   formatFloat(ev.AvgAnswerScore),
	}
	if ev.RawCount != nil {
		cells[store.FAMILY_TREND+":raw_count"] = formatInt(int64(*ev.RawCount))
	}

	return rowkey.TrendRowKey(ev.Tag, period, bucket), cells, nil
}

// DecodeTrendRecord rebuilds a TrendRecord from its row key and cells.
// Missing metric cells default to zero.
func DecodeTrendRecord(key string, cells map[string][]byte) (models.TrendRecord, error) {
	tag, period, bucket, err := rowkey.ParseTrendRowKey(key)
	if err != nil {
		return models.TrendRecord{}, err
	}

	rec := models.TrendRecord{
		Tag:               tag,
		Period:            string(period),
		Bucket:            bucket,
		TotalQuestions:    int(parseInt(cells[store.FAMILY_TREND+":total_questions"])),
		UnansweredPercent: parseFloat(cells[store.FAMILY_TREND+":unanswered_percent"]),
		AcceptedPercent:   parseFloat(cells[store.FAMILY_TREND+":accepted_percent"]),
		AvgQuestionScore:  parseFloat(cells[store.FAMILY_TREND+":avg_question_score"]),
		AvgAnswerScore:    parseFloat(cells[store.FAMILY_TREND+":avg_answer_score"]),
	}
	if raw, ok := cells[store.FAMILY_TREND+":raw_count"]; ok {
		count := int(parseInt(raw))
		rec.RawCount = &count
	}

	return rec, nil
}
