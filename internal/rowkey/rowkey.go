package rowkey

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PeriodType is the bucket granularity of a trend row.
type PeriodType string

const (
	PeriodHourly  PeriodType = "hourly"
	PeriodDaily   PeriodType = "daily"
	PeriodMonthly PeriodType = "monthly"
)

const (
	// TREND_KEY_SEPARATOR joins the trend row key parts. Tags containing
	// the separator produce keys that cannot be parsed back; Stack Overflow
	// tags never do.
	TREND_KEY_SEPARATOR = "#"

	// SCAN_SENTINEL sorts after every character that can appear in a bucket,
	// turning an inclusive upper bound into an exclusive row stop.
	SCAN_SENTINEL = "~"

	// TAG_INDEX_QUALIFIER_WIDTH pads creation timestamps so that
	// lexicographic qualifier order matches chronological order for any
	// int64 timestamp.
	TAG_INDEX_QUALIFIER_WIDTH = 19
)

var (
	ErrInvalidPeriodType = errors.New("invalid period type")
	ErrMalformedTrendKey = errors.New("malformed trend row key")
)

// ParsePeriodType validates a wire-level period string.
func ParsePeriodType(s string) (PeriodType, error) {
	switch PeriodType(s) {
	case PeriodHourly, PeriodDaily, PeriodMonthly:
		return PeriodType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodType, s)
	}
}

// Codec formats time buckets in an explicitly configured location. The
// location is fixed at construction so that every writer of a deployment
// produces identical buckets.
type Codec struct {
	loc *time.Location
}

func NewCodec(loc *time.Location) *Codec {
	if loc == nil {
		loc = time.UTC
	}
	return &Codec{loc: loc}
}

// FormatBucket truncates an epoch timestamp to the bucket granularity:
// hourly YYYYMMDDHH, daily YYYYMMDD, monthly YYYYMM.
func (c *Codec) FormatBucket(timestamp int64, period PeriodType) (string, error) {
	t := time.Unix(timestamp, 0).In(c.loc)
	switch period {
	case PeriodHourly:
		return t.Format("2006010215"), nil
	case PeriodDaily:
		return t.Format("20060102"), nil
	case PeriodMonthly:
		return t.Format("200601"), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriodType, period)
	}
}

// TrendRowKey builds the "{tag}#{period}#{bucket}" row key.
func TrendRowKey(tag string, period PeriodType, bucket string) string {
	return tag + TREND_KEY_SEPARATOR + string(period) + TREND_KEY_SEPARATOR + bucket
}

// TrendRowPrefix is the scan prefix covering every bucket of one tag and
// period.
func TrendRowPrefix(tag string, period PeriodType) string {
	return tag + TREND_KEY_SEPARATOR + string(period) + TREND_KEY_SEPARATOR
}

// ParseTrendRowKey decodes a trend row key back into its parts.
func ParseTrendRowKey(key string) (tag string, period PeriodType, bucket string, err error) {
	parts := strings.Split(key, TREND_KEY_SEPARATOR)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: %q", ErrMalformedTrendKey, key)
	}
	period, err = ParsePeriodType(parts[1])
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %q", ErrMalformedTrendKey, key)
	}
	return parts[0], period, parts[2], nil
}

// QuestionRowKey is the decimal question id.
func QuestionRowKey(questionID int64) string {
	return fmt.Sprintf("%d", questionID)
}

// TagIndexQualifier formats a creation timestamp as a fixed-width decimal
// string so that qualifier range scans return ids in chronological order.
func TagIndexQualifier(creationTimestamp int64) string {
	return fmt.Sprintf("%0*d", TAG_INDEX_QUALIFIER_WIDTH, creationTimestamp)
}

// InclusiveStop appends the sentinel to an inclusive upper bound so it can be
// used as an exclusive row stop.
func InclusiveStop(bound string) string {
	return bound + SCAN_SENTINEL
}
