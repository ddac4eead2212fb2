package rowkey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBucket(t *testing.T) {
	codec := NewCodec(time.UTC)

	// 2022-06-01 00:00:00 UTC
	const ts = 1654041600

	tests := []struct {
		period PeriodType
		want   string
	}{
		{PeriodHourly, "2022060100"},
		{PeriodDaily, "20220601"},
		{PeriodMonthly, "202206"},
	}
	for _, tt := range tests {
		got, err := codec.FormatBucket(ts, tt.period)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatBucket_FixedWidths(t *testing.T) {
	codec := NewCodec(time.UTC)
	widths := map[PeriodType]int{
		PeriodHourly:  10,
		PeriodDaily:   8,
		PeriodMonthly: 6,
	}

	for _, ts := range []int64{0, 1654012800, 4102444800} {
		for period, width := range widths {
			got, err := codec.FormatBucket(ts, period)
			require.NoError(t, err)
			assert.Len(t, got, width)
		}
	}
}

func TestFormatBucket_InvalidPeriod(t *testing.T) {
	codec := NewCodec(time.UTC)
	_, err := codec.FormatBucket(1654012800, PeriodType("weekly"))
	assert.ErrorIs(t, err, ErrInvalidPeriodType)
}

func TestFormatBucket_ConfiguredLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2022-06-01 03:00:00 UTC is still May 31 in New York.
	const ts = 1654052400
	utcBucket, err := NewCodec(time.UTC).FormatBucket(ts, PeriodDaily)
	require.NoError(t, err)
	nyBucket, err := NewCodec(loc).FormatBucket(ts, PeriodDaily)
	require.NoError(t, err)

	assert.Equal(t, "20220601", utcBucket)
	assert.Equal(t, "20220531", nyBucket)
}

func TestFormatBucket_MonthBoundaryDependsOnLocation(t *testing.T) {
	// 1654012800 is 2022-05-31 16:00 UTC and already June 1 in UTC+8.
	const ts = 1654012800

	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	got, err := NewCodec(shanghai).FormatBucket(ts, PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, "202206", got)

	got, err = NewCodec(time.UTC).FormatBucket(ts, PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, "202205", got)
}

func TestParsePeriodType(t *testing.T) {
	for _, valid := range []string{"hourly", "daily", "monthly"} {
		got, err := ParsePeriodType(valid)
		require.NoError(t, err)
		assert.Equal(t, PeriodType(valid), got)
	}

	_, err := ParsePeriodType("yearly")
	assert.ErrorIs(t, err, ErrInvalidPeriodType)
}

func TestTrendRowKey(t *testing.T) {
	assert.Equal(t, "spark#monthly#202206", TrendRowKey("spark", PeriodMonthly, "202206"))
	assert.Equal(t, "spark#monthly#", TrendRowPrefix("spark", PeriodMonthly))
}

func TestParseTrendRowKey(t *testing.T) {
	tag, period, bucket, err := ParseTrendRowKey("spark#monthly#202206")
	require.NoError(t, err)
	assert.Equal(t, "spark", tag)
	assert.Equal(t, PeriodMonthly, period)
	assert.Equal(t, "202206", bucket)

	_, _, _, err = ParseTrendRowKey("spark#monthly")
	assert.ErrorIs(t, err, ErrMalformedTrendKey)

	_, _, _, err = ParseTrendRowKey("spark#weekly#202206")
	assert.ErrorIs(t, err, ErrMalformedTrendKey)
}

func TestTagIndexQualifier_Ordering(t *testing.T) {
	// Padding keeps lexicographic order chronological across digit widths.
	timestamps := []int64{9, 99, 1000, 1654012800, 99999999999}

	prev := ""
	for _, ts := range timestamps {
		q := TagIndexQualifier(ts)
		assert.Len(t, q, TAG_INDEX_QUALIFIER_WIDTH)
		if prev != "" {
			assert.Less(t, prev, q)
		}
		prev = q
	}
}

func TestInclusiveStop(t *testing.T) {
	stop := InclusiveStop("spark#monthly#202206")
	assert.Equal(t, "spark#monthly#202206~", stop)
	// The sentinel sorts after any bucket continuation of the bound.
	assert.Less(t, "spark#monthly#2022069", stop)
}
