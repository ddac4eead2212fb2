package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/records"
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/store"
)

// InsertTrend writes one trend rollup row. Events for the same tag, period
// and bucket overwrite each other.
func (r *Repository) InsertTrend(ctx context.Context, ev models.TrendEvent) error {
	key, cells, err := records.AssembleTrendRecord(r.codec, ev)
	if err != nil {
		return err
	}

	if err := r.gateway.Put(ctx, store.TABLE_TRENDS, key, cells); err != nil {
		return fmt.Errorf("[Repository] failed to store trend %s: %w", key, err)
	}
	return nil
}

// GetTagTrends scans the trend rows of one tag and period, optionally
// bounded to [startBucket, endBucket] inclusive. The upper bound gets the
// sentinel appended so the exclusive row stop still includes the end bucket.
func (r *Repository) GetTagTrends(ctx context.Context, tag string, period rowkey.PeriodType, startBucket, endBucket string) ([]models.TrendRecord, error) {
	if _, err := rowkey.ParsePeriodType(string(period)); err != nil {
		return nil, err
	}

	prefix := rowkey.TrendRowPrefix(tag, period)
	opts := store.ScanOptions{Prefix: prefix}
	if startBucket != "" {
		opts.Start = prefix + startBucket
	}
	if endBucket != "" {
		opts.Stop = rowkey.InclusiveStop(prefix + endBucket)
	}

	rows, err := r.gateway.Scan(ctx, store.TABLE_TRENDS, opts)
	if err != nil {
		return nil, err
	}

	trends := make([]models.TrendRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := records.DecodeTrendRecord(row.Key, row.Cells)
		if err != nil {
			slog.Warn("[Repository] Skipping undecodable trend row",
				slog.String("key", row.Key),
				slog.String("error", err.Error()))
			continue
		}
		trends = append(trends, rec)
	}
	return trends, nil
}
