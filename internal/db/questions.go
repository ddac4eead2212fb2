package db

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/records"
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/store"
)

// InsertQuestion writes the full question record and one tag-index cell per
// tag. Re-inserting the same question id overwrites the previous record.
func (r *Repository) InsertQuestion(ctx context.Context, q models.Question) error {
	key, cells, err := records.AssembleQuestionRecord(q)
	if err != nil {
		return err
	}

	if err := r.gateway.Put(ctx, store.TABLE_QNA, key, cells); err != nil {
		return fmt.Errorf("[Repository] failed to store question %s: %w", key, err)
	}

	qualifier := store.FAMILY_QUESTION_IDS + ":" + rowkey.TagIndexQualifier(q.CreationDate)
	for _, tag := range q.Tags {
		indexCells := map[string][]byte{qualifier: []byte(key)}
		if err := r.gateway.Put(ctx, store.TABLE_TAG_INDEX, tag, indexCells); err != nil {
			return fmt.Errorf("[Repository] failed to index question %s under tag %s: %w", key, tag, err)
		}
	}
	return nil
}

// GetQuestionByID fetches and decodes one question row. A missing row
// returns (nil, nil).
func (r *Repository) GetQuestionByID(ctx context.Context, questionID int64) (*models.Question, error) {
	cells, err := r.gateway.Get(ctx, store.TABLE_QNA, rowkey.QuestionRowKey(questionID))
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, nil
	}
	q := records.DecodeQuestionRecord(questionID, cells)
	return &q, nil
}

// GetQuestionsByTag scans the tag index by row prefix and returns up to
// limit questions in creation-time order. startTime and endTime bound the
// creation timestamps inclusively; zero means unbounded.
func (r *Repository) GetQuestionsByTag(ctx context.Context, tag string, limit int, startTime, endTime int64) ([]models.Question, error) {
	rows, err := r.gateway.Scan(ctx, store.TABLE_TAG_INDEX, store.ScanOptions{Prefix: tag})
	if err != nil {
		return nil, err
	}

	type indexEntry struct {
		qualifier  string
		questionID string
	}
	var entries []indexEntry
	for _, row := range rows {
		for cell, value := range row.Cells {
			entries = append(entries, indexEntry{qualifier: cell, questionID: string(value)})
		}
	}
	// Zero-padded qualifiers sort chronologically.
	sort.Slice(entries, func(i, j int) bool { return entries[i].qualifier < entries[j].qualifier })

	lower := ""
	upper := ""
	if startTime > 0 {
		lower = store.FAMILY_QUESTION_IDS + ":" + rowkey.TagIndexQualifier(startTime)
	}
	if endTime > 0 {
		upper = store.FAMILY_QUESTION_IDS + ":" + rowkey.TagIndexQualifier(endTime)
	}

	var questions []models.Question
	for _, entry := range entries {
		if lower != "" && entry.qualifier < lower {
			continue
		}
		if upper != "" && entry.qualifier > upper {
			continue
		}
		if limit > 0 && len(questions) >= limit {
			break
		}

		id, err := strconv.ParseInt(entry.questionID, 10, 64)
		if err != nil {
			slog.Warn("[Repository] Skipping malformed tag index entry",
				slog.String("tag", tag),
				slog.String("value", entry.questionID))
			continue
		}
		q, err := r.GetQuestionByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if q != nil {
			questions = append(questions, *q)
		}
	}
	return questions, nil
}
