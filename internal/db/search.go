package db

import (
	"context"
	"strconv"
	"strings"

	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/records"
	"github.com/sightstack/stackstream/internal/store"
)

// SearchQuestions scans the qna table and returns up to limit questions
// whose title contains query (case-insensitive) and which carry every tag
// in tags. An empty query matches every title.
func (r *Repository) SearchQuestions(ctx context.Context, query string, tags []string, limit int) ([]models.Question, error) {
	rows, err := r.gateway.Scan(ctx, store.TABLE_QNA, store.ScanOptions{})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var results []models.Question
	for _, row := range rows {
		if limit > 0 && len(results) >= limit {
			break
		}

		id, err := strconv.ParseInt(row.Key, 10, 64)
		if err != nil {
			continue
		}
		q := records.DecodeQuestionRecord(id, row.Cells)

		if needle != "" && !strings.Contains(strings.ToLower(q.Title), needle) {
			continue
		}
		if !hasAllTags(q.Tags, tags) {
			continue
		}
		results = append(results, q)
	}
	return results, nil
}

// SuggestQuestionTitles returns up to max titles containing the prefix,
// case-insensitive.
func (r *Repository) SuggestQuestionTitles(ctx context.Context, prefix string, max int) ([]string, error) {
	rows, err := r.gateway.Scan(ctx, store.TABLE_QNA, store.ScanOptions{})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(prefix)
	var titles []string
	for _, row := range rows {
		if max > 0 && len(titles) >= max {
			break
		}
		title := string(row.Cells[store.FAMILY_QUESTION+":title"])
		if title == "" {
			continue
		}
		if strings.Contains(strings.ToLower(title), needle) {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
