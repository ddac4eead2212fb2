package consumers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightstack/stackstream/internal/clients/kafka_client"
	"github.com/sightstack/stackstream/internal/db"
	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/store"
)

func newTestRepo(t *testing.T) *db.Repository {
	t.Helper()
	gateway := store.NewMemoryGateway()
	require.NoError(t, gateway.EnsureTables(context.Background()))
	return db.NewRepository(gateway, rowkey.NewCodec(time.UTC))
}

func TestQuestionConsumer_FlushWritesBatch(t *testing.T) {
	repo := newTestRepo(t)
	c := NewQuestionConsumer(repo, nil)
	ctx := context.Background()

	for id := int64(1); id <= 3; id++ {
		c.buffer.Add(questionItem{
			question: models.Question{
				QuestionID:   id,
				Title:        "title",
				Body:         "body",
				CreationDate: 1000 * id,
				Tags:         []string{"go"},
			},
			rowKey: rowkey.QuestionRowKey(id),
		})
	}

	c.flush(ctx, kafka_client.NewCommitHandler(ctx, nil))

	for id := int64(1); id <= 3; id++ {
		got, err := repo.GetQuestionByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
	}
}

func TestQuestionConsumer_BadRecordDoesNotBlockBatch(t *testing.T) {
	repo := newTestRepo(t)
	c := NewQuestionConsumer(repo, nil)
	ctx := context.Background()

	// Missing title: rejected on assemble, must not stop the second record.
	c.buffer.Add(questionItem{
		question: models.Question{QuestionID: 1, Body: "body"},
		rowKey:   "1",
	})
	c.buffer.Add(questionItem{
		question: models.Question{QuestionID: 2, Title: "ok", Body: "body"},
		rowKey:   "2",
	})

	c.flush(ctx, kafka_client.NewCommitHandler(ctx, nil))

	dropped, err := repo.GetQuestionByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, dropped)

	stored, err := repo.GetQuestionByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "ok", stored.Title)
}

func TestTrendConsumer_FlushWritesBatch(t *testing.T) {
	repo := newTestRepo(t)
	c := NewTrendConsumer(repo)
	ctx := context.Background()

	c.buffer.Add(trendItem{
		event: models.TrendEvent{
			Tag:            "spark",
			PeriodType:     "monthly",
			Timestamp:      1654041600,
			TotalQuestions: 10,
		},
		trackKey: "spark#monthly#1654041600",
	})
	// Invalid period type is a per-record drop, not a batch failure.
	c.buffer.Add(trendItem{
		event:    models.TrendEvent{Tag: "spark", PeriodType: "weekly", Timestamp: 1654041600},
		trackKey: "spark#weekly#1654041600",
	})

	c.flush(ctx, kafka_client.NewCommitHandler(ctx, nil))

	trends, err := repo.GetTagTrends(ctx, "spark", rowkey.PeriodMonthly, "", "")
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, "202206", trends[0].Bucket)
}
