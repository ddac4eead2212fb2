package consumers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/sightstack/stackstream/internal/clients"
	"github.com/sightstack/stackstream/internal/clients/kafka_client"
	"github.com/sightstack/stackstream/internal/db"
	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/records"
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/utils"
)

type questionItem struct {
	question models.Question
	rowKey   string
	digest   string
}

// QuestionConsumer buffers question events into micro-batches and writes
// each record individually: one bad record is logged and skipped, the rest
// of the batch proceeds.
type QuestionConsumer struct {
	repo   *db.Repository
	dedupe *clients.ValkeyClient
	buffer *utils.BatchBuffer[questionItem]
}

// NewQuestionConsumer wires a consumer loop. dedupe may be nil; then every
// record is written unconditionally.
func NewQuestionConsumer(repo *db.Repository, dedupe *clients.ValkeyClient) *QuestionConsumer {
	return &QuestionConsumer{
		repo:   repo,
		dedupe: dedupe,
		buffer: utils.NewBatchBuffer[questionItem](),
	}
}

func (c *QuestionConsumer) Start(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[QuestionConsumer] Listening for messages...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[QuestionConsumer] Stopping consumer...")
			c.flush(context.Background(), committer)
			return
		case <-ticker.C:
			c.flush(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var q models.Question
			if err := utils.DeserializeFromJSON(msg.Value, &q); err != nil {
				continue
			}

			key := rowkey.QuestionRowKey(q.QuestionID)
			utils.TrackMessage(key, msg)
			c.buffer.Add(questionItem{
				question: q,
				rowKey:   key,
				digest:   clients.PayloadDigest(msg.Value),
			})

			if c.buffer.Size() >= utils.BATCH_SIZE {
				c.flush(ctx, committer)
			}
		}
	}
}

func (c *QuestionConsumer) flush(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := c.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	slog.Info("[QuestionConsumer] Processing batch", slog.Int("batch_size", len(batch)))

	for _, item := range batch {
		c.processRecord(ctx, item)

		if msg, found := utils.GetMessageForKey(item.rowKey); found {
			if err := committer.Commit(msg); err != nil {
				slog.Warn("[QuestionConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}

func (c *QuestionConsumer) processRecord(ctx context.Context, item questionItem) {
	if c.dedupe != nil && c.dedupe.IsAlreadyIngested(ctx, item.rowKey, item.digest) {
		slog.Info("[QuestionConsumer] Skipping unchanged question",
			slog.String("question_id", item.rowKey))
		return
	}

	var insertErr error
	for i := 0; i < 3; i++ {
		insertErr = c.repo.InsertQuestion(ctx, item.question)
		if insertErr == nil {
			break
		}
		if errors.Is(insertErr, records.ErrMissingRequiredField) {
			// A retry cannot fix bad input.
			break
		}
		slog.Warn("[QuestionConsumer] Failed to store question, retrying...",
			slog.String("question_id", item.rowKey),
			slog.Int("attempt", i+1),
			slog.String("error", insertErr.Error()))
		time.Sleep(time.Second)
	}
	if insertErr != nil {
		slog.Error("[QuestionConsumer] Dropping question after retries",
			slog.String("question_id", item.rowKey),
			slog.String("error", insertErr.Error()))
		return
	}

	if c.dedupe != nil {
		if err := c.dedupe.MarkIngested(ctx, item.rowKey, item.digest); err != nil {
			slog.Warn("[QuestionConsumer] Failed to record ingest digest",
				slog.String("question_id", item.rowKey),
				slog.String("error", err.Error()))
		}
	}
}
