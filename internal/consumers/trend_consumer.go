package consumers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/sightstack/stackstream/internal/clients/kafka_client"
	"github.com/sightstack/stackstream/internal/db"
	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/records"
	"github.com/sightstack/stackstream/internal/rowkey"
	"github.com/sightstack/stackstream/internal/utils"
)

type trendItem struct {
	event    models.TrendEvent
	trackKey string
}

// TrendConsumer writes per-tag rollup events. Same-bucket events legally
// overwrite each other, so no dedupe is needed here.
type TrendConsumer struct {
	repo   *db.Repository
	buffer *utils.BatchBuffer[trendItem]
}

func NewTrendConsumer(repo *db.Repository) *TrendConsumer {
	return &TrendConsumer{
		repo:   repo,
		buffer: utils.NewBatchBuffer[trendItem](),
	}
}

func (c *TrendConsumer) Start(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[TrendConsumer] Listening for messages...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[TrendConsumer] Stopping consumer...")
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

			var ev models.TrendEvent
			if err := utils.DeserializeFromJSON(msg.Value, &ev); err != nil {
				continue
			}

			trackKey := fmt.Sprintf("%s#%s#%d", ev.Tag, ev.PeriodType, ev.Timestamp)
			utils.TrackMessage(trackKey, msg)
			c.buffer.Add(trendItem{event: ev, trackKey: trackKey})

			if c.buffer.Size() >= utils.BATCH_SIZE {
				c.flush(ctx, committer)
			}
		}
	}
}

func (c *TrendConsumer) flush(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := c.buffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	slog.Info("[TrendConsumer] Processing batch", slog.Int("batch_size", len(batch)))

	for _, item := range batch {
		c.processRecord(ctx, item)

		if msg, found := utils.GetMessageForKey(item.trackKey); found {
			if err := committer.Commit(msg); err != nil {
				slog.Warn("[TrendConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}

func (c *TrendConsumer) processRecord(ctx context.Context, item trendItem) {
	var insertErr error
	for i := 0; i < 3; i++ {
		insertErr = c.repo.InsertTrend(ctx, item.event)
		if insertErr == nil {
			return
		}
		if errors.Is(insertErr, rowkey.ErrInvalidPeriodType) ||
			errors.Is(insertErr, records.ErrMissingRequiredField) {
			break
		}
		slog.Warn("[TrendConsumer] Failed to store trend, retrying...",
			slog.String("key", item.trackKey),
			slog.Int("attempt", i+1),
			slog.String("error", insertErr.Error()))
		time.Sleep(time.Second)
	}

	slog.Error("[TrendConsumer] Dropping trend event",
		slog.String("key", item.trackKey),
		slog.String("error", insertErr.Error()))
}
