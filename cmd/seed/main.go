package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/sightstack/stackstream/config"
	"github.com/sightstack/stackstream/internal/clients/kafka_client"
	"github.com/sightstack/stackstream/internal/logging"
	"github.com/sightstack/stackstream/internal/models"
)

// Seeds both topics with a small, known dataset so a fresh local stack has
// something to ingest and query.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx := context.Background()

	if err := kafka_client.InitProducer(kafka_client.GetKafkaConfig()); err != nil {
		slog.Error("[Seed] Failed to initialize producer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer kafka_client.CloseProducer()

	questions := seedQuestions()
	for _, q := range questions {
		key := strconv.FormatInt(q.QuestionID, 10)
		if err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_QUESTIONS, key, q); err != nil {
			slog.Error("[Seed] Failed to publish question",
				slog.String("key", key),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	trends := seedTrends()
	for _, ev := range trends {
		key := ev.Tag + "#" + ev.PeriodType
		if err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_TRENDS, key, ev); err != nil {
			slog.Error("[Seed] Failed to publish trend event",
				slog.String("key", key),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	slog.Info("[Seed] Seed data published",
		slog.Int("questions", len(questions)),
		slog.Int("trend_events", len(trends)))
}

func seedQuestions() []models.Question {
	return []models.Question{
		{
			QuestionID:      12345,
			Title:           "How to connect Spark to HBase?",
			Body:            "I am trying to read an HBase table from a Spark job and keep getting connection refused. What client configuration am I missing?",
			CreationDate:    1654041600,
			Score:           42,
			OwnerReputation: 850,
			Tags:            []string{"spark", "hbase", "java"},
			Answers: []models.Answer{
				{
					AnswerID:        98765,
					Body:            "Use the hbase-spark connector and point hbase.zookeeper.quorum at your cluster.",
					Score:           30,
					IsAccepted:      true,
					OwnerReputation: 5400,
				},
				{
					AnswerID:        98766,
					Body:            "Check that the HBase client jars on the Spark classpath match the server version.",
					Score:           12,
					IsAccepted:      false,
					OwnerReputation: 900,
				},
			},
		},
		{
			QuestionID:      12400,
			Title:           "Spark DataFrame groupBy is slow on skewed keys",
			Body:            "Aggregating a 2TB dataset where one key holds 40% of rows takes hours. How do I handle the skew?",
			CreationDate:    1654128000,
			Score:           17,
			OwnerReputation: 2100,
			Tags:            []string{"spark", "performance"},
			Answers: []models.Answer{
				{
					AnswerID:        99001,
					Body:            "Salt the hot key into N sub-keys, aggregate, then merge the partial results.",
					Score:           21,
					IsAccepted:      false,
					OwnerReputation: 13200,
				},
			},
		},
		{
			QuestionID:      12500,
			Title:           "HBase row key design for time series data",
			Body:            "Writes hotspot on a single region when I prefix row keys with a timestamp. What layout avoids this?",
			CreationDate:    1654214400,
			Score:           8,
			OwnerReputation: 430,
			Tags:            []string{"hbase"},
		},
	}
}

func seedTrends() []models.TrendEvent {
	count := 1500
	return []models.TrendEvent{
		{
			Tag:               "spark",
			PeriodType:        "monthly",
			Timestamp:         1654041600,
			TotalQuestions:    1500,
			UnansweredPercent: 34.5,
			AcceptedPercent:   41.2,
			AvgQuestionScore:  2.8,
			AvgAnswerScore:    3.4,
			RawCount:          &count,
		},
		{
			Tag:               "hbase",
			PeriodType:        "monthly",
			Timestamp:         1654041600,
			TotalQuestions:    240,
			UnansweredPercent: 48.1,
			AcceptedPercent:   29.6,
			AvgQuestionScore:  1.4,
			AvgAnswerScore:    2.1,
		},
		{
			Tag:               "spark",
			PeriodType:        "daily",
			Timestamp:         1654128000,
			TotalQuestions:    52,
			UnansweredPercent: 30.8,
			AcceptedPercent:   44.2,
			AvgQuestionScore:  3.1,
			AvgAnswerScore:    3.9,
		},
	}
}
