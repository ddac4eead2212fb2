package kafka_client

import "time"

const (
	KAFKA_TOPIC_QUESTIONS = "stackoverflow-questions" // question events with embedded answers
	KAFKA_TOPIC_TRENDS    = "stackoverflow-trends"    // per-tag rollup events
)

const (
	MAX_RETRIES = 5
	RETRY_DELAY = 2 * time.Second
)
