package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var messageMap sync.Map

// TrackMessage remembers the Kafka message that carried a record so its
// offset can be committed once the store put succeeds.
func TrackMessage(rowKey string, msg *kafka.Message) {
	messageMap.Store(rowKey, msg)
}

func GetMessageForKey(rowKey string) (*kafka.Message, bool) {
	msg, ok := messageMap.Load(rowKey)
	if !ok {
		return nil, false
	}
	messageMap.Delete(rowKey)
	return msg.(*kafka.Message), true
}
