package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// topicSpecs 는 기본 토픽과 DLQ 토픽의 생성 사양을 만듭니다.
func topicSpecs(topic Topic, basePartitions int) []kafka.TopicSpecification {
	if basePartitions <= 0 {
		basePartitions = 1
	}
	return []kafka.TopicSpecification{
		{
			Topic:             topic.Base(),
			NumPartitions:     basePartitions,
			ReplicationFactor: 1,
		},
		// DLQ 토픽 (1 파티션 권장)
		{
			Topic:             topic.DLQ(),
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}
}

// EnsureTopics는 기본 토픽과 DLQ 토픽을 생성합니다.
// 이미 존재하는 토픽에 대해서는 성공으로 간주합니다.
func EnsureTopics(brokers string, topic Topic, basePartitions int) error {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return fmt.Errorf("AdminClient 생성 실패: %w", err)
	}
	defer admin.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results, err := admin.CreateTopics(ctx, topicSpecs(topic, basePartitions))
	if err != nil {
		return fmt.Errorf("토픽 생성 요청 실패: %w", err)
	}

	for _, r := range results {
		code := r.Error.Code()
		if code != kafka.ErrNoError && code != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("토픽 %s 생성 실패: %v", r.Topic, r.Error)
		}
	}

	return nil
}
