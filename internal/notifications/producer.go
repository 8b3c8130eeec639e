package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

// NotificationProducer publishes notifications for the e-mail workers.
type NotificationProducer interface {
	PublishNotification(ctx context.Context, notification *EmailNotification) error
	Close() error
	HealthCheck(ctx context.Context) error
}

type KafkaProducerConfig struct {
	Brokers           []string
	NotificationTopic string
	RetryMax          int
	TimeoutMs         int
	RequiredAcks      sarama.RequiredAcks
	CompressionType   sarama.CompressionCodec
	IdempotentWrites  bool
	MaxMessageBytes   int
}

func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:           []string{"localhost:9092"},
		NotificationTopic: "bus-notifications",
		RetryMax:          3,
		TimeoutMs:         10000,
		RequiredAcks:      sarama.WaitForAll,
		CompressionType:   sarama.CompressionSnappy,
		IdempotentWrites:  true,
		MaxMessageBytes:   1000000,
	}
}

// newSaramaProducerConfig builds an idempotent, hash-partitioned sync
// producer configuration.
func newSaramaProducerConfig(config *KafkaProducerConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

type KafkaNotificationProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaNotificationProducer(config *KafkaProducerConfig) (NotificationProducer, error) {
	producer, err := sarama.NewSyncProducer(config.Brokers, newSaramaProducerConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.GetDefault().Info("Kafka notification producer created", "brokers", config.Brokers, "topic", config.NotificationTopic)
	return NewProducerWithClient(producer, config.NotificationTopic), nil
}

// NewProducerWithClient wraps an existing sarama producer.
func NewProducerWithClient(producer sarama.SyncProducer, topic string) NotificationProducer {
	return &KafkaNotificationProducer{producer: producer, topic: topic}
}

func (knp *KafkaNotificationProducer) PublishNotification(ctx context.Context, notification *EmailNotification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     knp.topic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   createHeaders(notification),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := knp.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}

	logger.GetDefault().Debug("Notification published",
		"topic", knp.topic,
		"partition", partition,
		"offset", offset,
		"type", notification.Type,
		"key", notification.GetPartitionKey(),
	)
	return nil
}

func createHeaders(notification *EmailNotification) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
		{Key: []byte("notification_type"), Value: []byte(notification.Type)},
		{Key: []byte("priority"), Value: []byte(notification.Priority)},
		{Key: []byte("producer"), Value: []byte("bus-admin")},
		{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
	}
}

func (knp *KafkaNotificationProducer) Close() error {
	if knp.producer == nil {
		return nil
	}
	if err := knp.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	logger.GetDefault().Info("Kafka notification producer closed")
	return nil
}

func (knp *KafkaNotificationProducer) HealthCheck(ctx context.Context) error {
	if knp.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if knp.topic == "" {
		return fmt.Errorf("health check failed - notification topic not configured")
	}
	return nil
}

// LogProducer stands in for Kafka when the bus is disabled. Notifications
// are logged and dropped.
type LogProducer struct{}

func NewLogProducer() NotificationProducer {
	return LogProducer{}
}

func (LogProducer) PublishNotification(ctx context.Context, notification *EmailNotification) error {
	logger.GetDefault().InfoWithContext(ctx, "Notification not sent, Kafka disabled", map[string]interface{}{
		"type":      notification.Type,
		"recipient": notification.RecipientEmail,
		"key":       notification.GetPartitionKey(),
	})
	return nil
}

func (LogProducer) Close() error { return nil }

func (LogProducer) HealthCheck(ctx context.Context) error { return nil }
