package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

type NotificationConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "bus-admin-notification-workers",
		Topics:               []string{"bus-notifications"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    5 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type KafkaNotificationConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	emailService  EmailService
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewKafkaNotificationConsumer(config *ConsumerConfig, emailService EmailService) (NotificationConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaNotificationConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		emailService:  emailService,
	}, nil
}

// StartConsumers runs numWorkers members of the consumer group until ctx
// ends or Stop is called.
func (knc *KafkaNotificationConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	numWorkers = max(numWorkers, 1)
	ctx, knc.cancel = context.WithCancel(ctx)
	logger.GetDefault().Info("Starting notification consumers", "workers", numWorkers, "topics", knc.config.Topics)

	go func() {
		for err := range knc.consumerGroup.Errors() {
			logger.GetDefault().Error("Consumer group error", "error", err)
		}
	}()

	for id := range numWorkers {
		knc.wg.Go(func() { knc.runWorker(ctx, id) })
	}
	return nil
}

// runWorker rejoins the group after every rebalance.
func (knc *KafkaNotificationConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &ConsumerGroupHandler{
		workerID:     workerID,
		emailService: knc.emailService,
		maxRetries:   knc.config.MaxRetries,
		backoff:      knc.config.RetryBackoffDuration,
	}
	for ctx.Err() == nil {
		err := knc.consumerGroup.Consume(ctx, knc.config.Topics, handler)
		if err == nil || ctx.Err() != nil {
			continue
		}
		logger.GetDefault().Error("Notification worker consume failed", "worker", workerID, "error", err)
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
		}
	}
	logger.GetDefault().Info("Notification worker stopped", "worker", workerID)
}

func (knc *KafkaNotificationConsumer) Stop() error {
	if knc.cancel != nil {
		knc.cancel()
	}
	knc.wg.Wait()
	if err := knc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	logger.GetDefault().Info("Notification consumers stopped")
	return nil
}

func (knc *KafkaNotificationConsumer) HealthCheck(ctx context.Context) error {
	if knc.emailService == nil {
		return errors.New("email service not configured")
	}
	return nil
}

// ConsumerGroupHandler turns topic messages into e-mails.
type ConsumerGroupHandler struct {
	workerID     int
	emailService EmailService
	maxRetries   int
	backoff      time.Duration
}

func (h *ConsumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *ConsumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks every message, delivered or not: an e-mail that still
// fails after its retries is logged and dropped so it cannot stall the
// partition behind it.
func (h *ConsumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.processMessage(session.Context(), message); err != nil {
			if session.Context().Err() != nil {
				return nil
			}
			logger.GetDefault().Error("Notification dropped",
				"worker", h.workerID,
				"partition", message.Partition,
				"offset", message.Offset,
				"error", err,
			)
		}
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *ConsumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification EmailNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("undecodable notification: %w", err)
	}

	notification.Status = NotificationStatusSending
	if err := h.send(ctx, &notification); err != nil {
		notification.MarkFailed(err)
		return err
	}
	notification.MarkSent()
	logger.GetDefault().Info("Notification e-mail sent",
		"worker", h.workerID,
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
		"attempts", notification.RetryCount+1,
	)
	return nil
}

// send tries maxRetries+1 times, doubling the pause after each failure.
func (h *ConsumerGroupHandler) send(ctx context.Context, notification *EmailNotification) error {
	delay := h.backoff
	var err error
	for attempt := 0; ; attempt++ {
		if err = h.emailService.SendNotification(ctx, notification); err == nil {
			return nil
		}
		if attempt == h.maxRetries {
			return fmt.Errorf("giving up after %d attempts: %w", attempt+1, err)
		}
		notification.RetryCount = attempt + 1
		select {
		case <-time.After(delay):
			delay *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
