package notifications

import (
	"context"
	"fmt"
	"time"

	"tessera/pkg/logger"

	"github.com/IBM/sarama"
)

// SaleConsumer reads committed sales and sends the purchase
// confirmations
type SaleConsumer interface {
	Start(ctx context.Context) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeout    time.Duration
	HeartbeatInterval time.Duration
	OffsetOldest      bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "tessera-confirmation-workers",
		Topics:            []string{"sale-committed"},
		SessionTimeout:    30 * time.Second,
		HeartbeatInterval: 3 * time.Second,
		OffsetOldest:      false,
	}
}

// KafkaSaleConsumer consumes sale-committed messages from Kafka
type KafkaSaleConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	cancel        context.CancelFunc
}

func NewKafkaSaleConsumer(config *ConsumerConfig) (*KafkaSaleConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.HeartbeatInterval
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaSaleConsumer{
		consumerGroup: consumerGroup,
		config:        config,
	}, nil
}

// Start consumes until the context is cancelled or Stop is called
func (c *KafkaSaleConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.consumerGroup.Errors() {
			logger.GetDefault().Error("sale consumer error", "error", err)
		}
	}()

	handler := &saleHandler{}
	for {
		if err := c.consumerGroup.Consume(ctx, c.config.Topics, handler); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.GetDefault().Error("sale consumer session failed", "error", err)
			time.Sleep(time.Second)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Stop cancels consumption and closes the group
func (c *KafkaSaleConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

// saleHandler delivers purchase confirmations. Delivery here is a log
// line standing in for the mail integration.
type saleHandler struct{}

func (h *saleHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *saleHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *saleHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		sale, err := SaleCommittedFromJSON(message.Value)
		if err != nil {
			logger.GetDefault().Warn("skipping malformed sale message",
				"topic", message.Topic,
				"offset", message.Offset,
				"error", err,
			)
			session.MarkMessage(message, "")
			continue
		}

		logger.GetDefault().Info("purchase confirmation sent",
			"sale_id", sale.SaleID,
			"user_id", sale.UserID,
			"event_id", sale.EventID,
			"seats", len(sale.Seats),
			"total_amount", sale.TotalAmount,
		)
		session.MarkMessage(message, "")
	}
	return nil
}
