package notifications

import (
	"context"
	"fmt"
	"time"

	"tessera/internal/sales"
	"tessera/pkg/logger"

	"github.com/IBM/sarama"
)

// SaleProducer publishes committed sales
type SaleProducer interface {
	SaleCommitted(ctx context.Context, sale *sales.Sale) error
	Close() error
}

// KafkaProducerConfig contains configuration for the sale producer
type KafkaProducerConfig struct {
	Brokers          []string
	SaleTopic        string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		SaleTopic:        "sale-committed",
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// KafkaSaleProducer publishes sale-committed messages to Kafka
type KafkaSaleProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaSaleProducer creates a new Kafka sale producer
func NewKafkaSaleProducer(config *KafkaProducerConfig) (*KafkaSaleProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaSaleProducer{
		producer: producer,
		config:   config,
	}, nil
}

// SaleCommitted publishes one committed sale keyed by user so a
// user's confirmations stay ordered
func (p *KafkaSaleProducer) SaleCommitted(ctx context.Context, sale *sales.Sale) error {
	message := buildSaleMessage(sale)

	messageBytes, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal sale message: %w", err)
	}

	producerMessage := &sarama.ProducerMessage{
		Topic: p.config.SaleTopic,
		Key:   sarama.StringEncoder(message.GetPartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("sale_id"), Value: []byte(message.SaleID)},
			{Key: []byte("event_id"), Value: []byte(message.EventID)},
			{Key: []byte("payment_intent_id"), Value: []byte(message.PaymentIntentID)},
			{Key: []byte("committed_at"), Value: []byte(message.CommittedAt.Format(time.RFC3339))},
		},
	}

	partition, offset, err := p.producer.SendMessage(producerMessage)
	if err != nil {
		return fmt.Errorf("failed to publish sale to Kafka: %w", err)
	}

	logger.GetDefault().Info("sale published",
		"topic", p.config.SaleTopic,
		"partition", partition,
		"offset", offset,
		"sale_id", message.SaleID,
	)
	return nil
}

// Close closes the Kafka producer
func (p *KafkaSaleProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

func buildSaleMessage(sale *sales.Sale) *SaleCommittedMessage {
	message := &SaleCommittedMessage{
		SaleID:          sale.ID.String(),
		PaymentIntentID: sale.PaymentIntentID,
		EventID:         sale.EventID.String(),
		UserID:          sale.UserID.String(),
		TotalAmount:     sale.TotalAmount,
		Currency:        sale.Currency,
		CommittedAt:     sale.CreatedAt,
	}
	for _, seat := range sale.Seats {
		message.Seats = append(message.Seats, CommittedSeat{
			Row:    seat.RowName,
			Number: seat.SeatNumber,
			Price:  seat.Price.StringFixed(2),
		})
	}
	return message
}
