package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	DealEventsTopic     = "otc-deal-events"
	StakeEventsTopic    = "otc-stake-events"
	MerchantEventsTopic = "otc-merchant-events"
)

// KafkaPublisher implements domain.EventPublisher over three topics. Events
// are keyed by the affected account so per-account ordering survives
// partitioning.
type KafkaPublisher struct {
	dealWriter     *kafka.Writer
	stakeWriter    *kafka.Writer
	merchantWriter *kafka.Writer
	log            *slog.Logger
}

func NewKafkaPublisher(brokers []string, logger *slog.Logger) *KafkaPublisher {
	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	return &KafkaPublisher{
		dealWriter:     newWriter(DealEventsTopic),
		stakeWriter:    newWriter(StakeEventsTopic),
		merchantWriter: newWriter(MerchantEventsTopic),
		log:            logger,
	}
}

func (k *KafkaPublisher) publish(writer *kafka.Writer, key string, payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	err = writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(key),
		Value: msg,
		Time:  time.Now(),
	})
	if err != nil {
		k.log.Error("failed to publish event", "topic", writer.Topic, "key", key, "error", err)
	}
	return err
}

func (k *KafkaPublisher) PublishDeal(recipient string, event domain.DealEvent) error {
	return k.publish(k.dealWriter, recipient, DealChangedEvent{
		EventID:     uuid.New().String(),
		Recipient:   recipient,
		DealID:      event.DealID,
		OrderID:     event.OrderID,
		Side:        string(event.Side),
		Maker:       event.Maker,
		Taker:       event.Taker,
		Status:      string(event.Status),
		ArbitStatus: string(event.ArbitStatus),
		Quantity:    event.Quantity,
		Symbol:      event.Symbol,
		Action:      string(event.Action),
		SentAt:      time.Now(),
	})
}

func (k *KafkaPublisher) PublishStake(event domain.StakeEvent) error {
	return k.publish(k.stakeWriter, event.Account, StakeChangedEvent{
		EventID: uuid.New().String(),
		Account: event.Account,
		Amount:  event.Amount,
		Symbol:  event.Symbol,
		Memo:    event.Memo,
		SentAt:  time.Now(),
	})
}

func (k *KafkaPublisher) PublishMerchant(event domain.MerchantEvent) error {
	return k.publish(k.merchantWriter, event.Account, MerchantChangedEvent{
		EventID: uuid.New().String(),
		Account: event.Account,
		Status:  string(event.Status),
		Reason:  event.Reason,
		SentAt:  time.Now(),
	})
}

func (k *KafkaPublisher) Close() error {
	for _, w := range []*kafka.Writer{k.dealWriter, k.stakeWriter, k.merchantWriter} {
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}
