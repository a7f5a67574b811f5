package mq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"theracare_server/internal/config"
	"theracare_server/pkg/constants"
)

// KafkaBroker routes events through a Kafka topic so that multiple server
// instances see every event regardless of which one produced it. Events are
// keyed by user id to keep one user's pushes in order.
type KafkaBroker struct {
	writer *kafka.Writer
	reader *kafka.Reader

	events chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewKafkaBroker connects the writer and reader and starts the consume loop.
func NewKafkaBroker(cfg *config.KafkaConfig) *KafkaBroker {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.HostPort),
		Topic:        cfg.EventTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: timeout,
		// async with a completion callback keeps Publish off the request
		// path, matching the channel broker's best effort contract
		Async: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				zap.L().Error("kafka event write failed", zap.Error(err))
			}
		},
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{cfg.HostPort},
		Topic:     cfg.EventTopic,
		Partition: cfg.Partition,
		MinBytes:  1,
		MaxBytes:  10e6,
		MaxWait:   time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	b := &KafkaBroker{
		writer: writer,
		reader: reader,
		events: make(chan Event, constants.CHANNEL_SIZE),
		cancel: cancel,
	}

	b.wg.Add(1)
	go b.consumeLoop(ctx)
	return b
}

func (b *KafkaBroker) Publish(event Event) {
	value, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to marshal push event", zap.Error(err))
		return
	}
	err = b.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.UserId),
		Value: value,
	})
	if err != nil {
		zap.L().Error("kafka event publish failed",
			zap.String("kind", event.Kind), zap.Error(err))
	}
}

func (b *KafkaBroker) Subscribe() <-chan Event {
	return b.events
}

// consumeLoop reads the topic and feeds the gateway channel until Close.
func (b *KafkaBroker) consumeLoop(ctx context.Context) {
	defer b.wg.Done()
	for {
		msg, err := b.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.L().Error("kafka event read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			zap.L().Warn("dropping malformed push event", zap.Error(err))
			continue
		}

		select {
		case b.events <- event:
		case <-ctx.Done():
			return
		}
	}
}

func (b *KafkaBroker) Close() error {
	b.cancel()
	b.wg.Wait()
	close(b.events)
	if err := b.reader.Close(); err != nil {
		zap.L().Warn("kafka reader close failed", zap.Error(err))
	}
	return b.writer.Close()
}

// NewBroker selects the broker implementation from messageMode.
func NewBroker(cfg *config.KafkaConfig) Broker {
	if cfg.MessageMode == "kafka" {
		zap.L().Info("event broker: kafka", zap.String("topic", cfg.EventTopic))
		return NewKafkaBroker(cfg)
	}
	zap.L().Info("event broker: in-process channel")
	return NewChannelBroker()
}
