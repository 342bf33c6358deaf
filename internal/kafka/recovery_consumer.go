package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"remit-transfer/internal/models"
	"remit-transfer/internal/push"
	"remit-transfer/internal/storage"

	"github.com/IBM/sarama"
)

// RecoveryConsumer отдельный consumer-group recovery-топика: каждому
// dead-lettered сообщению дается ровно одна повторная попытка. Повторный
// отказ проглатывается: логируется в выделенный канал и учитывается в
// счетчике потерь, но в очередь не возвращается. Это сознательная потеря
// данных ради гарантии завершения.
type RecoveryConsumer struct {
	consumerGroup sarama.ConsumerGroup
	handler       *recoveryHandler
	topology      Topology
	log           *slog.Logger
	wg            sync.WaitGroup
}

func NewRecoveryConsumer(
	brokers []string,
	groupID string,
	topology Topology,
	sender push.Sender,
	store storage.NotificationStorage,
	log *slog.Logger,
) (*RecoveryConsumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V3_0_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true

	consumerGroup, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create recovery consumer group: %w", err)
	}

	log.Info("kafka recovery consumer создан",
		slog.String("group_id", groupID),
		slog.String("topic", topology.RecoveryTopic()))

	handler := &recoveryHandler{
		deliverer: deliverer{
			sender:  sender,
			storage: store,
			log:     log,
		},
		// выделенный канал, чтобы операторы видели потери recovery-пути
		lossLog: log.With(slog.String("channel", "recovery-loss")),
	}

	return &RecoveryConsumer{
		consumerGroup: consumerGroup,
		handler:       handler,
		topology:      topology,
		log:           log,
	}, nil
}

func (c *RecoveryConsumer) Start(ctx context.Context) error {
	c.log.Info("запуск recovery consumer")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		for {
			if err := c.consumerGroup.Consume(ctx, []string{c.topology.RecoveryTopic()}, c.handler); err != nil {
				c.log.Error("ошибка recovery consume", slog.String("error", err.Error()))
				return
			}

			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for err := range c.consumerGroup.Errors() {
			c.log.Error("ошибка recovery consumer group", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Lost число сообщений, потерянных на recovery-пути с момента старта
func (c *RecoveryConsumer) Lost() int64 {
	return c.handler.lost.Load()
}

func (c *RecoveryConsumer) Close(ctx context.Context) error {
	c.log.Info("закрытие recovery consumer")

	done := make(chan struct{})
	go func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.log.Error("failed to close recovery consumer group", slog.String("error", err.Error()))
		}
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.log.Info("recovery consumer закрыт")
		return nil
	case <-ctx.Done():
		c.log.Warn("recovery consumer close timeout")
		return ctx.Err()
	}
}

type recoveryHandler struct {
	deliverer
	lossLog *slog.Logger
	lost    atomic.Int64
}

func (h *recoveryHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *recoveryHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *recoveryHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.processMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *recoveryHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	var event models.NotificationEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.lost.Add(1)
		h.lossLog.Error("нечитаемое сообщение потеряно на recovery-пути",
			slog.String("topic", message.Topic),
			slog.Int64("offset", message.Offset),
			slog.String("raw_message", string(message.Value)))
		return
	}

	if err := h.deliver(ctx, event); err != nil {
		h.lost.Add(1)
		h.lossLog.Error("сообщение потеряно после recovery-попытки",
			slog.String("event_id", event.EventID.String()),
			slog.String("user_id", event.UserID.String()),
			slog.String("error", err.Error()))
		return
	}

	h.log.Info("уведомление доставлено с recovery-пути",
		slog.String("event_id", event.EventID.String()),
		slog.String("user_id", event.UserID.String()))
}
