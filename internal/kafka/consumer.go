package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"remit-transfer/internal/custom_err"
	"remit-transfer/internal/models"
	"remit-transfer/internal/push"
	"remit-transfer/internal/storage"

	"github.com/IBM/sarama"
)

// republisher покрывает sarama.SyncProducer при маршрутизации повторов
type republisher interface {
	SendMessage(msg *sarama.ProducerMessage) (partition int32, offset int64, err error)
}

// Consumer основной consumer-group: читает основной топик и все
// retry-топики, доставляет push-уведомления и ведет машину состояний
// RECEIVED -> PROCESSING -> {DELIVERED, RETRY_SCHEDULED, DEAD_LETTERED}
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	producer      sarama.SyncProducer
	handler       *consumerGroupHandler
	topology      Topology
	workers       int
	log           *slog.Logger
	wg            sync.WaitGroup
}

func NewConsumer(
	brokers []string,
	groupID string,
	topology Topology,
	workers int,
	sender push.Sender,
	store storage.NotificationStorage,
	log *slog.Logger,
) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V3_0_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	consumerGroup, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry producer: %w", err)
	}

	log.Info("kafka consumer создан",
		slog.String("group_id", groupID),
		slog.Any("topics", topology.ConsumeTopics()),
		slog.Int("workers", workers))

	handler := &consumerGroupHandler{
		deliverer: deliverer{
			sender:  sender,
			storage: store,
			log:     log,
		},
		topology: topology,
		producer: producer,
		log:      log,
	}

	return &Consumer{
		consumerGroup: consumerGroup,
		producer:      producer,
		handler:       handler,
		topology:      topology,
		workers:       workers,
		log:           log,
	}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("запуск kafka consumer")

	topics := c.topology.ConsumeTopics()

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.log.Info("воркер запущен", slog.Int("worker_id", workerID))

			for {
				if err := c.consumerGroup.Consume(ctx, topics, c.handler); err != nil {
					c.log.Error("ошибка consume",
						slog.Int("worker_id", workerID),
						slog.String("error", err.Error()))
					return
				}

				if ctx.Err() != nil {
					return
				}
			}
		}(i)
	}

	go func() {
		for err := range c.consumerGroup.Errors() {
			c.log.Error("ошибка consumer group", slog.String("error", err.Error()))
		}
	}()

	return nil
}

func (c *Consumer) Close(ctx context.Context) error {
	c.log.Info("закрытие kafka consumer")

	done := make(chan struct{})
	go func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.log.Error("failed to close consumer group", slog.String("error", err.Error()))
		}
		c.wg.Wait()
		if err := c.producer.Close(); err != nil {
			c.log.Error("failed to close retry producer", slog.String("error", err.Error()))
		}
		close(done)
	}()

	select {
	case <-done:
		c.log.Info("kafka consumer закрыт")
		return nil
	case <-ctx.Done():
		c.log.Warn("kafka consumer close timeout")
		return ctx.Err()
	}
}

// deliverer общая логика доставки для основного и recovery-путей
type deliverer struct {
	sender  push.Sender
	storage storage.NotificationStorage
	log     *slog.Logger
}

// deliver выполняет push-доставку и архивирует уведомление.
// Отсутствие токена устройства и отказ push-шлюза по невалидному токену
// считаются постоянными ошибками (ErrPermanentDelivery).
func (d *deliverer) deliver(ctx context.Context, event models.NotificationEvent) error {
	token, err := d.storage.GetDeviceToken(ctx, event.UserID.String())
	if err != nil {
		if errors.Is(err, custom_err.ErrTokenNotFound) {
			return fmt.Errorf("no device token for user %s: %w", event.UserID, custom_err.ErrPermanentDelivery)
		}
		return err
	}

	n := push.Notification{
		Title: "Money received",
		Body:  fmt.Sprintf("%s sent you %d", event.SenderName, event.Amount),
		Data: map[string]string{
			"event_id":      event.EventID.String(),
			"account_id":    event.AccountID.String(),
			"bank_code":     event.BankCode,
			"transfer_type": string(event.TransferType),
		},
	}

	if err := d.sender.Send(ctx, token, n); err != nil {
		return err
	}

	archived := &models.DeliveredNotification{
		EventID:      event.EventID.String(),
		UserID:       event.UserID.String(),
		AccountID:    event.AccountID.String(),
		SenderName:   event.SenderName,
		BankCode:     event.BankCode,
		Amount:       event.Amount,
		TransferType: string(event.TransferType),
	}

	// Архив best-effort: push уже доставлен, ошибку не возвращаем
	if err := d.storage.SaveNotification(ctx, archived); err != nil {
		d.log.Error("ошибка архивирования уведомления",
			slog.String("event_id", event.EventID.String()),
			slog.String("error", err.Error()))
	}

	return nil
}

type consumerGroupHandler struct {
	deliverer
	topology Topology
	producer republisher
	log      *slog.Logger
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.waitBackoff(session.Context(), message); err != nil {
			// shutdown во время ожидания, сообщение не помечаем
			return nil
		}
		h.processMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// waitBackoff выдерживает фиксированную задержку retry-топика:
// сообщение обрабатывается не раньше, чем timestamp записи + backoff
func (h *consumerGroupHandler) waitBackoff(ctx context.Context, message *sarama.ConsumerMessage) error {
	if h.topology.AttemptOf(message.Topic) == 0 {
		return nil
	}

	due := message.Timestamp.Add(h.topology.RetryBackoff)
	wait := time.Until(due)
	if wait <= 0 {
		return nil
	}

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	attempt := h.topology.AttemptOf(message.Topic)

	h.log.Debug("получено сообщение из kafka",
		slog.String("topic", message.Topic),
		slog.Int("partition", int(message.Partition)),
		slog.Int64("offset", message.Offset),
		slog.Int("attempt", attempt))

	var event models.NotificationEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		// Кривой payload не станет валидным: сразу в DLT, без retry-слота
		h.log.Error("ошибка десериализации сообщения",
			slog.String("topic", message.Topic),
			slog.String("error", err.Error()),
			slog.String("raw_message", string(message.Value)))
		h.deadLetter(message)
		return
	}

	err := h.deliver(ctx, event)
	if err == nil {
		h.log.Info("уведомление доставлено",
			slog.String("event_id", event.EventID.String()),
			slog.String("user_id", event.UserID.String()),
			slog.Int("attempt", attempt))
		return
	}

	if errors.Is(err, custom_err.ErrPermanentDelivery) {
		h.log.Error("постоянная ошибка доставки, сообщение в DLT",
			slog.String("event_id", event.EventID.String()),
			slog.String("error", err.Error()))
		h.deadLetter(message)
		return
	}

	next := h.topology.NextTopic(message.Topic)
	if next == h.topology.DeadLetterTopic() {
		h.log.Error("retry-слоты исчерпаны, сообщение в DLT",
			slog.String("event_id", event.EventID.String()),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		h.deadLetter(message)
		return
	}

	h.log.Warn("временная ошибка доставки, повтор запланирован",
		slog.String("event_id", event.EventID.String()),
		slog.String("retry_topic", next),
		slog.String("error", err.Error()))
	h.republish(next, message)
}

// deadLetter сохраняет сообщение в dead-letter топике и ровно один раз
// подает его в recovery-топик
func (h *consumerGroupHandler) deadLetter(message *sarama.ConsumerMessage) {
	h.republish(h.topology.DeadLetterTopic(), message)
	h.republish(h.topology.RecoveryTopic(), message)
}

func (h *consumerGroupHandler) republish(topic string, message *sarama.ConsumerMessage) {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(message.Key),
		Value: sarama.ByteEncoder(message.Value),
	}

	if _, _, err := h.producer.SendMessage(msg); err != nil {
		h.log.Error("ошибка публикации в топик",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
	}
}
