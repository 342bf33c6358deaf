package kafka

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Topology описывает топологию повторов для уведомлений:
// основной топик -> индексированные retry-топики -> dead-letter топик
// и отдельный recovery-топик. Номер попытки выводится из имени топика,
// а не из тела сообщения: это контракт, на него опираются и consumer,
// и дашборды брокера.
type Topology struct {
	MainTopic    string
	MaxRetries   int
	RetryBackoff time.Duration
}

const (
	retrySuffix      = "-retry-"
	deadLetterSuffix = "-dlt"
	recoverySuffix   = "-recovery"
)

// RetryTopic имя retry-топика для попытки attempt (1..MaxRetries)
func (t Topology) RetryTopic(attempt int) string {
	return fmt.Sprintf("%s%s%d", t.MainTopic, retrySuffix, attempt)
}

func (t Topology) DeadLetterTopic() string {
	return t.MainTopic + deadLetterSuffix
}

func (t Topology) RecoveryTopic() string {
	return t.MainTopic + recoverySuffix
}

// ConsumeTopics топики основного consumer-group: основной плюс все retry
func (t Topology) ConsumeTopics() []string {
	topics := make([]string, 0, t.MaxRetries+1)
	topics = append(topics, t.MainTopic)
	for i := 1; i <= t.MaxRetries; i++ {
		topics = append(topics, t.RetryTopic(i))
	}
	return topics
}

// AttemptOf номер попытки, выведенный из имени топика:
// для основного топика 0, для retry-топика с индексом i равен i.
func (t Topology) AttemptOf(topic string) int {
	if topic == t.MainTopic {
		return 0
	}
	idx := strings.TrimPrefix(topic, t.MainTopic+retrySuffix)
	if idx == topic {
		return 0
	}
	attempt, err := strconv.Atoi(idx)
	if err != nil || attempt < 1 {
		return 0
	}
	return attempt
}

// NextTopic топик следующей попытки после отказа в topic.
// Когда retry-слоты исчерпаны, возвращает dead-letter топик.
func (t Topology) NextTopic(topic string) string {
	attempt := t.AttemptOf(topic)
	if attempt >= t.MaxRetries {
		return t.DeadLetterTopic()
	}
	return t.RetryTopic(attempt + 1)
}
