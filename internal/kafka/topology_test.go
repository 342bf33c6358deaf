package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testTopology() Topology {
	return Topology{
		MainTopic:    "notification",
		MaxRetries:   3,
		RetryBackoff: 30 * time.Second,
	}
}

func TestTopology_TopicNames(t *testing.T) {
	topo := testTopology()

	assert.Equal(t, "notification-retry-1", topo.RetryTopic(1))
	assert.Equal(t, "notification-retry-3", topo.RetryTopic(3))
	assert.Equal(t, "notification-dlt", topo.DeadLetterTopic())
	assert.Equal(t, "notification-recovery", topo.RecoveryTopic())
}

func TestTopology_ConsumeTopics(t *testing.T) {
	topo := testTopology()

	assert.Equal(t, []string{
		"notification",
		"notification-retry-1",
		"notification-retry-2",
		"notification-retry-3",
	}, topo.ConsumeTopics())
}

func TestTopology_AttemptOf(t *testing.T) {
	topo := testTopology()

	tests := []struct {
		topic    string
		expected int
	}{
		{"notification", 0},
		{"notification-retry-1", 1},
		{"notification-retry-2", 2},
		{"notification-retry-3", 3},
		{"notification-dlt", 0},
		{"notification-recovery", 0},
		{"notification-retry-x", 0},
		{"unrelated-topic", 0},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.expected, topo.AttemptOf(tt.topic))
		})
	}
}

func TestTopology_NextTopic(t *testing.T) {
	topo := testTopology()

	assert.Equal(t, "notification-retry-1", topo.NextTopic("notification"))
	assert.Equal(t, "notification-retry-2", topo.NextTopic("notification-retry-1"))
	assert.Equal(t, "notification-retry-3", topo.NextTopic("notification-retry-2"))
	assert.Equal(t, "notification-dlt", topo.NextTopic("notification-retry-3"))
}
