package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/mock"

	"remit-transfer/internal/models"
	"remit-transfer/internal/push"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, deviceToken string, n push.Notification) error {
	args := m.Called(ctx, deviceToken, n)
	return args.Error(0)
}

type MockNotificationStorage struct {
	mock.Mock
}

func (m *MockNotificationStorage) SaveNotification(ctx context.Context, notification *models.DeliveredNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationStorage) GetNotificationByEventID(ctx context.Context, eventID string) (*models.DeliveredNotification, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveredNotification), args.Error(1)
}

func (m *MockNotificationStorage) GetDeviceToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockRepublisher struct {
	mock.Mock
}

func (m *MockRepublisher) SendMessage(msg *sarama.ProducerMessage) (int32, int64, error) {
	args := m.Called(msg)
	return int32(args.Int(0)), int64(args.Int(1)), args.Error(2)
}
