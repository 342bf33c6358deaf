package storage

import (
	"context"

	"remit-transfer/internal/models"
)

// NotificationStorage хранилище consumer-сервиса: архив доставленных
// уведомлений и токены устройств для push-доставки
type NotificationStorage interface {
	SaveNotification(ctx context.Context, notification *models.DeliveredNotification) error
	GetNotificationByEventID(ctx context.Context, eventID string) (*models.DeliveredNotification, error)
	GetDeviceToken(ctx context.Context, userID string) (string, error)
	Close() error
}
