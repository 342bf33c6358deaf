package models

import (
	"github.com/google/uuid"
)

// NotificationEvent событие push-уведомления о зачислении средств.
// Самодостаточно: после публикации не зависит от строк истории переводов.
type NotificationEvent struct {
	EventID      uuid.UUID      `json:"eventId"`      // Уникальный ID события
	UserID       uuid.UUID      `json:"userId"`       // ID пользователя-получателя
	AccountID    uuid.UUID      `json:"accountId"`    // ID счета получателя
	SenderName   string         `json:"senderName"`   // Имя отправителя
	BankCode     string         `json:"bankCode"`     // Код банка отправителя
	Amount       int64          `json:"amount"`       // Сумма в минимальных единицах
	TransferType TransferMethod `json:"transferType"` // GENERAL | PROXIMITY
}

// EventKey ключ сообщения в kafka: события одного получателя
// попадают в одну партицию и сохраняют порядок
func (e NotificationEvent) EventKey() string {
	return e.UserID.String()
}
