package models

import "time"

// DeliveredNotification архивная запись доставленного уведомления,
// хранится в MongoDB для отображения входящих в приложении
type DeliveredNotification struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	EventID      string    `bson:"event_id" json:"event_id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	AccountID    string    `bson:"account_id" json:"account_id"`
	SenderName   string    `bson:"sender_name" json:"sender_name"`
	BankCode     string    `bson:"bank_code" json:"bank_code"`
	Amount       int64     `bson:"amount" json:"amount"`
	TransferType string    `bson:"transfer_type" json:"transfer_type"`
	DeliveredAt  time.Time `bson:"delivered_at" json:"delivered_at"`
}
