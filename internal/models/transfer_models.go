package models

import (
	"time"

	"github.com/google/uuid"
)

// TransferRequest запрос на обычный перевод средств
type TransferRequest struct {
	SenderAccountID   uuid.UUID `json:"sender_account_id"`
	SenderBankCode    string    `json:"sender_bank_code"`
	SenderName        string    `json:"sender_name"`
	ReceiverAccountNo string    `json:"receiver_account_number"`
	ReceiverBankCode  string    `json:"receiver_bank_code"`
	ReceiverName      string    `json:"receiver_name"`
	Amount            int64     `json:"amount"`
}

// ProximityTransferRequest запрос на перевод по близости:
// реквизиты получателя определяются по его user id, а не вводятся клиентом
type ProximityTransferRequest struct {
	SenderAccountID uuid.UUID `json:"sender_account_id"`
	SenderBankCode  string    `json:"sender_bank_code"`
	SenderName      string    `json:"sender_name"`
	ReceiverUserID  uuid.UUID `json:"receiver_user_id"`
	Amount          int64     `json:"amount"`
}

// TransferResult подтверждение перевода: к моменту возврата списание
// уже зафиксировано, зачисление у получателя придет позже
type TransferResult struct {
	SenderAccountID   uuid.UUID `json:"sender_account_id"`
	ReceiverAccountNo string    `json:"receiver_account_number"`
	Amount            int64     `json:"amount"`
}

// ProximityTransferResult результат перевода по близости
type ProximityTransferResult struct {
	SenderAccountID   uuid.UUID `json:"sender_account_id"`
	ReceiverAccountNo string    `json:"receiver_account_number"`
	Amount            int64     `json:"amount"`
}

// Direction направление записи в истории переводов
type Direction string

const (
	DirectionWithdrawal Direction = "WITHDRAWAL"
	DirectionDeposit    Direction = "DEPOSIT"
)

func (d Direction) IsValid() bool {
	return d == DirectionWithdrawal || d == DirectionDeposit
}

// TransferMethod способ перевода
type TransferMethod string

const (
	MethodGeneral   TransferMethod = "GENERAL"
	MethodProximity TransferMethod = "PROXIMITY"
)

func (m TransferMethod) IsValid() bool {
	return m == MethodGeneral || m == MethodProximity
}

// LedgerEntry строка истории переводов (append-only, никогда не изменяется)
type LedgerEntry struct {
	ID                 int64          `json:"id" db:"id"`
	AccountID          uuid.UUID      `json:"account_id" db:"account_id"`
	CounterpartAccount string         `json:"counterpart_account" db:"counterpart_account"`
	CounterpartName    string         `json:"counterpart_name" db:"counterpart_name"`
	Direction          Direction      `json:"direction" db:"direction"`
	Amount             int64          `json:"amount" db:"amount"`
	Currency           string         `json:"currency" db:"currency"`
	Method             TransferMethod `json:"method" db:"method"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
}

// DefaultCurrency валюта платформы, суммы хранятся в минимальных единицах
const DefaultCurrency = "KRW"
