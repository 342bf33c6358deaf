package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"remit-transfer/internal/custom_err"
	"remit-transfer/internal/grpc_client"
	"remit-transfer/internal/models"
	"remit-transfer/internal/railclient"
)

func setupTransferService(t *testing.T) (*TransferService, *MockAccountClient, *MockSettlementClient, *MockHistoryRepository, *MockKafkaProducer) {
	accounts := new(MockAccountClient)
	rail := new(MockSettlementClient)
	history := new(MockHistoryRepository)
	producer := new(MockKafkaProducer)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	service := NewTransferService(accounts, rail, history, producer, log)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		service.Shutdown(ctx)
	})

	return service, accounts, rail, history, producer
}

func TestTransferService_Transfer_Success(t *testing.T) {
	service, accounts, rail, history, producer := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()
	receiverAccountID := uuid.New()
	receiverUserID := uuid.New()

	req := models.TransferRequest{
		SenderAccountID:   senderAccountID,
		SenderBankCode:    "088",
		SenderName:        "Kim Minsu",
		ReceiverAccountNo: "110-234-567890",
		ReceiverBankCode:  "004",
		ReceiverName:      "Lee Jiyeon",
		Amount:            50000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)
	rail.On("Settle", ctx, mock.MatchedBy(func(sr railclient.SettlementRequest) bool {
		return sr.SendAccountNumber == "110-111-222333" &&
			sr.RecvAccountNumber == req.ReceiverAccountNo &&
			sr.Amount == req.Amount
	})).Return(&railclient.SettlementReceipt{TransactionID: "tx-001"}, nil)

	history.On("Record", ctx, mock.MatchedBy(func(e models.LedgerEntry) bool {
		return e.Direction == models.DirectionWithdrawal &&
			e.AccountID == senderAccountID &&
			e.CounterpartAccount == req.ReceiverAccountNo &&
			e.Amount == req.Amount &&
			e.Method == models.MethodGeneral
	})).Return(nil).Once()

	accounts.On("FindAccountByNumber", ctx, req.ReceiverAccountNo).Return(&grpc_client.AccountRef{
		AccountID:   receiverAccountID,
		OwnerUserID: receiverUserID,
	}, nil)

	history.On("Record", ctx, mock.MatchedBy(func(e models.LedgerEntry) bool {
		return e.Direction == models.DirectionDeposit &&
			e.AccountID == receiverAccountID &&
			e.CounterpartAccount == "110-111-222333" &&
			e.Amount == req.Amount
	})).Return(nil).Once()

	producer.On("PublishNotification", mock.Anything, mock.MatchedBy(func(event models.NotificationEvent) bool {
		return event.UserID == receiverUserID &&
			event.AccountID == receiverAccountID &&
			event.SenderName == "Kim Minsu" &&
			event.Amount == req.Amount &&
			event.TransferType == models.MethodGeneral
	})).Return(nil)

	result, err := service.Transfer(ctx, userID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, senderAccountID, result.SenderAccountID)
	assert.Equal(t, req.ReceiverAccountNo, result.ReceiverAccountNo)
	assert.Equal(t, req.Amount, result.Amount)

	time.Sleep(100 * time.Millisecond)

	accounts.AssertExpectations(t)
	rail.AssertExpectations(t)
	history.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestTransferService_Transfer_InvalidAmount(t *testing.T) {
	service, accounts, rail, history, _ := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name   string
		amount int64
	}{
		{"zero amount", 0},
		{"negative amount", -50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.TransferRequest{
				SenderAccountID:   uuid.New(),
				ReceiverAccountNo: "110-234-567890",
				Amount:            tt.amount,
			}

			result, err := service.Transfer(ctx, userID, req)

			assert.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, custom_err.ErrInvalidAmount)
		})
	}

	accounts.AssertNotCalled(t, "GetAccountNumber")
	rail.AssertNotCalled(t, "Settle")
	history.AssertNotCalled(t, "Record")
}

func TestTransferService_Transfer_SameAccount(t *testing.T) {
	service, accounts, rail, history, _ := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()

	req := models.TransferRequest{
		SenderAccountID:   senderAccountID,
		ReceiverAccountNo: "110-111-222333",
		Amount:            50000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)

	result, err := service.Transfer(ctx, userID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, custom_err.ErrSameAccountTransfer)

	rail.AssertNotCalled(t, "Settle")
	history.AssertNotCalled(t, "Record")
	accounts.AssertExpectations(t)
}

func TestTransferService_Transfer_AccountLookupFailed(t *testing.T) {
	service, accounts, rail, _, _ := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()

	req := models.TransferRequest{
		SenderAccountID:   senderAccountID,
		ReceiverAccountNo: "110-234-567890",
		Amount:            50000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).
		Return("", custom_err.ErrAccountLookupFailed)

	result, err := service.Transfer(ctx, userID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, custom_err.ErrAccountLookupFailed)

	rail.AssertNotCalled(t, "Settle")
}

func TestTransferService_Transfer_SettlementRejected_NoLedgerWrites(t *testing.T) {
	service, accounts, rail, history, producer := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()

	req := models.TransferRequest{
		SenderAccountID:   senderAccountID,
		ReceiverAccountNo: "110-234-567890",
		Amount:            50000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)
	rail.On("Settle", ctx, mock.Anything).Return(nil, custom_err.ErrInsufficientBalance)

	result, err := service.Transfer(ctx, userID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, custom_err.ErrInsufficientBalance)

	time.Sleep(50 * time.Millisecond)

	history.AssertNotCalled(t, "Record")
	producer.AssertNotCalled(t, "PublishNotification")
	rail.AssertExpectations(t)
}

func TestTransferService_Transfer_ExternalReceiver_SingleRow(t *testing.T) {
	service, accounts, rail, history, producer := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()

	req := models.TransferRequest{
		SenderAccountID:   senderAccountID,
		ReceiverAccountNo: "333-444-555666",
		ReceiverName:      "Park Junho",
		Amount:            70000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)
	rail.On("Settle", ctx, mock.Anything).Return(&railclient.SettlementReceipt{TransactionID: "tx-002"}, nil)
	history.On("Record", ctx, mock.MatchedBy(func(e models.LedgerEntry) bool {
		return e.Direction == models.DirectionWithdrawal
	})).Return(nil).Once()

	// получатель не клиент платформы
	accounts.On("FindAccountByNumber", ctx, req.ReceiverAccountNo).
		Return(nil, custom_err.ErrNotFound)

	result, err := service.Transfer(ctx, userID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)

	time.Sleep(100 * time.Millisecond)

	history.AssertNumberOfCalls(t, "Record", 1)
	producer.AssertNotCalled(t, "PublishNotification")
	accounts.AssertExpectations(t)
}

func TestTransferService_Transfer_WithdrawalRecordFailed(t *testing.T) {
	service, accounts, rail, history, _ := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()

	req := models.TransferRequest{
		SenderAccountID:   senderAccountID,
		ReceiverAccountNo: "110-234-567890",
		Amount:            50000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)
	rail.On("Settle", ctx, mock.Anything).Return(&railclient.SettlementReceipt{TransactionID: "tx-003"}, nil)

	history.On("Record", ctx, mock.MatchedBy(func(e models.LedgerEntry) bool {
		return e.Direction == models.DirectionWithdrawal
	})).Return(custom_err.ErrLedgerWrite).Once()

	result, err := service.Transfer(ctx, userID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, custom_err.ErrLedgerWrite)

	accounts.AssertNotCalled(t, "FindAccountByNumber")
}

func TestTransferService_Transfer_DepositRecordFailed_StillSuccess(t *testing.T) {
	service, accounts, rail, history, producer := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()
	receiverAccountID := uuid.New()
	receiverUserID := uuid.New()

	req := models.TransferRequest{
		SenderAccountID:   senderAccountID,
		ReceiverAccountNo: "110-234-567890",
		SenderName:        "Kim Minsu",
		Amount:            50000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)
	rail.On("Settle", ctx, mock.Anything).Return(&railclient.SettlementReceipt{TransactionID: "tx-004"}, nil)
	history.On("Record", ctx, mock.MatchedBy(func(e models.LedgerEntry) bool {
		return e.Direction == models.DirectionWithdrawal
	})).Return(nil).Once()
	accounts.On("FindAccountByNumber", ctx, req.ReceiverAccountNo).Return(&grpc_client.AccountRef{
		AccountID:   receiverAccountID,
		OwnerUserID: receiverUserID,
	}, nil)
	history.On("Record", ctx, mock.MatchedBy(func(e models.LedgerEntry) bool {
		return e.Direction == models.DirectionDeposit
	})).Return(custom_err.ErrLedgerWrite).Once()

	// уведомление отправляется даже если строка зачисления не записалась
	producer.On("PublishNotification", mock.Anything, mock.Anything).Return(nil)

	result, err := service.Transfer(ctx, userID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)

	time.Sleep(100 * time.Millisecond)

	producer.AssertExpectations(t)
	history.AssertExpectations(t)
}

func TestTransferService_ProximityTransfer_Success_Masking(t *testing.T) {
	service, accounts, rail, history, producer := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()
	receiverUserID := uuid.New()
	receiverAccountID := uuid.New()

	req := models.ProximityTransferRequest{
		SenderAccountID: senderAccountID,
		SenderBankCode:  "088",
		SenderName:      "김민수",
		ReceiverUserID:  receiverUserID,
		Amount:          30000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)
	accounts.On("GetPrimaryAccount", ctx, receiverUserID).Return(&grpc_client.PrimaryAccount{
		AccountID:     receiverAccountID,
		AccountNumber: "110-987-654321",
		BankCode:      "004",
		DisplayName:   "이지연",
	}, nil)

	// расчет идет по немаскированным реквизитам
	rail.On("Settle", ctx, mock.MatchedBy(func(sr railclient.SettlementRequest) bool {
		return sr.RecvAccountNumber == "110-987-654321" && sr.RecvName == "이지연"
	})).Return(&railclient.SettlementReceipt{TransactionID: "tx-005"}, nil)

	// а в историю попадают только маскированные поля контрагента
	history.On("Record", ctx, mock.MatchedBy(func(e models.LedgerEntry) bool {
		return e.Direction == models.DirectionWithdrawal &&
			e.CounterpartAccount == "110*********21" &&
			e.CounterpartName == "이**" &&
			e.Method == models.MethodProximity
	})).Return(nil).Once()
	history.On("Record", ctx, mock.MatchedBy(func(e models.LedgerEntry) bool {
		return e.Direction == models.DirectionDeposit &&
			e.AccountID == receiverAccountID &&
			e.CounterpartAccount == "110*********33" &&
			e.CounterpartName == "김**"
	})).Return(nil).Once()

	producer.On("PublishNotification", mock.Anything, mock.MatchedBy(func(event models.NotificationEvent) bool {
		return event.UserID == receiverUserID &&
			event.SenderName == "김**" &&
			event.TransferType == models.MethodProximity
	})).Return(nil)

	result, err := service.ProximityTransfer(ctx, userID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "110*********21", result.ReceiverAccountNo)

	time.Sleep(100 * time.Millisecond)

	accounts.AssertExpectations(t)
	rail.AssertExpectations(t)
	history.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestTransferService_ProximityTransfer_CounterpartNotFound(t *testing.T) {
	service, accounts, rail, _, _ := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()
	receiverUserID := uuid.New()

	req := models.ProximityTransferRequest{
		SenderAccountID: senderAccountID,
		ReceiverUserID:  receiverUserID,
		Amount:          30000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)
	accounts.On("GetPrimaryAccount", ctx, receiverUserID).Return(nil, custom_err.ErrNotFound)

	result, err := service.ProximityTransfer(ctx, userID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, custom_err.ErrCounterpartLookupFailed)

	rail.AssertNotCalled(t, "Settle")
}

func TestTransferService_ProximityTransfer_SameAccount(t *testing.T) {
	service, accounts, rail, _, _ := setupTransferService(t)
	ctx := context.Background()
	userID := uuid.New()
	senderAccountID := uuid.New()

	req := models.ProximityTransferRequest{
		SenderAccountID: senderAccountID,
		ReceiverUserID:  userID,
		Amount:          30000,
	}

	accounts.On("GetAccountNumber", ctx, senderAccountID, userID).Return("110-111-222333", nil)
	accounts.On("GetPrimaryAccount", ctx, userID).Return(&grpc_client.PrimaryAccount{
		AccountID:     senderAccountID,
		AccountNumber: "110-111-222333",
	}, nil)

	result, err := service.ProximityTransfer(ctx, userID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, custom_err.ErrSameAccountTransfer)

	rail.AssertNotCalled(t, "Settle")
}

func TestTransferService_GetHistory(t *testing.T) {
	service, _, _, history, _ := setupTransferService(t)
	ctx := context.Background()
	accountID := uuid.New()

	expected := []*models.LedgerEntry{
		{ID: 2, AccountID: accountID, Direction: models.DirectionDeposit, Amount: 30000},
		{ID: 1, AccountID: accountID, Direction: models.DirectionWithdrawal, Amount: 50000},
	}

	history.On("GetByAccount", ctx, accountID, 20, 0).Return(expected, nil)

	entries, err := service.GetHistory(ctx, accountID, 20, 0)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, expected, entries)

	history.AssertExpectations(t)
}

func TestTransferService_GetHistory_Error(t *testing.T) {
	service, _, _, history, _ := setupTransferService(t)
	ctx := context.Background()
	accountID := uuid.New()

	history.On("GetByAccount", ctx, accountID, 20, 0).Return(nil, errors.New("connection refused"))

	entries, err := service.GetHistory(ctx, accountID, 20, 0)

	assert.Error(t, err)
	assert.Nil(t, entries)
}
