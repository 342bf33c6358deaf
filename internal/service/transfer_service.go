package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"remit-transfer/internal/custom_err"
	"remit-transfer/internal/grpc_client"
	"remit-transfer/internal/kafka"
	"remit-transfer/internal/models"
	"remit-transfer/internal/railclient"
	"remit-transfer/internal/storage/postgres"

	"github.com/google/uuid"
)

type Transfer interface {
	Transfer(ctx context.Context, userID uuid.UUID, req models.TransferRequest) (*models.TransferResult, error)
	ProximityTransfer(ctx context.Context, userID uuid.UUID, req models.ProximityTransferRequest) (*models.ProximityTransferResult, error)
	GetHistory(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*models.LedgerEntry, error)
}

// TransferService оркестратор саги перевода: резолв счетов -> расчет через
// банковский шлюз -> двусторонняя запись истории -> асинхронное уведомление.
// Сага forward-only: успешный расчет не откатывается при последующих сбоях.
type TransferService struct {
	accounts grpc_client.AccountClient
	rail     railclient.SettlementClient
	history  postgres.HistoryRepository
	producer kafka.Producer
	log      *slog.Logger

	eventQueue chan models.NotificationEvent
	wg         sync.WaitGroup
	stopCh     chan struct{}
}

func NewTransferService(
	accounts grpc_client.AccountClient,
	rail railclient.SettlementClient,
	history postgres.HistoryRepository,
	producer kafka.Producer,
	log *slog.Logger,
) *TransferService {
	svc := &TransferService{
		accounts:   accounts,
		rail:       rail,
		history:    history,
		producer:   producer,
		log:        log,
		eventQueue: make(chan models.NotificationEvent, 100),
		stopCh:     make(chan struct{}),
	}

	for i := 0; i < 5; i++ {
		svc.wg.Add(1)
		go svc.kafkaWorker(i)
	}

	return svc
}

func (s *TransferService) kafkaWorker(id int) {
	defer s.wg.Done()
	s.log.Info("kafka worker started", slog.Int("worker_id", id))

	for {
		select {
		case event := <-s.eventQueue:
			s.publishEvent(event, id)

		case <-s.stopCh:
			s.log.Info("kafka worker stopping", slog.Int("worker_id", id))
			return
		}
	}
}

func (s *TransferService) publishEvent(event models.NotificationEvent, workerID int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.producer.PublishNotification(ctx, event); err != nil {
		s.log.Error("kafka send failed",
			slog.Int("worker_id", workerID),
			slog.String("event_id", event.EventID.String()),
			slog.String("error", err.Error()))
	} else {
		s.log.Info("event sent to kafka",
			slog.Int("worker_id", workerID),
			slog.String("event_id", event.EventID.String()))
	}
}

func (s *TransferService) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down transfer service")

	close(s.stopCh)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("all kafka workers stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn("shutdown timeout exceeded")
		return ctx.Err()
	}
}

// Transfer выполняет обычный перевод. К моменту успешного возврата
// списание отправителя зафиксировано; сторона получателя (строка
// зачисления и уведомление) best-effort и не влияет на результат.
func (s *TransferService) Transfer(ctx context.Context, userID uuid.UUID, req models.TransferRequest) (*models.TransferResult, error) {
	const op = "service.Transfer"

	if req.Amount <= 0 {
		return nil, custom_err.ErrInvalidAmount
	}

	senderNumber, err := s.accounts.GetAccountNumber(ctx, req.SenderAccountID, userID)
	if err != nil {
		if errors.Is(err, custom_err.ErrAccountLookupFailed) {
			return nil, custom_err.ErrAccountLookupFailed
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if senderNumber == req.ReceiverAccountNo {
		return nil, custom_err.ErrSameAccountTransfer
	}

	s.log.Info("перевод средств",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("sender_account_id", req.SenderAccountID.String()),
		slog.Int64("amount", req.Amount))

	_, err = s.rail.Settle(ctx, railclient.SettlementRequest{
		SendAccountNumber: senderNumber,
		SendBankCode:      req.SenderBankCode,
		SendName:          req.SenderName,
		RecvAccountNumber: req.ReceiverAccountNo,
		RecvBankCode:      req.ReceiverBankCode,
		RecvName:          req.ReceiverName,
		Amount:            req.Amount,
	})
	if err != nil {
		// До этой точки долговременных эффектов нет, прерывание безопасно
		return nil, err
	}

	// Первый долговременный эффект: деньги уже перемещены банком,
	// поэтому ошибка записи всплывает, но расчет не компенсируется
	err = s.history.Record(ctx, models.LedgerEntry{
		AccountID:          req.SenderAccountID,
		CounterpartAccount: req.ReceiverAccountNo,
		CounterpartName:    req.ReceiverName,
		Direction:          models.DirectionWithdrawal,
		Amount:             req.Amount,
		Currency:           models.DefaultCurrency,
		Method:             models.MethodGeneral,
	})
	if err != nil {
		s.log.Error("списание проведено банком, но не записано в историю",
			slog.String("op", op),
			slog.String("sender_account_id", req.SenderAccountID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	receiver, err := s.accounts.FindAccountByNumber(ctx, req.ReceiverAccountNo)
	if err != nil {
		if !errors.Is(err, custom_err.ErrNotFound) {
			// Списание уже успешно, сторону получателя не доращиваем
			s.log.Error("обратный поиск счета получателя не удался",
				slog.String("op", op),
				slog.String("error", err.Error()))
		}
		return &models.TransferResult{
			SenderAccountID:   req.SenderAccountID,
			ReceiverAccountNo: req.ReceiverAccountNo,
			Amount:            req.Amount,
		}, nil
	}

	s.recordDepositSide(ctx, depositSide{
		AccountID:          receiver.AccountID,
		UserID:             receiver.OwnerUserID,
		CounterpartAccount: senderNumber,
		CounterpartName:    req.SenderName,
		SenderBankCode:     req.SenderBankCode,
		Amount:             req.Amount,
		Method:             models.MethodGeneral,
	})

	return &models.TransferResult{
		SenderAccountID:   req.SenderAccountID,
		ReceiverAccountNo: req.ReceiverAccountNo,
		Amount:            req.Amount,
	}, nil
}

// ProximityTransfer перевод по близости: реквизиты получателя разрешаются
// по его user id через основной счет. Предусловие: обе стороны
// пользователи платформы, поэтому обе строки истории пишутся всегда,
// а поля контрагента маскируются до записи.
func (s *TransferService) ProximityTransfer(ctx context.Context, userID uuid.UUID, req models.ProximityTransferRequest) (*models.ProximityTransferResult, error) {
	const op = "service.ProximityTransfer"

	if req.Amount <= 0 {
		return nil, custom_err.ErrInvalidAmount
	}

	senderNumber, err := s.accounts.GetAccountNumber(ctx, req.SenderAccountID, userID)
	if err != nil {
		if errors.Is(err, custom_err.ErrAccountLookupFailed) {
			return nil, custom_err.ErrAccountLookupFailed
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	receiver, err := s.accounts.GetPrimaryAccount(ctx, req.ReceiverUserID)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, custom_err.ErrCounterpartLookupFailed
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if senderNumber == receiver.AccountNumber {
		return nil, custom_err.ErrSameAccountTransfer
	}

	maskedReceiverNumber := MaskAccountNumber(receiver.AccountNumber)

	s.log.Info("перевод по близости",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.String("receiver_account", maskedReceiverNumber),
		slog.Int64("amount", req.Amount))

	_, err = s.rail.Settle(ctx, railclient.SettlementRequest{
		SendAccountNumber: senderNumber,
		SendBankCode:      req.SenderBankCode,
		SendName:          req.SenderName,
		RecvAccountNumber: receiver.AccountNumber,
		RecvBankCode:      receiver.BankCode,
		RecvName:          receiver.DisplayName,
		Amount:            req.Amount,
	})
	if err != nil {
		return nil, err
	}

	err = s.history.Record(ctx, models.LedgerEntry{
		AccountID:          req.SenderAccountID,
		CounterpartAccount: maskedReceiverNumber,
		CounterpartName:    MaskName(receiver.DisplayName),
		Direction:          models.DirectionWithdrawal,
		Amount:             req.Amount,
		Currency:           models.DefaultCurrency,
		Method:             models.MethodProximity,
	})
	if err != nil {
		s.log.Error("списание проведено банком, но не записано в историю",
			slog.String("op", op),
			slog.String("sender_account_id", req.SenderAccountID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.recordDepositSide(ctx, depositSide{
		AccountID:          receiver.AccountID,
		UserID:             req.ReceiverUserID,
		CounterpartAccount: MaskAccountNumber(senderNumber),
		CounterpartName:    MaskName(req.SenderName),
		SenderBankCode:     req.SenderBankCode,
		Amount:             req.Amount,
		Method:             models.MethodProximity,
	})

	return &models.ProximityTransferResult{
		SenderAccountID:   req.SenderAccountID,
		ReceiverAccountNo: maskedReceiverNumber,
		Amount:            req.Amount,
	}, nil
}

func (s *TransferService) GetHistory(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*models.LedgerEntry, error) {
	const op = "service.GetHistory"

	entries, err := s.history.GetByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}

type depositSide struct {
	AccountID          uuid.UUID
	UserID             uuid.UUID
	CounterpartAccount string
	CounterpartName    string
	SenderBankCode     string
	Amount             int64
	Method             models.TransferMethod
}

// recordDepositSide сторона получателя: строка зачисления и событие
// уведомления. Оба эффекта best-effort: их сбои логируются, но не
// отменяют уже зафиксированное списание. Точка расширения для будущего
// outbox-механизма без изменения пути расчета.
func (s *TransferService) recordDepositSide(ctx context.Context, side depositSide) {
	err := s.history.Record(ctx, models.LedgerEntry{
		AccountID:          side.AccountID,
		CounterpartAccount: side.CounterpartAccount,
		CounterpartName:    side.CounterpartName,
		Direction:          models.DirectionDeposit,
		Amount:             side.Amount,
		Currency:           models.DefaultCurrency,
		Method:             side.Method,
	})
	if err != nil {
		s.log.Error("строка зачисления не записана",
			slog.String("account_id", side.AccountID.String()),
			slog.String("error", err.Error()))
	}

	event := models.NotificationEvent{
		EventID:      uuid.New(),
		UserID:       side.UserID,
		AccountID:    side.AccountID,
		SenderName:   side.CounterpartName,
		BankCode:     side.SenderBankCode,
		Amount:       side.Amount,
		TransferType: side.Method,
	}

	select {
	case s.eventQueue <- event:
		s.log.Debug("событие уведомления добавлено в очередь",
			slog.String("event_id", event.EventID.String()))
	default:
		// Очередь заполнена: публикуем в вызывающем потоке,
		// обратное давление вместо потери события
		s.log.Warn("очередь событий переполнена, публикация в потоке вызова",
			slog.String("event_id", event.EventID.String()))
		s.publishEvent(event, -1)
	}
}
