package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"remit-transfer/internal/grpc_client"
	"remit-transfer/internal/models"
	"remit-transfer/internal/railclient"
)

type MockAccountClient struct {
	mock.Mock
}

func (m *MockAccountClient) GetAccountNumber(ctx context.Context, accountID, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, accountID, userID)
	return args.String(0), args.Error(1)
}

func (m *MockAccountClient) FindAccountByNumber(ctx context.Context, accountNumber string) (*grpc_client.AccountRef, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grpc_client.AccountRef), args.Error(1)
}

func (m *MockAccountClient) GetPrimaryAccount(ctx context.Context, userID uuid.UUID) (*grpc_client.PrimaryAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grpc_client.PrimaryAccount), args.Error(1)
}

func (m *MockAccountClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockSettlementClient struct {
	mock.Mock
}

func (m *MockSettlementClient) Settle(ctx context.Context, req railclient.SettlementRequest) (*railclient.SettlementReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*railclient.SettlementReceipt), args.Error(1)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Record(ctx context.Context, entry models.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

type MockKafkaProducer struct {
	mock.Mock
}

func (m *MockKafkaProducer) PublishNotification(ctx context.Context, event models.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockKafkaProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
