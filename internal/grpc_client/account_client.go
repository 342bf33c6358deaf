package grpc_client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pb "remit-transfer/proto-account"

	"remit-transfer/internal/custom_err"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
)

// Политика канала: round-robin и повторы только на UNAVAILABLE.
// Логика повторов принадлежит каналу, оркестратор о ней не знает.
const serviceConfig = `{
	"loadBalancingConfig": [{"round_robin":{}}],
	"methodConfig": [{
		"name": [{"service": "account.AccountService"}],
		"retryPolicy": {
			"maxAttempts": 3,
			"initialBackoff": "0.5s",
			"maxBackoff": "10s",
			"backoffMultiplier": 2.0,
			"retryableStatusCodes": ["UNAVAILABLE"]
		}
	}]
}`

// AccountRef счет платформы, найденный по номеру счета
type AccountRef struct {
	AccountID   uuid.UUID
	OwnerUserID uuid.UUID
}

// PrimaryAccount основной счет пользователя для переводов по близости
type PrimaryAccount struct {
	AccountID     uuid.UUID
	AccountNumber string
	BankCode      string
	DisplayName   string
}

type AccountClient interface {
	GetAccountNumber(ctx context.Context, accountID, userID uuid.UUID) (string, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*AccountRef, error)
	GetPrimaryAccount(ctx context.Context, userID uuid.UUID) (*PrimaryAccount, error)
	Close() error
}

type grpcAccountClient struct {
	conn    *grpc.ClientConn
	client  pb.AccountServiceClient
	timeout time.Duration
	log     *slog.Logger
}

func NewAccountClient(addr string, timeout time.Duration, log *slog.Logger) (AccountClient, error) {
	const op = "grpc_client.NewAccountClient"

	log.Info("подключение к gRPC реестру счетов", slog.String("addr", addr))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(
		ctx,
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultServiceConfig(serviceConfig),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                30 * time.Second,
			Timeout:             10 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	client := pb.NewAccountServiceClient(conn)

	log.Info("успешное подключение к реестру счетов")

	return &grpcAccountClient{
		conn:    conn,
		client:  client,
		timeout: timeout,
		log:     log,
	}, nil
}

func (c *grpcAccountClient) GetAccountNumber(ctx context.Context, accountID, userID uuid.UUID) (string, error) {
	const op = "grpc_client.GetAccountNumber"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.GetAccountNumber(ctx, &pb.AccountNumberRequest{
		AccountId: accountID.String(),
		UserId:    userID.String(),
	})
	if err != nil {
		st, ok := status.FromError(err)
		if ok && (st.Code() == codes.NotFound || st.Code() == codes.PermissionDenied) {
			c.log.Warn("счет отправителя не найден или не принадлежит пользователю",
				slog.String("op", op),
				slog.String("account_id", accountID.String()),
				slog.String("user_id", userID.String()))
			return "", custom_err.ErrAccountLookupFailed
		}
		c.log.Error("ошибка запроса номера счета",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return resp.AccountNumber, nil
}

func (c *grpcAccountClient) FindAccountByNumber(ctx context.Context, accountNumber string) (*AccountRef, error) {
	const op = "grpc_client.FindAccountByNumber"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.FindAccountByNumber(ctx, &pb.AccountByNumberRequest{
		AccountNumber: accountNumber,
	})
	if err != nil {
		st, ok := status.FromError(err)
		if ok && st.Code() == codes.NotFound {
			return nil, custom_err.ErrNotFound
		}
		c.log.Error("ошибка обратного поиска счета",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accountID, err := uuid.Parse(resp.AccountId)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid account_id in response: %w", op, err)
	}
	ownerID, err := uuid.Parse(resp.UserId)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid user_id in response: %w", op, err)
	}

	return &AccountRef{
		AccountID:   accountID,
		OwnerUserID: ownerID,
	}, nil
}

func (c *grpcAccountClient) GetPrimaryAccount(ctx context.Context, userID uuid.UUID) (*PrimaryAccount, error) {
	const op = "grpc_client.GetPrimaryAccount"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.Debug("запрос основного счета пользователя",
		slog.String("user_id", userID.String()))

	resp, err := c.client.GetPrimaryAccount(ctx, &pb.PrimaryAccountRequest{
		UserId: userID.String(),
	})
	if err != nil {
		st, ok := status.FromError(err)
		if ok && st.Code() == codes.NotFound {
			return nil, custom_err.ErrNotFound
		}
		c.log.Error("ошибка запроса основного счета",
			slog.String("op", op),
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	accountID, err := uuid.Parse(resp.AccountId)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid account_id in response: %w", op, err)
	}

	return &PrimaryAccount{
		AccountID:     accountID,
		AccountNumber: resp.AccountNumber,
		BankCode:      resp.BankCode,
		DisplayName:   resp.DisplayName,
	}, nil
}

func (c *grpcAccountClient) Close() error {
	if c.conn == nil {
		return nil
	}
	c.log.Info("закрытие соединения с реестром счетов")
	return c.conn.Close()
}
