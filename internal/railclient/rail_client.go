package railclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"remit-transfer/internal/custom_err"
)

// Машинные коды ошибок банковского шлюза, сопоставленные с таксономией
// ошибок перевода. Таблица фиксируется при старте, нераспознанный код
// попадает в ErrSettlementFailed.
var railErrorCodes = map[string]error{
	"RAIL_ACCOUNT_UNKNOWN":      custom_err.ErrAccountNotFound,
	"RAIL_ACCOUNT_DORMANT":      custom_err.ErrDormantAccount,
	"RAIL_INSUFFICIENT_FUNDS":   custom_err.ErrInsufficientBalance,
	"RAIL_LIMIT_EXCEEDED":       custom_err.ErrTransferLimitExceeded,
	"RAIL_WITHDRAWAL_FAILED":    custom_err.ErrWithdrawalProcessing,
	"RAIL_DEPOSIT_FAILED":       custom_err.ErrDepositProcessing,
	"RAIL_UPSTREAM_UNREACHABLE": custom_err.ErrUpstreamCommunication,
}

type SettlementRequest struct {
	SendAccountNumber string `json:"send_account_number"`
	SendBankCode      string `json:"send_bank_code"`
	SendName          string `json:"send_name"`
	RecvAccountNumber string `json:"recv_account_number"`
	RecvBankCode      string `json:"recv_bank_code"`
	RecvName          string `json:"recv_name"`
	Amount            int64  `json:"amount"`
}

// SettlementReceipt подтверждение шлюза об успешном движении средств
type SettlementReceipt struct {
	TransactionID string `json:"transaction_id"`
	SettledAt     string `json:"settled_at"`
}

type settlementResponse struct {
	IsSuccess bool               `json:"isSuccess"`
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	Result    *SettlementReceipt `json:"result"`
}

type SettlementClient interface {
	Settle(ctx context.Context, req SettlementRequest) (*SettlementReceipt, error)
}

type RailClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

func NewRailClient(baseURL, apiKey string, timeout time.Duration, log *slog.Logger) *RailClient {
	return &RailClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Settle выполняет перевод средств через банковский шлюз.
// Ответ без признака успеха считается отказом даже при HTTP 200.
func (c *RailClient) Settle(ctx context.Context, req SettlementRequest) (*SettlementReceipt, error) {
	const op = "railclient.Settle"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal error: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-KEY", c.apiKey)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("банковский шлюз недоступен",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return nil, custom_err.ErrUpstreamCommunication
	}
	defer httpResp.Body.Close()

	duration := time.Since(start)
	if duration > 1*time.Second {
		c.log.Warn("медленный ответ банковского шлюза",
			slog.String("op", op),
			slog.Duration("duration", duration))
	}

	if httpResp.StatusCode >= http.StatusInternalServerError {
		c.log.Error("ошибка на стороне банковского шлюза",
			slog.String("op", op),
			slog.Int("status", httpResp.StatusCode))
		return nil, custom_err.ErrUpstreamCommunication
	}

	var resp settlementResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		c.log.Error("нечитаемый ответ банковского шлюза",
			slog.String("op", op),
			slog.Int("status", httpResp.StatusCode),
			slog.String("error", err.Error()))
		return nil, custom_err.ErrUpstreamCommunication
	}

	if !resp.IsSuccess {
		mapped := mapRailCode(resp.Code)
		c.log.Warn("шлюз отклонил перевод",
			slog.String("op", op),
			slog.String("code", resp.Code),
			slog.String("message", resp.Message))
		return nil, mapped
	}

	if resp.Result == nil {
		// Успех без квитанции считаем протокольным сбоем
		return nil, custom_err.ErrSettlementFailed
	}

	c.log.Debug("перевод подтвержден шлюзом",
		slog.String("transaction_id", resp.Result.TransactionID))

	return resp.Result, nil
}

func mapRailCode(code string) error {
	if err, ok := railErrorCodes[code]; ok {
		return err
	}
	return custom_err.ErrSettlementFailed
}
