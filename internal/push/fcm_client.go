package push

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

// Notification push-уведомление для мобильного клиента
type Notification struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, deviceToken string, n Notification) error
}

type fcmRequest struct {
	To           string            `json:"to"`
	Notification Notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// Коды FCM, при которых токен никогда не станет валидным
var permanentFCMErrors = map[string]bool{
	"NotRegistered":       true,
	"InvalidRegistration": true,
	"MismatchSenderId":    true,
}

type FCMClient struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
	log        *slog.Logger
}

func NewFCMClient(endpoint, serverKey string, timeout time.Duration, log *slog.Logger) *FCMClient {
	return &FCMClient{
		endpoint:  endpoint,
		serverKey: serverKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send доставляет push-уведомление. Ошибки с невалидным токеном
// помечаются как постоянные (ErrPermanentDelivery), остальные считаются
// временными и подлежат повтору на стороне вызывающего.
func (c *FCMClient) Send(ctx context.Context, deviceToken string, n Notification) error {
	const op = "push.Send"

	body, err := json.Marshal(fcmRequest{
		To:           deviceToken,
		Notification: n,
		Data:         n.Data,
	})
	if err != nil {
		return fmt.Errorf("%s: marshal error: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "key="+c.serverKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer httpResp.Body.Close()

	switch {
	case httpResp.StatusCode == http.StatusOK:
		// разбор тела ниже
	case httpResp.StatusCode >= http.StatusBadRequest && httpResp.StatusCode < http.StatusInternalServerError:
		c.log.Warn("push отклонен как невалидный",
			slog.String("op", op),
			slog.Int("status", httpResp.StatusCode))
		return fmt.Errorf("%s: status %d: %w", op, httpResp.StatusCode, custom_err.ErrPermanentDelivery)
	default:
		return fmt.Errorf("%s: push gateway status %d", op, httpResp.StatusCode)
	}

	var resp fcmResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("%s: decode error: %w", op, err)
	}

	if resp.Failure > 0 {
		for _, res := range resp.Results {
			if permanentFCMErrors[res.Error] {
				c.log.Warn("токен устройства более не действителен",
					slog.String("op", op),
					slog.String("fcm_error", res.Error))
				return fmt.Errorf("%s: %s: %w", op, res.Error, custom_err.ErrPermanentDelivery)
			}
		}
		return fmt.Errorf("%s: delivery failed: %+v", op, resp.Results)
	}

	return nil
}
