package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"remit-transfer/internal/api/middlew"
	"remit-transfer/internal/custom_err"
	"remit-transfer/internal/models"
	"remit-transfer/internal/service"
	"remit-transfer/pkg/response"

	"github.com/google/uuid"
)

type TransferHandler struct {
	service service.Transfer
}

func NewTransferHandler(service service.Transfer) *TransferHandler {
	return &TransferHandler{
		service: service,
	}
}

// Transfer godoc
// @Summary      Перевод средств
// @Description  Выполняет перевод на счет получателя через банковский шлюз
// @Tags         transfer
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body models.TransferRequest true "Данные перевода"
// @Success      200 {object} models.TransferResult
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Router       /transfers [post]
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Transfer"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	userID := middlew.GetUserID(r.Context())

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	if req.SenderAccountID == uuid.Nil {
		log.Warn("sender account id is required", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_field", "sender_account_id is required")
		return
	}
	if req.ReceiverAccountNo == "" {
		log.Warn("receiver account number is required", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_field", "receiver_account_number is required")
		return
	}

	log.Info("transfer request",
		slog.String("op", op),
		slog.String("sender_account_id", req.SenderAccountID.String()),
		slog.Int64("amount", req.Amount))

	result, err := h.service.Transfer(r.Context(), userID, req)
	if err != nil {
		writeTransferError(w, log, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, result)
}

// ProximityTransfer godoc
// @Summary      Перевод по близости
// @Description  Переводит средства пользователю, найденному при сопряжении устройств
// @Tags         transfer
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body models.ProximityTransferRequest true "Данные перевода"
// @Success      200 {object} models.ProximityTransferResult
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Router       /transfers/proximity [post]
func (h *TransferHandler) ProximityTransfer(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ProximityTransfer"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	userID := middlew.GetUserID(r.Context())

	var req models.ProximityTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	if req.SenderAccountID == uuid.Nil {
		log.Warn("sender account id is required", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_field", "sender_account_id is required")
		return
	}
	if req.ReceiverUserID == uuid.Nil {
		log.Warn("receiver user id is required", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_field", "receiver_user_id is required")
		return
	}

	log.Info("proximity transfer request",
		slog.String("op", op),
		slog.String("sender_account_id", req.SenderAccountID.String()),
		slog.Int64("amount", req.Amount))

	result, err := h.service.ProximityTransfer(r.Context(), userID, req)
	if err != nil {
		writeTransferError(w, log, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, result)
}

// GetHistory godoc
// @Summary      История переводов
// @Description  Возвращает историю переводов по счету, новые записи первыми
// @Tags         transfer
// @Security     BearerAuth
// @Produce      json
// @Param        account_id query string true "ID счета"
// @Param        limit query int false "Размер страницы"
// @Param        offset query int false "Смещение"
// @Success      200 {array} models.LedgerEntry
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Router       /transfers [get]
func (h *TransferHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetHistory"
	log := middlew.GetLogger(r.Context())

	accountID, err := uuid.Parse(r.URL.Query().Get("account_id"))
	if err != nil {
		log.Warn("invalid account id", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_field", "account_id must be a valid UUID")
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := h.service.GetHistory(r.Context(), accountID, limit, offset)
	if err != nil {
		log.Error("failed to get history", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to retrieve history")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// writeTransferError единая развязка таксономии ошибок перевода в HTTP
func writeTransferError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, custom_err.ErrInvalidAmount):
		log.Warn("invalid amount", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", "Amount must be positive")
	case errors.Is(err, custom_err.ErrSameAccountTransfer):
		log.Warn("same account transfer", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadRequest, "same_account", "Cannot transfer to the same account")
	case errors.Is(err, custom_err.ErrAccountLookupFailed):
		log.Warn("sender account lookup failed", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusNotFound, "account_not_found", "Sender account not found")
	case errors.Is(err, custom_err.ErrCounterpartLookupFailed):
		log.Warn("counterpart lookup failed", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusNotFound, "counterpart_not_found", "Receiver account not found")
	case errors.Is(err, custom_err.ErrAccountNotFound):
		response.WriteJSONError(w, log, http.StatusBadRequest, "bank_account_unknown", "Account unknown at the bank")
	case errors.Is(err, custom_err.ErrDormantAccount):
		response.WriteJSONError(w, log, http.StatusBadRequest, "dormant_account", "Account is dormant")
	case errors.Is(err, custom_err.ErrInsufficientBalance):
		response.WriteJSONError(w, log, http.StatusBadRequest, "insufficient_balance", "Insufficient balance")
	case errors.Is(err, custom_err.ErrTransferLimitExceeded):
		response.WriteJSONError(w, log, http.StatusBadRequest, "limit_exceeded", "Transfer limit exceeded")
	case errors.Is(err, custom_err.ErrWithdrawalProcessing):
		response.WriteJSONError(w, log, http.StatusBadGateway, "withdrawal_error", "Withdrawal processing error")
	case errors.Is(err, custom_err.ErrDepositProcessing):
		response.WriteJSONError(w, log, http.StatusBadGateway, "deposit_error", "Deposit processing error")
	case errors.Is(err, custom_err.ErrUpstreamCommunication):
		log.Error("bank api unreachable", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusBadGateway, "bank_unavailable", "Bank is temporarily unavailable")
	case errors.Is(err, custom_err.ErrSettlementFailed):
		log.Error("settlement failed", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadGateway, "settlement_failed", "Settlement failed")
	case errors.Is(err, custom_err.ErrLedgerWrite):
		log.Error("ledger write failed after settlement", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "history_write_failed", "Transfer settled but history write failed")
	default:
		log.Error("transfer failed", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}
