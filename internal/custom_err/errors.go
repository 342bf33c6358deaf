package custom_err

import "errors"

var (
	// Transfer precondition errors
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrSameAccountTransfer = errors.New("sender and receiver accounts are the same")
	ErrAccountLookupFailed = errors.New("sender account lookup failed")

	// Settlement rail errors
	ErrAccountNotFound         = errors.New("account not found at the bank")
	ErrDormantAccount          = errors.New("dormant account")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrTransferLimitExceeded   = errors.New("transfer limit exceeded")
	ErrWithdrawalProcessing    = errors.New("withdrawal processing error")
	ErrDepositProcessing       = errors.New("deposit processing error")
	ErrUpstreamCommunication   = errors.New("bank api communication failure")
	ErrSettlementFailed        = errors.New("settlement failed")
	ErrCounterpartLookupFailed = errors.New("counterpart account lookup failed")

	// Ledger errors
	ErrLedgerWrite = errors.New("transfer history write failed")

	// Notification delivery errors
	ErrPermanentDelivery = errors.New("permanent notification delivery failure")
	ErrTokenNotFound     = errors.New("device token not found")

	// Lookup errors
	ErrNotFound = errors.New("resource not found")
)
