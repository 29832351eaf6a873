package relay

import (
	"errors"
	"fmt"
)

// Validation errors, detected before any network call.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrCrossEnvironment = errors.New("source and target chains are in different environments")
	ErrUnsupportedToken = errors.New("token not supported on chain")

	ErrRecipientRequired = errors.New("recipient address is required for this destination chain")
	ErrInvalidRecipient  = errors.New("invalid recipient address for destination chain")
)

// Execution errors.
var (
	// ErrUserRejected means the user declined a wallet prompt. It is not a
	// failure to report loudly; the caller returns to the pre-execution state.
	ErrUserRejected = errors.New("request was cancelled by user")

	ErrInsufficientFunds = errors.New("insufficient funds for this transaction")

	ErrBridgeFailure = errors.New("bridge operation failed")

	// ErrBridgeRefund means the bridge failed and funds were returned to the
	// sender. Kept distinct from ErrBridgeFailure so callers can explain that
	// nothing was lost.
	ErrBridgeRefund = errors.New("bridge operation failed, funds were refunded")

	// ErrStatusTimeout means the polling budget ran out without a terminal
	// status. The true outcome is unknown; the user must check manually.
	ErrStatusTimeout = errors.New("status polling timed out, check the transfer manually")

	ErrExecutionInFlight = errors.New("another execution is already in flight")
)

// ProviderError carries a non-2xx response from the aggregator.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("aggregator returned status %d", e.Status)
	}
	return fmt.Sprintf("aggregator returned status %d: %s", e.Status, e.Body)
}

// MissingFieldError names the first absent required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }
