// Package wallet provides the signing capabilities the step executor
// consumes. The executor depends only on these interfaces.
package wallet

import (
	"context"

	"relay-bridge/pkg/types"
)

// Wallet submits transactions and signs opaque messages.
type Wallet interface {
	// Address returns the account address transactions are sent from.
	Address() string

	// SendTransaction submits the payload as-is and returns the tx hash.
	// Absent numeric fields in the payload are not defaulted; the chain
	// applies its own values.
	SendTransaction(ctx context.Context, payload types.TransactionPayload) (string, error)

	// SignMessage signs an opaque message and returns the hex signature.
	SignMessage(ctx context.Context, message string) (string, error)
}

// ConfirmationWaiter observes chain confirmations for a submitted
// transaction. Wallets that cannot observe the chain may omit it; the
// aggregator's status check remains the authoritative completion signal.
type ConfirmationWaiter interface {
	WaitMined(ctx context.Context, txHash string) error
}
