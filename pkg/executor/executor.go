// Package executor drives a quote's ordered steps to completion against a
// wallet and the aggregator's status-check endpoints.
package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/types"
	"relay-bridge/pkg/wallet"
)

const (
	// DefaultPollInterval is the fixed status-poll cadence. The aggregator
	// expects a steady cadence, not exponential backoff.
	DefaultPollInterval = 2 * time.Second

	// DefaultMaxPollAttempts bounds polling at roughly one minute.
	DefaultMaxPollAttempts = 30
)

// Progress reports per-step execution state to the caller.
type Progress struct {
	CurrentStep int
	TotalSteps  int
	StepName    string
	Status      string
	TxHash      string
	TxLink      string
}

// ProgressFunc receives progress updates during execution.
type ProgressFunc func(Progress)

// Executor executes quotes sequentially. Only one execution may be in
// flight at a time; a concurrent Execute is rejected, not queued.
type Executor struct {
	client       *relay.Client
	registry     *registry.Registry
	log          zerolog.Logger
	pollInterval time.Duration
	maxAttempts  int

	mu       sync.Mutex
	inFlight bool
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPollInterval overrides the status-poll cadence.
func WithPollInterval(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.pollInterval = d }
}

// WithMaxPollAttempts overrides the polling budget.
func WithMaxPollAttempts(n int) ExecutorOption {
	return func(e *Executor) { e.maxAttempts = n }
}

// New creates an executor over the given aggregator client.
func New(client *relay.Client, reg *registry.Registry, log zerolog.Logger, opts ...ExecutorOption) *Executor {
	e := &Executor{
		client:       client,
		registry:     reg,
		log:          log,
		pollInterval: DefaultPollInterval,
		maxAttempts:  DefaultMaxPollAttempts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs the quote's steps in order against the wallet. It returns
// relay.ErrExecutionInFlight when another execution is already running;
// every other outcome is reported through the ExecutionResult.
func (e *Executor) Execute(ctx context.Context, quote *types.Quote, w wallet.Wallet, onProgress ProgressFunc) (*types.ExecutionResult, error) {
	e.mu.Lock()
	if e.inFlight {
		e.mu.Unlock()
		return nil, relay.ErrExecutionInFlight
	}
	e.inFlight = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inFlight = false
		e.mu.Unlock()
	}()

	result := &types.ExecutionResult{}

	for i, step := range quote.Steps {
		if len(step.Items) == 0 {
			continue
		}

		report(onProgress, Progress{
			CurrentStep: i + 1,
			TotalSteps:  len(quote.Steps),
			StepName:    stepName(step, i),
			Status:      "executing",
		})

		if err := e.executeStep(ctx, step, w, result); err != nil {
			e.fail(result, err)
			report(onProgress, Progress{
				CurrentStep: i + 1,
				TotalSteps:  len(quote.Steps),
				StepName:    stepName(step, i),
				Status:      "failed",
			})
			return result, nil
		}

		report(onProgress, Progress{
			CurrentStep: i + 1,
			TotalSteps:  len(quote.Steps),
			StepName:    stepName(step, i),
			Status:      "completed",
			TxHash:      result.TxHash,
			TxLink:      result.ExplorerLink,
		})
	}

	result.Success = true
	return result, nil
}

// executeStep processes one step's items in order, skipping items already
// marked complete.
func (e *Executor) executeStep(ctx context.Context, step types.Step, w wallet.Wallet, result *types.ExecutionResult) error {
	for idx := range step.Items {
		item := &step.Items[idx]
		if item.Status != types.ItemIncomplete {
			continue
		}

		switch step.Kind {
		case types.StepTransaction:
			if err := e.executeTransactionItem(ctx, step, item, w, result); err != nil {
				return err
			}
		case types.StepSignature:
			if err := e.executeSignatureItem(ctx, item, w); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown step kind %q", step.Kind)
		}

		item.Status = types.ItemComplete
	}
	return nil
}

func (e *Executor) executeTransactionItem(ctx context.Context, step types.Step, item *types.StepItem, w wallet.Wallet, result *types.ExecutionResult) error {
	if item.Data.To == "" {
		return fmt.Errorf("transaction item missing destination address")
	}

	txHash, err := w.SendTransaction(ctx, item.Data)
	if err != nil {
		return classifyWalletError(err)
	}

	chainID := item.Data.ChainID
	if chainID == 0 {
		chainID = step.ChainID
	}

	result.TxHash = txHash
	result.ExplorerLink = e.registry.ExplorerTxURL(chainID, txHash)

	e.log.Info().Str("txHash", txHash).Int64("chainId", chainID).Msg("transaction submitted")

	// A failed confirmation wait is logged, not fatal: the aggregator's
	// status check below is the authoritative completion signal.
	if waiter, ok := w.(wallet.ConfirmationWaiter); ok {
		if err := waiter.WaitMined(ctx, txHash); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.log.Warn().Err(err).Str("txHash", txHash).Msg("confirmation wait failed, proceeding to status check")
		}
	}

	if item.Check != nil {
		if err := e.pollStatus(ctx, item.Check); err != nil {
			return err
		}
	}

	return nil
}

func (e *Executor) executeSignatureItem(ctx context.Context, item *types.StepItem, w wallet.Wallet) error {
	if item.Signature == nil {
		return nil
	}

	sig, err := w.SignMessage(ctx, item.Signature.Message)
	if err != nil {
		return classifyWalletError(err)
	}

	// Not retried; a rejected signature submission fails the execution.
	if err := e.client.SubmitSignature(ctx, item.Signature.Endpoint, sig); err != nil {
		return fmt.Errorf("submit signature: %w", err)
	}

	return nil
}

// pollStatus drives the check-endpoint state machine: waiting and pending
// keep polling, success/failure/refund are terminal, anything else is
// treated as transient until the attempt budget runs out.
func (e *Executor) pollStatus(ctx context.Context, check *types.Check) error {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		status, err := e.client.CheckStatus(ctx, check)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.log.Warn().Err(err).Int("attempt", attempt).Msg("status check failed")
		} else {
			e.log.Debug().Str("status", string(status.Status)).Int("attempt", attempt).Msg("status check")

			switch status.Status {
			case types.StatusSuccess:
				return nil
			case types.StatusFailure:
				return relay.ErrBridgeFailure
			case types.StatusRefund:
				return relay.ErrBridgeRefund
			case types.StatusWaiting, types.StatusPending:
				// deposit not yet observed / fill in progress
			default:
				e.log.Debug().Str("status", string(status.Status)).Msg("unknown status, continuing")
			}
		}

		if attempt == e.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return relay.ErrStatusTimeout
}

// fail folds an execution error into the result, keeping the distinctions
// callers present differently: user rejection, refund, and outcome-unknown
// timeouts are not generic failures.
func (e *Executor) fail(result *types.ExecutionResult, err error) {
	result.Success = false
	result.Error = err.Error()

	switch {
	case errors.Is(err, relay.ErrUserRejected):
		result.UserRejected = true
	case errors.Is(err, relay.ErrBridgeRefund):
		result.Refunded = true
	case errors.Is(err, relay.ErrStatusTimeout):
		result.TimedOut = true
	}
}

// classifyWalletError maps provider error text onto the error taxonomy.
// Rejection codes vary by wallet, so this is a pattern match.
func classifyWalletError(err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "user denied"),
		strings.Contains(msg, "user rejected"),
		strings.Contains(msg, "user cancelled"),
		strings.Contains(msg, "rejected by user"),
		strings.Contains(msg, "code 4001"):
		return fmt.Errorf("%w: %v", relay.ErrUserRejected, err)

	case strings.Contains(msg, "insufficient funds"),
		strings.Contains(msg, "insufficient balance"),
		strings.Contains(msg, "exceeds balance"):
		return fmt.Errorf("%w: %v", relay.ErrInsufficientFunds, err)
	}

	return fmt.Errorf("transaction submission failed: %w", err)
}

func stepName(step types.Step, index int) string {
	if step.Description != "" {
		return step.Description
	}
	if step.Kind == types.StepSignature {
		return "Sign Message"
	}
	// 095ea7b3 is the ERC-20 approve selector.
	for _, item := range step.Items {
		if strings.Contains(item.Data.Data, "095ea7b3") {
			return "Token Approval"
		}
	}
	if index == 0 {
		return "Initiate Bridge"
	}
	return fmt.Sprintf("Step %d", index+1)
}

func report(fn ProgressFunc, p Progress) {
	if fn != nil {
		fn(p)
	}
}
