package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/types"
	"relay-bridge/pkg/wallet"
)

var (
	_ wallet.Wallet             = (*fakeWallet)(nil)
	_ wallet.ConfirmationWaiter = (*failingWaiter)(nil)
)

// fakeWallet records every capability call in order.
type fakeWallet struct {
	mu      sync.Mutex
	calls   []string
	sent    []types.TransactionPayload
	sendErr error
	signErr error
	block   chan struct{}
}

func (f *fakeWallet) Address() string { return "0xfake" }

func (f *fakeWallet) SendTransaction(_ context.Context, payload types.TransactionPayload) (string, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, payload)
	f.calls = append(f.calls, "send:"+payload.To)
	return fmt.Sprintf("0xhash%d", len(f.sent)), nil
}

func (f *fakeWallet) SignMessage(_ context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signErr != nil {
		return "", f.signErr
	}
	f.calls = append(f.calls, "sign:"+message)
	return "0xsignature", nil
}

func (f *fakeWallet) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// failingWaiter always fails the confirmation wait; execution must still
// proceed to the status check.
type failingWaiter struct {
	fakeWallet
	waited int
}

func (f *failingWaiter) WaitMined(context.Context, string) error {
	f.waited++
	return errors.New("receipt lookup timed out")
}

// statusScript serves a scripted sequence of check statuses per request id,
// repeating the last entry, and records the order of every request.
type statusScript struct {
	mu       sync.Mutex
	scripts  map[string][]types.CheckStatus
	served   map[string]int
	requests []string
}

func newStatusScript() *statusScript {
	return &statusScript{scripts: make(map[string][]types.CheckStatus), served: make(map[string]int)}
}

func (s *statusScript) set(id string, seq ...types.CheckStatus) { s.scripts[id] = seq }

func (s *statusScript) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	id := r.URL.Query().Get("requestId")
	s.requests = append(s.requests, "check:"+id)
	seq := s.scripts[id]
	idx := s.served[id]
	if idx >= len(seq) {
		idx = len(seq) - 1
	}
	s.served[id]++
	status := seq[idx]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.CheckResult{Status: status})
}

func (s *statusScript) count(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.served[id]
}

func testExecutor(t *testing.T, handler http.Handler) (*Executor, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	exec := New(
		relay.NewClient(srv.URL),
		registry.ForEnvironment(types.Testnet),
		zerolog.Nop(),
		WithPollInterval(time.Millisecond),
		WithMaxPollAttempts(5),
	)
	return exec, srv
}

func txStep(id, requestID string, items ...types.StepItem) types.Step {
	return types.Step{ID: id, Kind: types.StepTransaction, ChainID: 84532, RequestID: requestID, Items: items}
}

func txItem(to, requestID string) types.StepItem {
	item := types.StepItem{
		Status: types.ItemIncomplete,
		Data:   types.TransactionPayload{To: to, Value: "1000", ChainID: 84532},
	}
	if requestID != "" {
		item.Check = &types.Check{Endpoint: "/intents/status?requestId=" + requestID}
	}
	return item
}

func TestExecutePollsUntilSuccess(t *testing.T) {
	script := newStatusScript()
	script.set("a", types.StatusWaiting, types.StatusPending, types.StatusPending, types.StatusSuccess)

	exec, _ := testExecutor(t, script)
	w := &fakeWallet{}

	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "a", txItem("0xaa", "a"))}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "0xhash1", result.TxHash)
	assert.Equal(t, "https://sepolia.basescan.org/tx/0xhash1", result.ExplorerLink)
	// Polling must stop exactly at the success response.
	assert.Equal(t, 4, script.count("a"))
}

func TestExecuteTimeoutIsNotFailure(t *testing.T) {
	script := newStatusScript()
	script.set("a", types.StatusWaiting)

	exec, _ := testExecutor(t, script)
	w := &fakeWallet{}

	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "a", txItem("0xaa", "a"))}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.True(t, result.TimedOut)
	assert.False(t, result.Refunded)
	assert.Contains(t, result.Error, "check the transfer manually")
	assert.Equal(t, 5, script.count("a"))
}

func TestExecuteRefundDistinctFromFailure(t *testing.T) {
	script := newStatusScript()
	script.set("a", types.StatusPending, types.StatusRefund)

	exec, _ := testExecutor(t, script)
	w := &fakeWallet{}

	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "a", txItem("0xaa", "a"))}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.True(t, result.Refunded)
	assert.False(t, result.TimedOut)
	assert.False(t, result.UserRejected)
}

func TestExecuteBridgeFailure(t *testing.T) {
	script := newStatusScript()
	script.set("a", types.StatusFailure)

	exec, _ := testExecutor(t, script)
	w := &fakeWallet{}

	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "a", txItem("0xaa", "a"))}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.False(t, result.Refunded)
	assert.False(t, result.TimedOut)
	assert.False(t, result.UserRejected)
}

func TestExecuteUserRejection(t *testing.T) {
	exec, _ := testExecutor(t, newStatusScript())
	w := &fakeWallet{sendErr: errors.New("MetaMask Tx Signature: User denied transaction signature")}

	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "", txItem("0xaa", ""))}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.True(t, result.UserRejected)
	assert.False(t, result.Refunded)
	assert.False(t, result.TimedOut)
}

func TestExecuteInsufficientFunds(t *testing.T) {
	exec, _ := testExecutor(t, newStatusScript())
	w := &fakeWallet{sendErr: errors.New("insufficient funds for gas * price + value")}

	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "", txItem("0xaa", ""))}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.False(t, result.UserRejected)
	assert.Contains(t, result.Error, "insufficient funds")
}

func TestExecuteStepOrdering(t *testing.T) {
	script := newStatusScript()
	script.set("s1", types.StatusWaiting, types.StatusSuccess)
	script.set("s2", types.StatusSuccess)

	exec, _ := testExecutor(t, script)
	w := &fakeWallet{}

	quote := &types.Quote{Steps: []types.Step{
		txStep("deposit", "s1", txItem("0x01", "s1")),
		txStep("fill", "s2", txItem("0x02", "s2")),
	}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	// Step 2 must not be submitted before step 1 completes its polling.
	assert.Equal(t, []string{"send:0x01", "send:0x02"}, w.callLog())
	script.mu.Lock()
	defer script.mu.Unlock()
	assert.Equal(t, []string{"check:s1", "check:s1", "check:s2"}, script.requests)
}

func TestExecuteSkipsCompleteItems(t *testing.T) {
	exec, _ := testExecutor(t, newStatusScript())
	w := &fakeWallet{}

	step := txStep("deposit", "",
		types.StepItem{Status: types.ItemComplete, Data: types.TransactionPayload{To: "0x01"}},
		txItem("0x02", ""),
	)
	quote := &types.Quote{Steps: []types.Step{step}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"send:0x02"}, w.callLog())
}

func TestExecuteProceedsAfterFailedConfirmationWait(t *testing.T) {
	script := newStatusScript()
	script.set("a", types.StatusSuccess)

	exec, _ := testExecutor(t, script)
	w := &failingWaiter{}

	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "a", txItem("0xaa", "a"))}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, w.waited)
	assert.Equal(t, 1, script.count("a"))
}

func TestExecuteSignatureStep(t *testing.T) {
	var posted struct {
		Signature string `json:"signature"`
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/execute/permits", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusOK)
	})

	exec, _ := testExecutor(t, mux)
	w := &fakeWallet{}

	quote := &types.Quote{Steps: []types.Step{{
		ID:      "permit",
		Kind:    types.StepSignature,
		ChainID: 84532,
		Items: []types.StepItem{{
			Status:    types.ItemIncomplete,
			Signature: &types.SignatureData{Message: "permit me", Endpoint: "/execute/permits"},
		}},
	}}}

	result, err := exec.Execute(context.Background(), quote, w, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"sign:permit me"}, w.callLog())
	assert.Equal(t, "0xsignature", posted.Signature)
}

func TestExecuteRejectsConcurrentExecution(t *testing.T) {
	exec, _ := testExecutor(t, newStatusScript())

	blocked := &fakeWallet{block: make(chan struct{})}
	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "", txItem("0xaa", ""))}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = exec.Execute(context.Background(), quote, blocked, nil)
	}()

	// Wait for the first execution to take the in-flight slot.
	require.Eventually(t, func() bool {
		_, err := exec.Execute(context.Background(), quote, &fakeWallet{}, nil)
		return errors.Is(err, relay.ErrExecutionInFlight)
	}, time.Second, 5*time.Millisecond)

	close(blocked.block)
	<-done

	// After the first finishes, a new execution is accepted again.
	result, err := exec.Execute(context.Background(), quote, &fakeWallet{}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestExecuteCancellationStopsPolling(t *testing.T) {
	script := newStatusScript()
	script.set("a", types.StatusWaiting)

	srv := httptest.NewServer(script)
	t.Cleanup(srv.Close)

	exec := New(
		relay.NewClient(srv.URL),
		registry.ForEnvironment(types.Testnet),
		zerolog.Nop(),
		WithPollInterval(50*time.Millisecond),
		WithMaxPollAttempts(1000),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(120 * time.Millisecond)
		cancel()
	}()

	quote := &types.Quote{Steps: []types.Step{txStep("deposit", "a", txItem("0xaa", "a"))}}

	result, err := exec.Execute(ctx, quote, &fakeWallet{}, nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Less(t, script.count("a"), 10, "polling must stop promptly on cancellation")
}
