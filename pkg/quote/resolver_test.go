package quote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/types"
)

const (
	testUser      = "0xa2791e44234Dc9C96F260aD15fdD09Fe9B597FE1"
	testSolanaKey = "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU"
)

func testResolver(t *testing.T, env types.Environment, baseURL string) *Resolver {
	t.Helper()
	return NewResolver(registry.ForEnvironment(env), relay.NewClient(baseURL), zerolog.Nop())
}

func validRequest() *types.TransferRequest {
	return &types.TransferRequest{
		UserAddress: testUser,
		SourceChain: "base-sepolia",
		TargetChain: "arbitrum-sepolia",
		SellToken:   "ETH",
		Amount:      "0.5",
	}
}

func TestBuildRequestScalesAmountExactly(t *testing.T) {
	r := testResolver(t, types.Testnet, "http://unused")

	tests := []struct {
		name   string
		token  string
		amount string
		want   string
	}{
		{"half eth", "ETH", "0.5", "500000000000000000"},
		{"full 18 fractional digits", "ETH", "1.234567890123456789", "1234567890123456789"},
		{"truncates beyond decimals", "ETH", "0.1234567890123456789", "123456789012345678"},
		{"usdc six decimals", "USDC", "100.25", "100250000"},
		{"integer amount", "ETH", "2", "2000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.SellToken = tt.token
			req.BuyToken = tt.token
			req.Amount = tt.amount

			wire, err := r.BuildRequest(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, wire.Amount)
		})
	}
}

func TestBuildRequestWireShape(t *testing.T) {
	r := testResolver(t, types.Testnet, "http://unused")

	wire, err := r.BuildRequest(validRequest())
	require.NoError(t, err)

	assert.Equal(t, testUser, wire.User)
	assert.Equal(t, int64(84532), wire.OriginChainID)
	assert.Equal(t, int64(421614), wire.DestinationChainID)
	assert.Equal(t, "0x0000000000000000000000000000000000000000", wire.OriginCurrency)
	assert.Equal(t, "0x0000000000000000000000000000000000000000", wire.DestinationCurrency)
	assert.Equal(t, "EXACT_INPUT", wire.TradeType)
	assert.Empty(t, wire.Recipient)
}

func TestBuildRequestMissingFields(t *testing.T) {
	r := testResolver(t, types.Testnet, "http://unused")

	tests := []struct {
		name   string
		mutate func(*types.TransferRequest)
		field  string
	}{
		{"no source chain", func(r *types.TransferRequest) { r.SourceChain = "" }, "sourceChain"},
		{"no target chain", func(r *types.TransferRequest) { r.TargetChain = "" }, "targetChain"},
		{"no token", func(r *types.TransferRequest) { r.SellToken = "" }, "token"},
		{"no amount", func(r *types.TransferRequest) { r.Amount = "" }, "amount"},
		{"no user", func(r *types.TransferRequest) { r.UserAddress = "" }, "userAddress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := r.BuildRequest(req)
			require.ErrorIs(t, err, relay.ErrMissingField)

			var fieldErr *relay.MissingFieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestBuildRequestRejectsEveryCrossEnvironmentPair(t *testing.T) {
	r := testResolver(t, types.Testnet, "http://unused")

	testnetChains := registry.ForEnvironment(types.Testnet).Chains()
	mainnetChains := registry.ForEnvironment(types.Mainnet).Chains()

	for _, src := range testnetChains {
		for _, dst := range mainnetChains {
			req := validRequest()
			req.SourceChain = src.ID
			req.TargetChain = dst.ID

			_, err := r.BuildRequest(req)
			assert.ErrorIs(t, err, relay.ErrCrossEnvironment, "%s -> %s", src.ID, dst.ID)

			// Reversed direction as well.
			req.SourceChain = dst.ID
			req.TargetChain = src.ID
			_, err = r.BuildRequest(req)
			assert.ErrorIs(t, err, relay.ErrCrossEnvironment, "%s -> %s", dst.ID, src.ID)
		}
	}
}

func TestBuildRequestUnknownChain(t *testing.T) {
	r := testResolver(t, types.Testnet, "http://unused")

	req := validRequest()
	req.TargetChain = "not-a-chain"

	_, err := r.BuildRequest(req)
	require.ErrorIs(t, err, relay.ErrUnsupportedChain)
	assert.NotErrorIs(t, err, relay.ErrCrossEnvironment)
}

func TestResolveUnsupportedTokenMakesNoNetworkCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := testResolver(t, types.Testnet, srv.URL)

	req := validRequest()
	// USDT has no address on any EVM testnet chain.
	req.SellToken = "USDT"

	_, err := r.Resolve(context.Background(), req)
	require.ErrorIs(t, err, relay.ErrUnsupportedToken)
	assert.Zero(t, calls.Load(), "validation must reject before any HTTP call")
}

func TestBuildRequestRecipientChecks(t *testing.T) {
	r := testResolver(t, types.Testnet, "http://unused")

	t.Run("svm destination requires recipient", func(t *testing.T) {
		req := validRequest()
		req.TargetChain = "solana-devnet"
		req.SellToken = "ETH"
		req.BuyToken = "USDC"

		_, err := r.BuildRequest(req)
		require.ErrorIs(t, err, relay.ErrRecipientRequired)
	})

	t.Run("svm destination rejects malformed recipient", func(t *testing.T) {
		req := validRequest()
		req.TargetChain = "solana-devnet"
		req.BuyToken = "USDC"
		req.RecipientAddr = "0xnot-base58"

		_, err := r.BuildRequest(req)
		require.ErrorIs(t, err, relay.ErrInvalidRecipient)
	})

	t.Run("svm destination accepts base58 recipient", func(t *testing.T) {
		req := validRequest()
		req.TargetChain = "solana-devnet"
		req.BuyToken = "USDC"
		req.RecipientAddr = testSolanaKey

		wire, err := r.BuildRequest(req)
		require.NoError(t, err)
		assert.Equal(t, testSolanaKey, wire.Recipient)
	})

	t.Run("evm destination rejects malformed recipient", func(t *testing.T) {
		req := validRequest()
		req.RecipientAddr = "nothex"

		_, err := r.BuildRequest(req)
		require.ErrorIs(t, err, relay.ErrInvalidRecipient)
	})
}

func TestBuildRequestRejectsNonPositiveAmount(t *testing.T) {
	r := testResolver(t, types.Testnet, "http://unused")

	for _, amount := range []string{"0", "-1", "abc"} {
		req := validRequest()
		req.Amount = amount

		_, err := r.BuildRequest(req)
		assert.Error(t, err, "amount %q", amount)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	canned := `{
		"rate": "0.998",
		"timeEstimate": 2,
		"fees": {"gasUsd": "0.12", "relayerUsd": "0.30"},
		"steps": [{
			"id": "deposit",
			"action": "deposit",
			"kind": "transaction",
			"chainId": 84532,
			"requestId": "req-1",
			"items": [{
				"status": "incomplete",
				"data": {
					"to": "0x00000000000000000000000000000000000000aa",
					"data": "0xdeadbeef",
					"value": "500000000000000000",
					"chainId": 84532,
					"maxFeePerGas": "1000000000",
					"maxPriorityFeePerGas": "100000000"
				},
				"check": {"endpoint": "/intents/status?requestId=req-1", "method": "GET"}
			}]
		}]
	}`

	var received types.QuoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/quote", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(canned))
	}))
	defer srv.Close()

	r := testResolver(t, types.Testnet, srv.URL)

	q, err := r.Resolve(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "500000000000000000", received.Amount)
	assert.Equal(t, "EXACT_INPUT", received.TradeType)

	// Every field the executor reads must survive the round trip.
	require.Len(t, q.Steps, 1)
	require.Len(t, q.Steps[0].Items, 1)
	item := q.Steps[0].Items[0]

	assert.Equal(t, "req-1", q.RequestID)
	assert.Equal(t, types.StepTransaction, q.Steps[0].Kind)
	assert.Equal(t, types.ItemIncomplete, item.Status)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", item.Data.To)
	assert.Equal(t, "500000000000000000", item.Data.Value)
	assert.Equal(t, int64(84532), item.Data.ChainID)
	require.NotNil(t, item.Check)
	assert.Equal(t, "/intents/status?requestId=req-1", item.Check.Endpoint)
}

func TestResolveSurfacesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "amount too low"}`))
	}))
	defer srv.Close()

	r := testResolver(t, types.Testnet, srv.URL)

	_, err := r.Resolve(context.Background(), validRequest())
	require.Error(t, err)

	var providerErr *relay.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusUnprocessableEntity, providerErr.Status)
	assert.Equal(t, "amount too low", providerErr.Body)
}
