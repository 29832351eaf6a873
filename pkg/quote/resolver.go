// Package quote turns a user-facing transfer request into a validated,
// aggregator-shaped quote request and normalizes the response.
package quote

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/types"
)

// Resolver validates transfer requests against one environment table and
// requests quotes from the aggregator.
type Resolver struct {
	registry *registry.Registry
	client   *relay.Client
	log      zerolog.Logger
}

// NewResolver creates a resolver bound to one environment.
func NewResolver(reg *registry.Registry, client *relay.Client, log zerolog.Logger) *Resolver {
	return &Resolver{registry: reg, client: client, log: log}
}

// Resolve validates the request, scales the amount, and fetches a quote.
// Validation failures are returned before any network call.
func (r *Resolver) Resolve(ctx context.Context, req *types.TransferRequest) (*types.Quote, error) {
	wire, err := r.BuildRequest(req)
	if err != nil {
		return nil, err
	}

	quote, err := r.client.GetQuote(ctx, wire)
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Str("requestId", quote.RequestID).
		Int("steps", len(quote.Steps)).
		Msg("quote resolved")

	return quote, nil
}

// BuildRequest runs the full validation sequence and produces the wire
// request without calling the aggregator.
func (r *Resolver) BuildRequest(req *types.TransferRequest) (*types.QuoteRequest, error) {
	if err := checkRequiredFields(req); err != nil {
		return nil, err
	}

	buyToken := req.BuyToken
	if buyToken == "" {
		buyToken = req.SellToken
	}

	source, target, err := r.resolveChains(req.SourceChain, req.TargetChain)
	if err != nil {
		return nil, err
	}

	sellDesc, sellAddr, ok := r.registry.TokenOnChain(req.SellToken, source.ChainID)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", relay.ErrUnsupportedToken, req.SellToken, source.ID)
	}
	_, buyAddr, ok := r.registry.TokenOnChain(buyToken, target.ChainID)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", relay.ErrUnsupportedToken, buyToken, target.ID)
	}

	recipient, err := checkRecipient(target, req.RecipientAddr)
	if err != nil {
		return nil, err
	}

	amount, err := scaleAmount(req.Amount, sellDesc.Decimals)
	if err != nil {
		return nil, err
	}

	return &types.QuoteRequest{
		User:                req.UserAddress,
		Recipient:           recipient,
		OriginChainID:       source.ChainID,
		DestinationChainID:  target.ChainID,
		OriginCurrency:      sellAddr,
		DestinationCurrency: buyAddr,
		Amount:              amount,
		TradeType:           "EXACT_INPUT",
	}, nil
}

func checkRequiredFields(req *types.TransferRequest) error {
	switch {
	case req.SourceChain == "":
		return &relay.MissingFieldError{Field: "sourceChain"}
	case req.TargetChain == "":
		return &relay.MissingFieldError{Field: "targetChain"}
	case req.SellToken == "":
		return &relay.MissingFieldError{Field: "token"}
	case req.Amount == "":
		return &relay.MissingFieldError{Field: "amount"}
	case req.UserAddress == "":
		return &relay.MissingFieldError{Field: "userAddress"}
	}
	return nil
}

// resolveChains resolves both chain ids within this resolver's environment
// table. A chain that exists only in the other table yields the distinct
// cross-environment error rather than a plain unsupported-chain error.
func (r *Resolver) resolveChains(sourceID, targetID string) (types.ChainDescriptor, types.ChainDescriptor, error) {
	source, srcFound := resolveAnyEnvironment(sourceID)
	target, dstFound := resolveAnyEnvironment(targetID)

	if !srcFound {
		return source, target, fmt.Errorf("%w: %s", relay.ErrUnsupportedChain, sourceID)
	}
	if !dstFound {
		return source, target, fmt.Errorf("%w: %s", relay.ErrUnsupportedChain, targetID)
	}

	if source.Environment != target.Environment {
		return source, target, fmt.Errorf("%w: %s is %s, %s is %s",
			relay.ErrCrossEnvironment, source.ID, source.Environment, target.ID, target.Environment)
	}

	if source.Environment != r.registry.Environment() {
		return source, target, fmt.Errorf("%w: %s is not available in the %s environment",
			relay.ErrUnsupportedChain, source.ID, r.registry.Environment())
	}

	return source, target, nil
}

func resolveAnyEnvironment(chainID string) (types.ChainDescriptor, bool) {
	if chain, found := registry.ForEnvironment(types.Testnet).ChainByID(chainID); found {
		return chain, true
	}
	return registry.ForEnvironment(types.Mainnet).ChainByID(chainID)
}

// checkRecipient enforces the destination family's address format. Non-EVM
// destinations require an explicit recipient; EVM destinations default to
// the sender when none is given.
func checkRecipient(target types.ChainDescriptor, recipient string) (string, error) {
	switch target.Family {
	case types.FamilyEVM:
		if recipient == "" {
			return "", nil
		}
		if !common.IsHexAddress(recipient) {
			return "", fmt.Errorf("%w: %s", relay.ErrInvalidRecipient, recipient)
		}
		return recipient, nil

	case types.FamilySVM:
		if recipient == "" {
			return "", fmt.Errorf("%w: %s", relay.ErrRecipientRequired, target.ID)
		}
		if _, err := solana.PublicKeyFromBase58(recipient); err != nil {
			return "", fmt.Errorf("%w: %s", relay.ErrInvalidRecipient, recipient)
		}
		return recipient, nil

	case types.FamilyBitcoin:
		if recipient == "" {
			return "", fmt.Errorf("%w: %s", relay.ErrRecipientRequired, target.ID)
		}
		// The aggregator validates bitcoin addresses authoritatively; this
		// only rejects strings that cannot be any address encoding.
		if len(recipient) < 26 || len(recipient) > 90 {
			return "", fmt.Errorf("%w: %s", relay.ErrInvalidRecipient, recipient)
		}
		return recipient, nil
	}

	return recipient, nil
}

// scaleAmount converts a human decimal amount to the token's smallest
// integer unit as floor(amount * 10^decimals), exactly. Floating point
// anywhere in this path loses precision on 18-decimal inputs.
func scaleAmount(amount string, decimals int32) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.Sign() <= 0 {
		return "", fmt.Errorf("amount must be positive, got %q", amount)
	}
	return d.Shift(decimals).Floor().BigInt().String(), nil
}
