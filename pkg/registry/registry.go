// Package registry holds the static testnet and mainnet tables of chains
// and tokens. The tables are loaded once and read-only; the two
// environments are never mixed within one lookup.
package registry

import (
	"strings"

	"github.com/samber/lo"

	"relay-bridge/pkg/types"
)

// Registry answers chain and token lookups for one environment table.
type Registry struct {
	env    types.Environment
	chains []types.ChainDescriptor
	tokens []types.TokenDescriptor
}

var (
	testnetRegistry = &Registry{env: types.Testnet, chains: testnetChains, tokens: testnetTokens}
	mainnetRegistry = &Registry{env: types.Mainnet, chains: mainnetChains, tokens: mainnetTokens}
)

// ForEnvironment returns the registry for the given environment table.
func ForEnvironment(env types.Environment) *Registry {
	if env == types.Mainnet {
		return mainnetRegistry
	}
	return testnetRegistry
}

// Environment returns the environment this registry serves.
func (r *Registry) Environment() types.Environment {
	return r.env
}

// Chains returns every chain in this environment table.
func (r *Registry) Chains() []types.ChainDescriptor {
	return r.chains
}

// Tokens returns every token in this environment table.
func (r *Registry) Tokens() []types.TokenDescriptor {
	return r.tokens
}

// ChainByID looks up a chain by its identifier, e.g. "base-sepolia".
func (r *Registry) ChainByID(id string) (types.ChainDescriptor, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	return lo.Find(r.chains, func(c types.ChainDescriptor) bool {
		return c.ID == id
	})
}

// ChainByChainID looks up a chain by its numeric chain id.
func (r *Registry) ChainByChainID(chainID int64) (types.ChainDescriptor, bool) {
	return lo.Find(r.chains, func(c types.ChainDescriptor) bool {
		return c.ChainID == chainID
	})
}

// TokenBySymbol looks up a token by symbol, case-insensitively.
func (r *Registry) TokenBySymbol(symbol string) (types.TokenDescriptor, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	return lo.Find(r.tokens, func(t types.TokenDescriptor) bool {
		return t.Symbol == symbol
	})
}

// TokenOnChain resolves a token symbol on a specific chain and returns its
// address there. ok is false when the token has no deployment on the chain.
func (r *Registry) TokenOnChain(symbol string, chainID int64) (types.TokenDescriptor, string, bool) {
	token, found := r.TokenBySymbol(symbol)
	if !found {
		return types.TokenDescriptor{}, "", false
	}
	addr, ok := token.AddressByChain[chainID]
	if !ok {
		return types.TokenDescriptor{}, "", false
	}
	return token, addr, true
}

// TokensOnChain lists the tokens deployed on the given chain.
func (r *Registry) TokensOnChain(chainID int64) []types.TokenDescriptor {
	return lo.Filter(r.tokens, func(t types.TokenDescriptor, _ int) bool {
		_, ok := t.AddressByChain[chainID]
		return ok
	})
}

// ExplorerTxURL builds a block-explorer link for a transaction hash, or ""
// when the chain has no explorer configured.
func (r *Registry) ExplorerTxURL(chainID int64, txHash string) string {
	chain, found := r.ChainByChainID(chainID)
	if !found || chain.ExplorerURL == "" || txHash == "" {
		return ""
	}
	return chain.ExplorerURL + "/tx/" + txHash
}
