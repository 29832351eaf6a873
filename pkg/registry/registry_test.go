package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay-bridge/pkg/types"
)

func TestEnvironmentsAreDisjoint(t *testing.T) {
	testnet := ForEnvironment(types.Testnet)
	mainnet := ForEnvironment(types.Mainnet)

	for _, chain := range testnet.Chains() {
		assert.Equal(t, types.Testnet, chain.Environment, chain.ID)
		_, found := mainnet.ChainByID(chain.ID)
		assert.False(t, found, "%s must not appear in the mainnet table", chain.ID)
	}
	for _, chain := range mainnet.Chains() {
		assert.Equal(t, types.Mainnet, chain.Environment, chain.ID)
		_, found := testnet.ChainByID(chain.ID)
		assert.False(t, found, "%s must not appear in the testnet table", chain.ID)
	}
}

func TestChainLookups(t *testing.T) {
	r := ForEnvironment(types.Testnet)

	chain, found := r.ChainByID("  Base-Sepolia ")
	require.True(t, found)
	assert.Equal(t, int64(84532), chain.ChainID)
	assert.Equal(t, types.FamilyEVM, chain.Family)

	chain, found = r.ChainByChainID(1936682084)
	require.True(t, found)
	assert.Equal(t, "solana-devnet", chain.ID)
	assert.Equal(t, types.FamilySVM, chain.Family)

	_, found = r.ChainByID("base")
	assert.False(t, found)
}

func TestTokenOnChain(t *testing.T) {
	r := ForEnvironment(types.Testnet)

	token, addr, ok := r.TokenOnChain("usdc", 84532)
	require.True(t, ok)
	assert.Equal(t, "USDC", token.Symbol)
	assert.Equal(t, int32(6), token.Decimals)
	assert.Equal(t, "0x036cbd53842c5426634e7929541ec2318f3dcf7e", addr)

	// USDT exists in the table but has no EVM testnet deployment.
	_, _, ok = r.TokenOnChain("USDT", 84532)
	assert.False(t, ok)

	_, _, ok = r.TokenOnChain("NOPE", 84532)
	assert.False(t, ok)
}

func TestTokensOnChain(t *testing.T) {
	r := ForEnvironment(types.Testnet)

	symbols := make([]string, 0)
	for _, token := range r.TokensOnChain(1936682084) {
		symbols = append(symbols, token.Symbol)
	}
	assert.ElementsMatch(t, []string{"SOL", "USDC", "USDT", "WSOL"}, symbols)
}

func TestExplorerTxURL(t *testing.T) {
	r := ForEnvironment(types.Testnet)

	assert.Equal(t,
		"https://sepolia.basescan.org/tx/0xabc",
		r.ExplorerTxURL(84532, "0xabc"))

	// Chains without an explorer and empty hashes yield no link.
	assert.Empty(t, r.ExplorerTxURL(1936682084, "0xabc"))
	assert.Empty(t, r.ExplorerTxURL(84532, ""))
	assert.Empty(t, r.ExplorerTxURL(999, "0xabc"))
}
