// Package intent parses free-text transfer requests into structured
// intents and keeps per-session conversation context in an explicit,
// caller-owned store.
package intent

import (
	"fmt"
	"regexp"
	"strings"

	"relay-bridge/pkg/types"
)

// Intent is the structured form of a free-text transfer request.
type Intent struct {
	Amount      string `json:"amount"`
	Token       string `json:"token"`
	SourceChain string `json:"sourceChain,omitempty"`
	TargetChain string `json:"targetChain"`
	Recipient   string `json:"recipient,omitempty"`
}

var (
	// "bridge 0.5 ETH from base-sepolia to arbitrum-sepolia"
	fullPattern = regexp.MustCompile(`^(?:BRIDGE |SEND |TRANSFER |SWAP )?(\d+\.?\d*)\s+([A-Z0-9]+)\s+FROM\s+([A-Z0-9-]+)\s+TO\s+([A-Z0-9-]+)(?:\s+FOR\s+(\S+))?$`)

	// "0.5 ETH to arbitrum-sepolia" with the source chain left implicit
	shortPattern = regexp.MustCompile(`^(?:BRIDGE |SEND |TRANSFER |SWAP )?(\d+\.?\d*)\s+([A-Z0-9]+)\s+TO\s+([A-Z0-9-]+)$`)
)

// Parse extracts a transfer intent from free text.
// Examples:
//   - "bridge 0.5 ETH from base-sepolia to arbitrum-sepolia"
//   - "send 100 USDC from base to solana for <address>"
//   - "0.5 ETH to arbitrum-sepolia"
func Parse(text string) (*Intent, error) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	normalized = strings.Join(strings.Fields(normalized), " ")

	if m := fullPattern.FindStringSubmatch(normalized); m != nil {
		intent := &Intent{
			Amount:      m[1],
			Token:       NormalizeTokenSymbol(m[2]),
			SourceChain: strings.ToLower(m[3]),
			TargetChain: strings.ToLower(m[4]),
		}
		if m[5] != "" {
			// Recover the recipient's original casing; addresses are
			// case-sensitive outside the EVM family.
			fields := strings.Fields(strings.TrimSpace(text))
			intent.Recipient = fields[len(fields)-1]
		}
		return intent, nil
	}

	if m := shortPattern.FindStringSubmatch(normalized); m != nil {
		return &Intent{
			Amount:      m[1],
			Token:       NormalizeTokenSymbol(m[2]),
			TargetChain: strings.ToLower(m[3]),
		}, nil
	}

	return nil, fmt.Errorf("could not parse transfer request. Expected: 'bridge <amount> <token> from <chain> to <chain>'")
}

// Validate checks that an intent has everything a quote request needs.
func Validate(intent *Intent) error {
	if intent.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if intent.Token == "" {
		return fmt.Errorf("token is required")
	}
	if intent.TargetChain == "" {
		return fmt.Errorf("target chain is required")
	}
	return nil
}

// NormalizeTokenSymbol maps common aliases to canonical symbols.
func NormalizeTokenSymbol(symbol string) string {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))

	aliases := map[string]string{
		"WBTC": "BTC",
		"WETH": "ETH",
		"WSOL": "SOL",
	}

	if normalized, exists := aliases[symbol]; exists {
		return normalized
	}

	return symbol
}

// NormalizeChain maps loose chain names onto the environment's chain ids,
// e.g. "base" becomes "base-sepolia" on testnet. Unknown names are returned
// unchanged so the registry lookup can decide.
func NormalizeChain(name string, env types.Environment) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	testnet := env == types.Testnet

	pick := func(t, m string) string {
		if testnet {
			return t
		}
		return m
	}

	switch normalized {
	case "ethereum", "mainnet", "eth":
		return pick("sepolia", "ethereum")
	case "base":
		return pick("base-sepolia", "base")
	case "arbitrum", "arb":
		return pick("arbitrum-sepolia", "arbitrum")
	case "optimism", "op":
		return pick("op-sepolia", "optimism")
	case "polygon", "matic":
		return pick("polygon-amoy", "polygon")
	case "solana", "sol":
		return pick("solana-devnet", "solana")
	case "eclipse":
		return "eclipse-testnet"
	case "bitcoin", "btc":
		return "bitcoin-testnet4"
	}

	return normalized
}
