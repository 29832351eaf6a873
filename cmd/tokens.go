package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"relay-bridge/config"
	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/types"
)

var (
	filterChain  string
	filterSymbol string
)

var tokensCmd = &cobra.Command{
	Use:     "list-tokens",
	Aliases: []string{"tokens"},
	Short:   "List supported tokens for the configured environment",
	Long: `List the tokens in the active environment table, optionally
filtered by chain or symbol.

Examples:
  relay-bridge list-tokens
  relay-bridge list-tokens --chain base-sepolia
  relay-bridge list-tokens --symbol USDC`,
	Run: runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterChain, "chain", "", "Filter by chain id")
	tokensCmd.Flags().StringVar(&filterSymbol, "symbol", "", "Filter by token symbol")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	reg := registry.ForEnvironment(types.Environment(cfg.Environment))

	var tokens []types.TokenDescriptor
	if filterChain != "" {
		chain, found := reg.ChainByID(filterChain)
		if !found {
			printError(fmt.Errorf("unknown chain: %s", filterChain))
			os.Exit(1)
		}
		tokens = reg.TokensOnChain(chain.ChainID)
	} else {
		tokens = reg.Tokens()
	}

	if filterSymbol != "" {
		symbol := strings.ToUpper(filterSymbol)
		var filtered []types.TokenDescriptor
		for _, t := range tokens {
			if t.Symbol == symbol {
				filtered = append(filtered, t)
			}
		}
		tokens = filtered
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(tokens, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("            SUPPORTED TOKENS (%s)", cfg.Environment)
	fmt.Println(strings.Repeat("=", 70) + "\n")

	for _, token := range tokens {
		fmt.Printf("  %-6s %s (%d decimals)\n", color.CyanString(token.Symbol), token.Name, token.Decimals)

		chainIDs := make([]int64, 0, len(token.AddressByChain))
		for chainID := range token.AddressByChain {
			chainIDs = append(chainIDs, chainID)
		}
		sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

		for _, chainID := range chainIDs {
			name := fmt.Sprintf("chain %d", chainID)
			if chain, found := reg.ChainByChainID(chainID); found {
				name = chain.ID
			}
			fmt.Printf("         %-20s %s\n", name, color.HiBlackString(token.AddressByChain[chainID]))
		}
		fmt.Println()
	}
}
