package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"relay-bridge/config"
	"relay-bridge/pkg/quote"
	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/types"
)

var (
	quoteFromChain string
	quoteToChain   string
	quoteUser      string
	quoteRecipient string
	quoteBuyToken  string
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <token>",
	Short: "Request a transfer quote without executing it",
	Long: `Request a quote for a cross-chain transfer. Nothing is signed or
submitted; the quote shows the steps execution would perform.

Examples:
  relay-bridge quote 0.5 ETH --from base-sepolia --to arbitrum-sepolia --user 0x123...
  relay-bridge quote 100 USDC --from base --to solana --user 0x123... --recipient <solana-addr>`,
	Args: cobra.ExactArgs(2),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&quoteFromChain, "from", "", "Source chain id (REQUIRED)")
	quoteCmd.Flags().StringVar(&quoteToChain, "to", "", "Destination chain id (REQUIRED)")
	quoteCmd.Flags().StringVar(&quoteUser, "user", "", "Sender address (REQUIRED)")
	quoteCmd.Flags().StringVar(&quoteRecipient, "recipient", "", "Recipient address (required for non-EVM destinations)")
	quoteCmd.Flags().StringVar(&quoteBuyToken, "buy-token", "", "Destination token symbol (defaults to the sell token)")
}

func runQuote(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	log := newLogger(cmd)
	reg := registry.ForEnvironment(types.Environment(cfg.Environment))
	client := relay.NewClient(cfg.BaseURL(), relay.WithLogger(log))
	resolver := quote.NewResolver(reg, client, log)

	req := &types.TransferRequest{
		UserAddress:   quoteUser,
		RecipientAddr: quoteRecipient,
		SourceChain:   quoteFromChain,
		TargetChain:   quoteToChain,
		SellToken:     args[1],
		BuyToken:      quoteBuyToken,
		Amount:        args[0],
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Requesting quote..."
		s.Start()
	}

	q, err := resolver.Resolve(context.Background(), req)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(q, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayQuote(q, args[0], args[1], quoteFromChain, quoteToChain)
}
