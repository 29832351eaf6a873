package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"relay-bridge/config"
	"relay-bridge/pkg/executor"
	"relay-bridge/pkg/quote"
	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/types"
	"relay-bridge/pkg/wallet"
)

var (
	bridgeFromChain string
	bridgeToChain   string
	bridgeRecipient string
	bridgeBuyToken  string
	bridgeNoConfirm bool
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge <amount> <token>",
	Short: "Quote and execute a cross-chain transfer",
	Long: `Request a quote and execute the returned steps with the configured
wallet: submit each transaction, wait for it to be mined, and poll the
aggregator's status endpoint until the transfer reaches a terminal state.

The source chain must be an EVM network with wallet settings configured
(rpc_url and private_key under wallet.networks.<chainId>).

Examples:
  relay-bridge bridge 0.5 ETH --from base-sepolia --to arbitrum-sepolia
  relay-bridge bridge 100 USDC --from base --to solana --recipient <solana-addr>
  relay-bridge bridge 0.5 ETH --from base-sepolia --to op-sepolia --yes`,
	Args: cobra.ExactArgs(2),
	Run:  runBridge,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)

	bridgeCmd.Flags().StringVar(&bridgeFromChain, "from", "", "Source chain id (REQUIRED)")
	bridgeCmd.Flags().StringVar(&bridgeToChain, "to", "", "Destination chain id (REQUIRED)")
	bridgeCmd.Flags().StringVar(&bridgeRecipient, "recipient", "", "Recipient address (required for non-EVM destinations)")
	bridgeCmd.Flags().StringVar(&bridgeBuyToken, "buy-token", "", "Destination token symbol (defaults to the sell token)")
	bridgeCmd.Flags().BoolVarP(&bridgeNoConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runBridge(cmd *cobra.Command, args []string) {
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

	source, found := reg.ChainByID(bridgeFromChain)
	if !found {
		printError(fmt.Errorf("%w: %s", relay.ErrUnsupportedChain, bridgeFromChain))
		os.Exit(1)
	}
	if source.Family != types.FamilyEVM {
		printError(fmt.Errorf("CLI execution requires an EVM source chain, %s is %s", source.ID, source.Family))
		os.Exit(1)
	}

	netCfg, ok := cfg.Wallet.Networks[strconv.FormatInt(source.ChainID, 10)]
	if !ok {
		printError(fmt.Errorf("no wallet configured for chain %d. Add wallet.networks.%d to your config", source.ChainID, source.ChainID))
		os.Exit(1)
	}

	w, err := wallet.NewEVMWallet(netCfg, source.ChainID)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer w.Close()

	req := &types.TransferRequest{
		UserAddress:   w.Address(),
		RecipientAddr: bridgeRecipient,
		SourceChain:   bridgeFromChain,
		TargetChain:   bridgeToChain,
		SellToken:     args[1],
		BuyToken:      bridgeBuyToken,
		Amount:        args[0],
	}

	// Stop polling and waits promptly when the user interrupts.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Requesting quote..."
		s.Start()
	}

	q, err := resolver.Resolve(ctx, req)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if !jsonOutput {
		displayQuote(q, args[0], args[1], bridgeFromChain, bridgeToChain)

		if !bridgeNoConfirm && !confirm("Execute this transfer?") {
			fmt.Println("\nTransfer cancelled.")
			return
		}
	}

	exec := executor.New(client, reg, log)

	var onProgress executor.ProgressFunc
	if !jsonOutput {
		onProgress = func(p executor.Progress) {
			switch p.Status {
			case "executing":
				fmt.Printf("  [%d/%d] %s...\n", p.CurrentStep, p.TotalSteps, p.StepName)
			case "completed":
				color.Green("  [%d/%d] %s done", p.CurrentStep, p.TotalSteps, p.StepName)
			}
		}
	}

	result, err := exec.Execute(ctx, q, w, onProgress)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayResult(result)
	}

	if !result.Success && !result.UserRejected {
		os.Exit(1)
	}
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
