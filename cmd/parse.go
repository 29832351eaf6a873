package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"relay-bridge/config"
	"relay-bridge/pkg/intent"
	"relay-bridge/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <request...>",
	Short: "Parse a free-text transfer request into a structured intent",
	Long: `Parse a natural-language transfer request and print the structured
intent, with chain names normalized for the configured environment.

Examples:
  relay-bridge parse "bridge 0.5 ETH from base to arbitrum"
  relay-bridge parse send 100 USDC from base to solana`,
	Args: cobra.MinimumNArgs(1),
	Run:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	env := types.Environment(cfg.Environment)

	parsed, err := intent.Parse(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	parsed.SourceChain = intent.NormalizeChain(parsed.SourceChain, env)
	parsed.TargetChain = intent.NormalizeChain(parsed.TargetChain, env)

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(parsed, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Printf("\n  Amount:       %s\n", parsed.Amount)
	fmt.Printf("  Token:        %s\n", color.CyanString(parsed.Token))
	if parsed.SourceChain != "" {
		fmt.Printf("  Source:       %s\n", parsed.SourceChain)
	}
	fmt.Printf("  Target:       %s\n", parsed.TargetChain)
	if parsed.Recipient != "" {
		fmt.Printf("  Recipient:    %s\n", parsed.Recipient)
	}
	fmt.Println()
}
