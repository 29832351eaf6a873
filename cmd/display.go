package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"relay-bridge/pkg/types"
)

// Indicative display-only rates; quotes carry the authoritative pricing.
var indicativeUSDRates = map[string]string{
	"ETH":   "3200",
	"WETH":  "3200",
	"SOL":   "38.5",
	"WSOL":  "38.5",
	"BTC":   "49200",
	"MATIC": "2.56",
	"USDC":  "1",
	"USDT":  "1",
}

// estimateUSD returns an indicative USD value for display, or "" when no
// rate is known.
func estimateUSD(amount, token string) string {
	rate, ok := indicativeUSDRates[strings.ToUpper(token)]
	if !ok {
		return ""
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return ""
	}
	r, _ := decimal.NewFromString(rate)
	return a.Mul(r).StringFixed(2)
}

func displayQuote(q *types.Quote, amount, token, fromChain, toChain string) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                         TRANSFER QUOTE")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Sending:        %s %s on %s\n", amount, token, fromChain)
	fmt.Printf("  Receiving on:   %s\n", toChain)
	if usd := estimateUSD(amount, token); usd != "" {
		fmt.Printf("  Approx. value:  $%s (indicative)\n", usd)
	}
	if q.RequestID != "" {
		fmt.Printf("  Request ID:     %s\n", color.CyanString(q.RequestID))
	}
	if q.Rate != "" {
		fmt.Printf("  Rate:           %s\n", q.Rate)
	}
	if q.TimeEstimateMinutes > 0 {
		fmt.Printf("  Est. time:      %.0f min\n", q.TimeEstimateMinutes)
	}
	if q.Fees.GasUSD != "" || q.Fees.RelayerUSD != "" {
		fmt.Printf("  Fees:           gas $%s, relayer $%s\n", q.Fees.GasUSD, q.Fees.RelayerUSD)
	}

	fmt.Printf("\n  Steps:\n")
	for i, step := range q.Steps {
		name := step.Description
		if name == "" {
			name = string(step.Kind)
		}
		incomplete := 0
		for _, item := range step.Items {
			if item.Status == types.ItemIncomplete {
				incomplete++
			}
		}
		fmt.Printf("    %d. %s (chain %d, %d pending item(s))\n", i+1, name, step.ChainID, incomplete)
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func displayResult(result *types.ExecutionResult) {
	switch {
	case result.Success:
		printSuccess(color.GreenString("Transfer complete!"))
		if result.TxHash != "" {
			fmt.Printf("  Tx:       %s\n", color.HiBlackString(result.TxHash))
		}
		if result.ExplorerLink != "" {
			fmt.Printf("  Explorer: %s\n\n", result.ExplorerLink)
		}
	case result.UserRejected:
		// Not an alarming failure; the user changed their mind.
		fmt.Println("\nTransfer cancelled.")
	case result.TimedOut:
		color.Yellow("\nStatus polling timed out. The transfer may still complete;")
		color.Yellow("check its status manually before retrying.")
		if result.TxHash != "" {
			fmt.Printf("  Tx: %s\n", result.TxHash)
		}
	case result.Refunded:
		color.Yellow("\nThe bridge could not complete and your funds were refunded.")
	default:
		printError(fmt.Errorf("%s", result.Error))
	}
}
