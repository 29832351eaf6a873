package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"relay-bridge/config"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/types"
)

var (
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status <check-endpoint|request-id>",
	Short: "Check the status of a transfer",
	Long: `Check a transfer's status via the check endpoint returned in its
quote step, or via a bare request id.

Examples:
  relay-bridge status "/intents/status?requestId=abc"
  relay-bridge status abc --watch
  relay-bridge status abc --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates continuously")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	endpoint := args[0]
	if !strings.HasPrefix(endpoint, "/") && !strings.HasPrefix(endpoint, "http") {
		// A bare request id; build the standard check endpoint for it.
		endpoint = "/intents/status?requestId=" + endpoint
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	client := relay.NewClient(cfg.BaseURL(), relay.WithLogger(newLogger(cmd)))
	check := &types.Check{Endpoint: endpoint}

	if watchStatus {
		watchCheckStatus(client, check, jsonOutput)
	} else {
		checkStatusOnce(client, check, jsonOutput)
	}
}

func checkStatusOnce(client *relay.Client, check *types.Check, jsonOutput bool) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking transfer status..."
		s.Start()
	}

	result, err := client.CheckStatus(context.Background(), check)
	if !jsonOutput {
		s.Stop()
	}

	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayCheckResult(result, check.Endpoint)
	}
}

func watchCheckStatus(client *relay.Client, check *types.Check, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	fmt.Printf("\nWatching transfer status (%s)\n", color.CyanString(check.Endpoint))
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	// Check immediately first
	if checkAndDisplay(client, check) {
		return
	}

	for range ticker.C {
		if checkAndDisplay(client, check) {
			return
		}
	}
}

// checkAndDisplay returns true once a terminal status is reached.
func checkAndDisplay(client *relay.Client, check *types.Check) bool {
	result, err := client.CheckStatus(context.Background(), check)
	if err != nil {
		color.Red("Error: %v", err)
		return false
	}

	displayCheckResult(result, check.Endpoint)
	return result.Status.Terminal()
}

func displayCheckResult(result *types.CheckResult, endpoint string) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                       TRANSFER STATUS")
	fmt.Println(strings.Repeat("=", 70))

	fmt.Printf("\n  Endpoint: %s\n", color.CyanString(endpoint))
	fmt.Printf("  Status:   %s\n", coloredCheckStatus(result.Status))

	for _, hash := range result.TxHashes {
		if hash != "" {
			fmt.Printf("  Tx:       %s\n", color.HiBlackString(hash))
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}

func coloredCheckStatus(status types.CheckStatus) string {
	switch status {
	case types.StatusSuccess:
		return color.GreenString(string(status))
	case types.StatusWaiting, types.StatusPending:
		return color.YellowString(string(status))
	case types.StatusFailure:
		return color.RedString(string(status))
	case types.StatusRefund:
		return color.MagentaString(string(status))
	default:
		return string(status)
	}
}
