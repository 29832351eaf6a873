package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relay-bridge",
	Short: "A CLI and API for cross-chain transfers via the Relay aggregator",
	Long: `relay-bridge moves tokens across chains through the Relay bridging
aggregator: request a quote, execute the returned steps with a configured
wallet, and poll each step to completion.

Examples:
  relay-bridge quote 0.5 ETH --from base-sepolia --to arbitrum-sepolia --user 0x123...
  relay-bridge bridge 0.5 ETH --from base-sepolia --to arbitrum-sepolia
  relay-bridge status /intents/status?requestId=abc --watch
  relay-bridge list-chains
  relay-bridge parse "bridge 0.5 ETH from base to arbitrum"
  relay-bridge serve`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

// newLogger builds the logger the library packages use. The CLI itself
// prints with color helpers; structured logs go to stderr.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
