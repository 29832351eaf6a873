package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"relay-bridge/config"
	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/types"
)

var chainsCmd = &cobra.Command{
	Use:     "list-chains",
	Aliases: []string{"chains"},
	Short:   "List supported chains for the configured environment",
	Run:     runListChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}

func runListChains(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	reg := registry.ForEnvironment(types.Environment(cfg.Environment))

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(reg.Chains(), "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("            SUPPORTED CHAINS (%s)", cfg.Environment)
	fmt.Println(strings.Repeat("=", 70) + "\n")

	for _, chain := range reg.Chains() {
		fmt.Printf("  %-20s %-22s chain id %d (%s)\n",
			color.CyanString(chain.ID), chain.Name, chain.ChainID, chain.Family)
	}
	fmt.Println()
}
