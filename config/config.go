package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// WalletNetwork holds signing settings for one EVM network.
type WalletNetwork struct {
	RPCUrl     string  `mapstructure:"rpc_url"`
	PrivateKey string  `mapstructure:"private_key"`
	GasLimit   *uint64 `mapstructure:"gas_limit"`
}

// WalletConfig holds per-network wallet settings keyed by chain id string.
type WalletConfig struct {
	Networks map[string]WalletNetwork `mapstructure:"networks"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Listen         string   `mapstructure:"listen"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestsPerMin int      `mapstructure:"requests_per_min"`
}

// Config holds the application configuration
type Config struct {
	Environment    string       `mapstructure:"environment"`
	TestnetBaseURL string       `mapstructure:"testnet_base_url"`
	MainnetBaseURL string       `mapstructure:"mainnet_base_url"`
	Wallet         WalletConfig `mapstructure:"wallet"`
	Server         ServerConfig `mapstructure:"server"`
}

// BaseURL returns the aggregator endpoint for the configured environment.
func (c *Config) BaseURL() string {
	if c.Environment == "mainnet" {
		return c.MainnetBaseURL
	}
	return c.TestnetBaseURL
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".relay-bridge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("environment", "testnet")
	viper.SetDefault("testnet_base_url", "https://api.testnets.relay.link")
	viper.SetDefault("mainnet_base_url", "https://api.relay.link")
	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("server.requests_per_min", 120)

	// Read from environment variables
	viper.SetEnvPrefix("RELAY_BRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Environment != "testnet" && cfg.Environment != "mainnet" {
		return nil, fmt.Errorf("environment must be 'testnet' or 'mainnet', got %q", cfg.Environment)
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
