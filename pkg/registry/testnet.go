package registry

import "relay-bridge/pkg/types"

var testnetChains = []types.ChainDescriptor{
	{ID: "sepolia", Name: "Sepolia", ChainID: 11155111, Environment: types.Testnet, Family: types.FamilyEVM, ExplorerURL: "https://sepolia.etherscan.io"},
	{ID: "base-sepolia", Name: "Base Sepolia", ChainID: 84532, Environment: types.Testnet, Family: types.FamilyEVM, ExplorerURL: "https://sepolia.basescan.org"},
	{ID: "arbitrum-sepolia", Name: "Arbitrum Sepolia", ChainID: 421614, Environment: types.Testnet, Family: types.FamilyEVM, ExplorerURL: "https://sepolia.arbiscan.io"},
	{ID: "op-sepolia", Name: "OP Sepolia", ChainID: 11155420, Environment: types.Testnet, Family: types.FamilyEVM, ExplorerURL: "https://sepolia-optimism.etherscan.io"},
	{ID: "polygon-amoy", Name: "Polygon Amoy", ChainID: 80002, Environment: types.Testnet, Family: types.FamilyEVM, ExplorerURL: "https://www.oklink.com/amoy"},
	{ID: "solana-devnet", Name: "Solana Devnet", ChainID: 1936682084, Environment: types.Testnet, Family: types.FamilySVM},
	{ID: "eclipse-testnet", Name: "Eclipse Testnet", ChainID: 1118190, Environment: types.Testnet, Family: types.FamilySVM},
	{ID: "bitcoin-testnet4", Name: "Bitcoin Testnet 4", ChainID: 9092725, Environment: types.Testnet, Family: types.FamilyBitcoin},
}

var testnetTokens = []types.TokenDescriptor{
	{
		Symbol:   "ETH",
		Name:     "Ethereum",
		Decimals: 18,
		AddressByChain: map[int64]string{
			11155111: "0x0000000000000000000000000000000000000000",
			84532:    "0x0000000000000000000000000000000000000000",
			421614:   "0x0000000000000000000000000000000000000000",
			11155420: "0x0000000000000000000000000000000000000000",
			80002:    "0x0000000000000000000000000000000000000000",
		},
	},
	{
		Symbol:   "WETH",
		Name:     "Wrapped Ether",
		Decimals: 18,
		AddressByChain: map[int64]string{
			11155111: "0xFFf9976782d46Cc05630d1f6EbAb18B2324d6B14",
			84532:    "0x4200000000000000000000000000000000000006",
		},
	},
	{
		Symbol:   "SOL",
		Name:     "Solana",
		Decimals: 9,
		AddressByChain: map[int64]string{
			1936682084: "11111111111111111111111111111111",
			1118190:    "11111111111111111111111111111111",
		},
	},
	{
		Symbol:   "USDC",
		Name:     "USD Coin",
		Decimals: 6,
		AddressByChain: map[int64]string{
			11155111:   "0x1C7D4b196cb0C7b01D743fBc6116a902379c7238",
			84532:      "0x036cbd53842c5426634e7929541ec2318f3dcf7e",
			421614:     "0xAf88d065e77C8cC2239327C5EDb3A432268e5831",
			11155420:   "0x0B2C639c533813f4Aa9D7837cAf62653d097FF85",
			80002:      "0x0000000000000000000000000000000000000000",
			1936682084: "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU",
			1118190:    "11111111111111111111111111111111",
		},
	},
	{
		Symbol:   "USDT",
		Name:     "Tether",
		Decimals: 6,
		AddressByChain: map[int64]string{
			1936682084: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
			1118190:    "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
		},
	},
	{
		Symbol:   "WSOL",
		Name:     "Wrapped SOL",
		Decimals: 9,
		AddressByChain: map[int64]string{
			1936682084: "So11111111111111111111111111111111111111112",
			1118190:    "So11111111111111111111111111111111111111112",
		},
	},
	{
		Symbol:   "MATIC",
		Name:     "Polygon",
		Decimals: 18,
		AddressByChain: map[int64]string{
			80002: "0x0000000000000000000000000000000000000000",
		},
	},
	{
		Symbol:   "BTC",
		Name:     "Bitcoin",
		Decimals: 8,
		AddressByChain: map[int64]string{
			9092725: "tb1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqtlc5af",
		},
	},
}
