package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"relay-bridge/config"
	"relay-bridge/pkg/types"
)

const receiptPollInterval = 3 * time.Second

// EVMWallet signs and submits transactions on one EVM network with a
// locally held private key.
type EVMWallet struct {
	chainID    *big.Int
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	address    common.Address
	gasLimit   *uint64
}

// NewEVMWallet connects to the network's RPC endpoint and loads the key.
func NewEVMWallet(cfg config.WalletNetwork, chainID int64) (*EVMWallet, error) {
	if cfg.RPCUrl == "" {
		return nil, fmt.Errorf("RPC URL not configured for chain %d", chainID)
	}
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("private key not configured for chain %d", chainID)
	}

	client, err := ethclient.Dial(cfg.RPCUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	publicKey, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("failed to derive public key")
	}

	return &EVMWallet{
		chainID:    big.NewInt(chainID),
		client:     client,
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(*publicKey),
		gasLimit:   cfg.GasLimit,
	}, nil
}

// Address returns the sender address derived from the configured key.
func (w *EVMWallet) Address() string {
	return w.address.Hex()
}

// SendTransaction submits the aggregator payload verbatim. Numeric string
// fields are parsed as arbitrary-precision integers; absent fields are left
// unset so the node supplies its own defaults.
func (w *EVMWallet) SendTransaction(ctx context.Context, payload types.TransactionPayload) (string, error) {
	if !common.IsHexAddress(payload.To) {
		return "", fmt.Errorf("invalid destination address: %s", payload.To)
	}
	to := common.HexToAddress(payload.To)

	value, err := parseBig(payload.Value, "value")
	if err != nil {
		return "", err
	}
	maxFee, err := parseBig(payload.MaxFeePerGas, "maxFeePerGas")
	if err != nil {
		return "", err
	}
	maxPriority, err := parseBig(payload.MaxPriorityFeePerGas, "maxPriorityFeePerGas")
	if err != nil {
		return "", err
	}

	var data []byte
	if payload.Data != "" {
		data, err = hexutil.Decode(payload.Data)
		if err != nil {
			return "", fmt.Errorf("invalid calldata: %w", err)
		}
	}

	nonce, err := w.client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasLimit, err := w.resolveGasLimit(ctx, payload.Gas, to, value, data)
	if err != nil {
		return "", err
	}

	var tx *ethtypes.Transaction
	if maxFee != nil {
		if maxPriority == nil {
			maxPriority = maxFee
		}
		tx = ethtypes.NewTx(&ethtypes.DynamicFeeTx{
			ChainID:   w.chainID,
			Nonce:     nonce,
			To:        &to,
			Value:     value,
			Gas:       gasLimit,
			GasFeeCap: maxFee,
			GasTipCap: maxPriority,
			Data:      data,
		})
	} else {
		gasPrice, err := w.client.SuggestGasPrice(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get gas price: %w", err)
		}
		tx = ethtypes.NewTx(&ethtypes.LegacyTx{
			Nonce:    nonce,
			To:       &to,
			Value:    value,
			Gas:      gasLimit,
			GasPrice: gasPrice,
			Data:     data,
		})
	}

	signedTx, err := ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(w.chainID), w.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := w.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash().Hex(), nil
}

// SignMessage produces an EIP-191 personal-sign signature.
func (w *EVMWallet) SignMessage(_ context.Context, message string) (string, error) {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	hash := crypto.Keccak256([]byte(prefixed))

	sig, err := crypto.Sign(hash, w.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}

	// Transform V from 0/1 to the 27/28 form wallets produce.
	sig[64] += 27

	return hexutil.Encode(sig), nil
}

// WaitMined blocks until the transaction has a receipt or the context is
// cancelled. A reverted transaction is an error.
func (w *EVMWallet) WaitMined(ctx context.Context, txHash string) error {
	hash := common.HexToHash(txHash)
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := w.client.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status == ethtypes.ReceiptStatusFailed {
				return fmt.Errorf("transaction %s reverted", txHash)
			}
			return nil
		}
		if err != ethereum.NotFound {
			return fmt.Errorf("failed to get transaction receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close closes the client connection
func (w *EVMWallet) Close() {
	if w.client != nil {
		w.client.Close()
	}
}

func (w *EVMWallet) resolveGasLimit(ctx context.Context, gas string, to common.Address, value *big.Int, data []byte) (uint64, error) {
	if gas != "" {
		limit, ok := new(big.Int).SetString(gas, 10)
		if !ok || !limit.IsUint64() {
			return 0, fmt.Errorf("invalid gas limit: %s", gas)
		}
		return limit.Uint64(), nil
	}
	if w.gasLimit != nil {
		return *w.gasLimit, nil
	}

	msg := ethereum.CallMsg{From: w.address, To: &to, Value: value, Data: data}
	estimated, err := w.client.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}
	return estimated * 120 / 100, nil
}

func parseBig(s, field string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %s", field, s)
	}
	return v, nil
}
