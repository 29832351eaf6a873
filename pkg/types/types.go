package types

// Environment selects one of the two static configuration tables.
type Environment string

const (
	Testnet Environment = "testnet"
	Mainnet Environment = "mainnet"
)

// Family identifies the address-format family of a chain.
type Family string

const (
	FamilyEVM     Family = "evm"
	FamilySVM     Family = "svm"
	FamilyBitcoin Family = "bitcoin"
)

// ChainDescriptor identifies a blockchain network the system can target.
type ChainDescriptor struct {
	ID          string      `json:"id"`
	ChainID     int64       `json:"chainId"`
	Name        string      `json:"name"`
	Environment Environment `json:"environment"`
	Family      Family      `json:"family"`
	ExplorerURL string      `json:"explorerUrl,omitempty"`
}

// TokenDescriptor describes a token and the chains it is deployed on.
// A token is only valid on a chain if AddressByChain has an entry for it.
type TokenDescriptor struct {
	Symbol         string           `json:"symbol"`
	Name           string           `json:"name"`
	Decimals       int32            `json:"decimals"`
	AddressByChain map[int64]string `json:"addresses"`
}

// TransferRequest represents a user's transfer command before resolution.
type TransferRequest struct {
	UserAddress   string
	RecipientAddr string
	SourceChain   string
	TargetChain   string
	SellToken     string
	BuyToken      string
	Amount        string
}

// QuoteRequest is the aggregator wire shape for POST /quote.
type QuoteRequest struct {
	User                string `json:"user"`
	Recipient           string `json:"recipient,omitempty"`
	OriginChainID       int64  `json:"originChainId"`
	DestinationChainID  int64  `json:"destinationChainId"`
	OriginCurrency      string `json:"originCurrency"`
	DestinationCurrency string `json:"destinationCurrency"`
	Amount              string `json:"amount"`
	TradeType           string `json:"tradeType"`
}

// StepKind distinguishes on-chain transactions from signature requests.
type StepKind string

const (
	StepTransaction StepKind = "transaction"
	StepSignature   StepKind = "signature"
)

// ItemStatus is the completion marker on a step item.
type ItemStatus string

const (
	ItemIncomplete ItemStatus = "incomplete"
	ItemComplete   ItemStatus = "complete"
)

// TransactionPayload is passed verbatim to the wallet. Numeric fields are
// decimal strings and must be parsed as arbitrary-precision integers;
// absent fields are omitted so the wallet applies its own defaults.
type TransactionPayload struct {
	To                   string `json:"to"`
	Data                 string `json:"data,omitempty"`
	Value                string `json:"value,omitempty"`
	ChainID              int64  `json:"chainId,omitempty"`
	Gas                  string `json:"gas,omitempty"`
	MaxFeePerGas         string `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas,omitempty"`
}

// Check points at the aggregator's status endpoint for a step item.
type Check struct {
	Endpoint string `json:"endpoint"`
	Method   string `json:"method,omitempty"`
}

// SignatureData carries the message to sign and where to post the result.
type SignatureData struct {
	Message  string `json:"message"`
	Endpoint string `json:"endpoint"`
}

// StepItem is one unit of required action within a step.
type StepItem struct {
	Status    ItemStatus         `json:"status"`
	Data      TransactionPayload `json:"data"`
	Check     *Check             `json:"check,omitempty"`
	Signature *SignatureData     `json:"signature,omitempty"`
}

// Step is an ordered unit of execution returned by the aggregator.
// Steps must be processed in array order; later steps depend on the chain
// state produced by earlier ones.
type Step struct {
	ID          string     `json:"id"`
	Action      string     `json:"action,omitempty"`
	Description string     `json:"description,omitempty"`
	Kind        StepKind   `json:"kind"`
	ChainID     int64      `json:"chainId"`
	RequestID   string     `json:"requestId,omitempty"`
	Items       []StepItem `json:"items"`
}

// Fees is the aggregator's fee estimate in USD.
type Fees struct {
	GasUSD     string `json:"gasUsd,omitempty"`
	RelayerUSD string `json:"relayerUsd,omitempty"`
}

// Quote is the normalized aggregator response. It is immutable once
// received and superseded by a new Quote on re-request.
type Quote struct {
	RequestID           string  `json:"requestId,omitempty"`
	Rate                string  `json:"rate,omitempty"`
	TimeEstimateMinutes float64 `json:"timeEstimate,omitempty"`
	Fees                Fees    `json:"fees"`
	Steps               []Step  `json:"steps"`
}

// CheckStatus is the state reported by a check endpoint.
type CheckStatus string

const (
	StatusWaiting CheckStatus = "waiting"
	StatusPending CheckStatus = "pending"
	StatusSuccess CheckStatus = "success"
	StatusFailure CheckStatus = "failure"
	StatusRefund  CheckStatus = "refund"
)

// Terminal reports whether polling must stop at this status.
func (s CheckStatus) Terminal() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusRefund:
		return true
	}
	return false
}

// CheckResult is the wire shape of a check endpoint response.
type CheckResult struct {
	Status   CheckStatus `json:"status"`
	TxHashes []string    `json:"txHashes,omitempty"`
}

// ExecutionResult is produced once per full quote execution.
type ExecutionResult struct {
	Success      bool   `json:"success"`
	TxHash       string `json:"txHash,omitempty"`
	ExplorerLink string `json:"explorerLink,omitempty"`
	Error        string `json:"error,omitempty"`
	UserRejected bool   `json:"userRejected,omitempty"`
	Refunded     bool   `json:"refunded,omitempty"`
	TimedOut     bool   `json:"timedOut,omitempty"`
}
