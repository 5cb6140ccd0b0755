// Package consensus implements the transaction admission validator: the
// consensus-sensitive rule set that decides whether a candidate transaction
// may enter the mempool, given the confirmed chain state plus the current
// mempool state.
package consensus

const (
	// TxVersionBase is the lowest transaction version accepted.
	TxVersionBase = 1

	// MaxVersion is the first version value that is rejected outright.
	MaxVersion = 6

	// CheckOutputScript is the version at and above which every output
	// script pattern must resolve to a recognized (non "non_standard")
	// pattern.
	CheckOutputScript = 3

	// CheckNovaFeature is the version that gates the nova feature bundle
	// (attachment validation, cert_mask enforcement, attenuation model
	// parameter checks). It requires the nova feature to be activated
	// (see NovaActive) on the chain the transaction targets.
	CheckNovaFeature = 4

	// CheckNovaTestnet is a version reserved for testnet-only nova trial
	// transactions; on mainnet it is rejected unconditionally.
	CheckNovaTestnet = 5

	// MaxMoney is the maximum representable etp value, in base units.
	MaxMoney = 21_000_000 * 100_000_000

	// MaxTransactionSize is the maximum serialized transaction size, in
	// bytes, admissible to the mempool.
	MaxTransactionSize = 1_000_000

	// MinTxFee is the minimum fee (value_in - value_out) required for
	// mempool admission.
	MinTxFee = 10_000

	// CoinbaseMaturity is the minimum number of confirmations a coinbase
	// output must have before it may be spent.
	CoinbaseMaturity = 100

	// CoinbaseScriptSizeMin and CoinbaseScriptSizeMax bound the coinbase
	// input's scriptSig length.
	CoinbaseScriptSizeMin = 2
	CoinbaseScriptSizeMax = 100

	// NovaActivationHeightMainnet is the confirmed-chain height above
	// which the nova feature bundle is active on mainnet. On testnet the
	// nova feature is always active.
	NovaActivationHeightMainnet = 1_270_000
)

// Hash32 is a 32-byte transaction or block identifier.
type Hash32 [32]byte

// OutPoint identifies a previous output by the hash of the transaction that
// created it and its index within that transaction's output list.
type OutPoint struct {
	TxHash Hash32
	Index  uint32
}

// Script is an opaque locking or spending script. The validator never
// interprets its bytes directly; script semantics are consumed through the
// Checker interface, implemented concretely by package script.
type Script []byte

// Tx is a candidate transaction: an ordered sequence of inputs and outputs
// plus a version.
type Tx struct {
	Version  uint32
	Inputs   []TxInput
	Outputs  []TxOutput
	Locktime uint32
}

// TxInput references a previous output by outpoint and carries the script
// that spends it.
type TxInput struct {
	PreviousOutput OutPoint
	Script         Script
	Sequence       uint32
}

// IsNull reports whether in references the coinbase sentinel outpoint: an
// all-zero hash and an index of all-ones bits.
func (in TxInput) IsNull() bool {
	return in.PreviousOutput.TxHash == Hash32{} && in.PreviousOutput.Index == ^uint32(0)
}

// TxOutput carries an etp value, a locking script, and an attachment that
// selects the output's kind.
type TxOutput struct {
	Value      uint64
	Script     Script
	Attachment Attachment
}
