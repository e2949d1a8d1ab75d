// Package feed defines the domain events delivered by the live chain feed
// and the classifier that turns raw frames into them.
//
// The feed is ordered on the wire but not semantically: an input or output
// may arrive before its transaction, and a transaction before its block.
// Consumers are expected to tolerate that; nothing here reorders events.
package feed

import "encoding/json"

// Kind discriminates the event variants carried by the feed. The values
// match the wire `type` field exactly, including the lowercase "stats".
type Kind string

const (
	KindBlock       Kind = "Block"
	KindTransaction Kind = "Transaction"
	KindTxInput     Kind = "TxInput"
	KindTxOutput    Kind = "TxOutput"
	KindRollBack    Kind = "RollBack"
	KindStats       Kind = "stats"
)

// Event is one classified feed message. Concrete types are BlockEvent,
// TransactionEvent, TxInputEvent, TxOutputEvent, RollBackEvent and
// StatsSnapshot.
type Event interface {
	// Kind identifies the concrete variant.
	Kind() Kind
}

// BlockEvent announces a block header. Timestamp doubles as the grouping key
// joining the block with its transactions, inputs and outputs.
type BlockEvent struct {
	Slot      uint64 `json:"slot"`
	Hash      string `json:"hash"`
	Number    uint64 `json:"number"`
	Epoch     uint64 `json:"epoch"`
	TxCount   uint32 `json:"tx_count"`
	Timestamp int64  `json:"timestamp"`

	// Details keeps the full raw frame so downstream consumers can surface
	// fields this struct does not model.
	Details json.RawMessage `json:"-"`
}

// Kind implements Event.
func (BlockEvent) Kind() Kind { return KindBlock }

// TransactionEvent announces a transaction inside the block sharing its
// timestamp. Fee and TotalOutput are in lovelace.
type TransactionEvent struct {
	Hash        string `json:"hash"`
	Fee         uint64 `json:"fee"`
	Inputs      uint32 `json:"inputs"`
	Outputs     uint32 `json:"outputs"`
	TotalOutput uint64 `json:"total_output"`
	Timestamp   int64  `json:"timestamp"`

	Details json.RawMessage `json:"-"`
}

// Kind implements Event.
func (TransactionEvent) Kind() Kind { return KindTransaction }

// TxInputEvent references an output consumed by the transaction identified
// by TxHash.
type TxInputEvent struct {
	TxHash     string `json:"tx_hash"`
	InputTxID  string `json:"input_tx_id"`
	InputIndex uint32 `json:"input_index"`
	Timestamp  int64  `json:"timestamp"`
}

// Kind implements Event.
func (TxInputEvent) Kind() Kind { return KindTxInput }

// TxOutputEvent is an output produced by the transaction identified by
// TxHash. Amount is in lovelace.
type TxOutputEvent struct {
	TxHash    string `json:"tx_hash"`
	Address   string `json:"address"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

// Kind implements Event.
func (TxOutputEvent) Kind() Kind { return KindTxOutput }

// RollBackEvent signals a chain reorganization: every block above BlockSlot
// must be considered invalid and discarded by consumers.
type RollBackEvent struct {
	BlockHash string `json:"block_hash"`
	BlockSlot uint64 `json:"block_slot"`
	Timestamp int64  `json:"timestamp"`
}

// Kind implements Event.
func (RollBackEvent) Kind() Kind { return KindRollBack }

// StatsSnapshot is the feed's own running counters. Each snapshot fully
// replaces the previous one; there is no merging.
type StatsSnapshot struct {
	TotalEvents       uint64 `json:"total_events"`
	BlocksCount       uint64 `json:"blocks_count"`
	TransactionsCount uint64 `json:"transactions_count"`
	InputsCount       uint64 `json:"inputs_count"`
	OutputsCount      uint64 `json:"outputs_count"`
	BufferSize        uint64 `json:"buffer_size"`
	LastBlockNumber   uint64 `json:"last_block_number"`
	LastSlot          uint64 `json:"last_slot"`
}

// Kind implements Event.
func (StatsSnapshot) Kind() Kind { return KindStats }
