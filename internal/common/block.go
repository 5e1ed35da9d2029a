package common

import (
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// RawBlock is a block object exactly as eth_getBlockByNumber returns it.
type RawBlock = map[string]interface{}

// Block holds the header summary of a block returned by the provider.
// Pointer fields are absent on some chains, forks or for pending blocks.
type Block struct {
	Number                *uint64
	Hash                  *gethCommon.Hash
	ParentHash            gethCommon.Hash
	Timestamp             uint64
	Size                  *uint64
	StateRoot             gethCommon.Hash
	TransactionsRoot      gethCommon.Hash
	ReceiptsRoot          gethCommon.Hash
	LogsBloom             types.Bloom
	ExtraData             []byte
	MixHash               *gethCommon.Hash
	TotalDifficulty       *uint256.Int
	BaseFeePerGas         *uint256.Int
	WithdrawalsRoot       *gethCommon.Hash
	BlobGasUsed           *uint64
	ExcessBlobGas         *uint64
	ParentBeaconBlockRoot *gethCommon.Hash
}

// BlockRecord is the projected result of a block query. A nil field was not
// requested or is not present on the source block.
type BlockRecord struct {
	Number                *uint64          `json:"number,omitempty"`
	Timestamp             *uint64          `json:"timestamp,omitempty"`
	Hash                  *gethCommon.Hash `json:"hash,omitempty"`
	ParentHash            *gethCommon.Hash `json:"parent_hash,omitempty"`
	Size                  *uint64          `json:"size,omitempty"`
	StateRoot             *gethCommon.Hash `json:"state_root,omitempty"`
	TransactionsRoot      *gethCommon.Hash `json:"transactions_root,omitempty"`
	ReceiptsRoot          *gethCommon.Hash `json:"receipts_root,omitempty"`
	LogsBloom             *types.Bloom     `json:"logs_bloom,omitempty"`
	ExtraData             *hexutil.Bytes   `json:"extra_data,omitempty"`
	MixHash               *gethCommon.Hash `json:"mix_hash,omitempty"`
	TotalDifficulty       *uint256.Int     `json:"total_difficulty,omitempty"`
	BaseFeePerGas         *uint256.Int     `json:"base_fee_per_gas,omitempty"`
	WithdrawalsRoot       *gethCommon.Hash `json:"withdrawals_root,omitempty"`
	BlobGasUsed           *uint64          `json:"blob_gas_used,omitempty"`
	ExcessBlobGas         *uint64          `json:"excess_blob_gas,omitempty"`
	ParentBeaconBlockRoot *gethCommon.Hash `json:"parent_beacon_block_root,omitempty"`
}
