package resolver

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/thirdweb-dev/blockquery/internal/common"
)

// ProjectBlock copies the requested fields of block into a fresh record.
// Fields that were not requested, or that the block does not carry, stay nil.
func ProjectBlock(block *common.Block, fields []common.BlockField) common.BlockRecord {
	var result common.BlockRecord

	for _, field := range fields {
		switch field {
		case common.BlockFieldTimestamp:
			result.Timestamp = common.Ptr(block.Timestamp)
		case common.BlockFieldNumber:
			result.Number = clonePtr(block.Number)
		case common.BlockFieldHash:
			result.Hash = clonePtr(block.Hash)
		case common.BlockFieldParentHash:
			result.ParentHash = common.Ptr(block.ParentHash)
		case common.BlockFieldSize:
			result.Size = clonePtr(block.Size)
		case common.BlockFieldStateRoot:
			result.StateRoot = common.Ptr(block.StateRoot)
		case common.BlockFieldTransactionsRoot:
			result.TransactionsRoot = common.Ptr(block.TransactionsRoot)
		case common.BlockFieldReceiptsRoot:
			result.ReceiptsRoot = common.Ptr(block.ReceiptsRoot)
		case common.BlockFieldLogsBloom:
			result.LogsBloom = common.Ptr(block.LogsBloom)
		case common.BlockFieldExtraData:
			if block.ExtraData != nil {
				result.ExtraData = common.Ptr(hexutil.Bytes(bytes.Clone(block.ExtraData)))
			}
		case common.BlockFieldMixHash:
			result.MixHash = clonePtr(block.MixHash)
		case common.BlockFieldTotalDifficulty:
			if block.TotalDifficulty != nil {
				result.TotalDifficulty = block.TotalDifficulty.Clone()
			}
		case common.BlockFieldBaseFeePerGas:
			if block.BaseFeePerGas != nil {
				result.BaseFeePerGas = block.BaseFeePerGas.Clone()
			}
		case common.BlockFieldWithdrawalsRoot:
			result.WithdrawalsRoot = clonePtr(block.WithdrawalsRoot)
		case common.BlockFieldBlobGasUsed:
			result.BlobGasUsed = clonePtr(block.BlobGasUsed)
		case common.BlockFieldExcessBlobGas:
			result.ExcessBlobGas = clonePtr(block.ExcessBlobGas)
		case common.BlockFieldParentBeaconBlockRoot:
			result.ParentBeaconBlockRoot = clonePtr(block.ParentBeaconBlockRoot)
		}
	}

	return result
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
