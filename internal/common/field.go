package common

import (
	"fmt"
	"strings"
)

// BlockField is one projectable block value.
type BlockField int

const (
	BlockFieldTimestamp BlockField = iota
	BlockFieldNumber
	BlockFieldHash
	BlockFieldParentHash
	BlockFieldSize
	BlockFieldStateRoot
	BlockFieldTransactionsRoot
	BlockFieldReceiptsRoot
	BlockFieldLogsBloom
	BlockFieldExtraData
	BlockFieldMixHash
	BlockFieldTotalDifficulty
	BlockFieldBaseFeePerGas
	BlockFieldWithdrawalsRoot
	BlockFieldBlobGasUsed
	BlockFieldExcessBlobGas
	BlockFieldParentBeaconBlockRoot
)

var blockFieldNames = [...]string{
	BlockFieldTimestamp:             "timestamp",
	BlockFieldNumber:                "number",
	BlockFieldHash:                  "hash",
	BlockFieldParentHash:            "parent_hash",
	BlockFieldSize:                  "size",
	BlockFieldStateRoot:             "state_root",
	BlockFieldTransactionsRoot:      "transactions_root",
	BlockFieldReceiptsRoot:          "receipts_root",
	BlockFieldLogsBloom:             "logs_bloom",
	BlockFieldExtraData:             "extra_data",
	BlockFieldMixHash:               "mix_hash",
	BlockFieldTotalDifficulty:       "total_difficulty",
	BlockFieldBaseFeePerGas:         "base_fee_per_gas",
	BlockFieldWithdrawalsRoot:       "withdrawals_root",
	BlockFieldBlobGasUsed:           "blob_gas_used",
	BlockFieldExcessBlobGas:         "excess_blob_gas",
	BlockFieldParentBeaconBlockRoot: "parent_beacon_block_root",
}

func (f BlockField) String() string {
	if f < 0 || int(f) >= len(blockFieldNames) {
		return fmt.Sprintf("BlockField(%d)", int(f))
	}
	return blockFieldNames[f]
}

// AllBlockFields returns every projectable field in declaration order.
func AllBlockFields() []BlockField {
	fields := make([]BlockField, len(blockFieldNames))
	for i := range blockFieldNames {
		fields[i] = BlockField(i)
	}
	return fields
}

// ParseBlockField maps a snake_case or camelCase field name to its BlockField.
func ParseBlockField(name string) (BlockField, error) {
	normalized := normalizeFieldName(name)
	for i, n := range blockFieldNames {
		if strings.ReplaceAll(n, "_", "") == normalized {
			return BlockField(i), nil
		}
	}
	return 0, fmt.Errorf("unknown block field %q", name)
}

// ParseBlockFields parses a list of names, expanding "all" (or "*") to every field.
func ParseBlockFields(names []string) ([]BlockField, error) {
	fields := make([]BlockField, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "*" || strings.EqualFold(name, "all") {
			return AllBlockFields(), nil
		}
		field, err := ParseBlockField(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func normalizeFieldName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	return strings.ReplaceAll(name, "-", "")
}
