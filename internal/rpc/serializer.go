package rpc

import (
	"fmt"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/blockquery/internal/common"
)

func SerializeBlocks(blocks []RPCFetchBatchResult[uint64, common.RawBlock]) []GetBlocksResult {
	results := make([]GetBlocksResult, 0, len(blocks))

	for _, rawBlock := range blocks {
		result := GetBlocksResult{
			BlockNumber: rawBlock.Key,
		}
		if rawBlock.Error != nil {
			result.Error = rawBlock.Error
			results = append(results, result)
			continue
		}

		// a null result means the node has no block at this height
		if rawBlock.Result == nil {
			log.Debug().Msgf("Received a nil block result for block %d.", rawBlock.Key)
			results = append(results, result)
			continue
		}

		block, err := SerializeBlock(rawBlock.Result)
		if err != nil {
			result.Error = fmt.Errorf("malformed block %d: %w", rawBlock.Key, err)
		} else {
			result.Data = block
		}
		results = append(results, result)
	}

	return results
}

// SerializeBlock decodes the header summary of a raw eth_getBlockByNumber result.
// Keys that are missing or null stay nil on the optional fields.
func SerializeBlock(block common.RawBlock) (*common.Block, error) {
	d := &blockDecoder{raw: block}
	serialized := &common.Block{
		Number:                d.uint64Ptr("number"),
		Hash:                  d.hashPtr("hash"),
		ParentHash:            d.hash("parentHash"),
		Timestamp:             d.uint64("timestamp"),
		Size:                  d.uint64Ptr("size"),
		StateRoot:             d.hash("stateRoot"),
		TransactionsRoot:      d.hash("transactionsRoot"),
		ReceiptsRoot:          d.hash("receiptsRoot"),
		LogsBloom:             d.bloom("logsBloom"),
		ExtraData:             d.bytes("extraData"),
		MixHash:               d.hashPtr("mixHash"),
		TotalDifficulty:       d.uint256Ptr("totalDifficulty"),
		BaseFeePerGas:         d.uint256Ptr("baseFeePerGas"),
		WithdrawalsRoot:       d.hashPtr("withdrawalsRoot"),
		BlobGasUsed:           d.uint64Ptr("blobGasUsed"),
		ExcessBlobGas:         d.uint64Ptr("excessBlobGas"),
		ParentBeaconBlockRoot: d.hashPtr("parentBeaconBlockRoot"),
	}
	if d.err != nil {
		return nil, d.err
	}
	return serialized, nil
}

// blockDecoder keeps the first decoding error so SerializeBlock can read
// every key in one pass.
type blockDecoder struct {
	raw common.RawBlock
	err error
}

func (d *blockDecoder) fail(key string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("field %s: %w", key, err)
	}
}

func (d *blockDecoder) str(key string) (string, bool) {
	value, ok := d.raw[key]
	if !ok || value == nil {
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		d.fail(key, fmt.Errorf("expected hex string, got %T", value))
		return "", false
	}
	return s, true
}

func (d *blockDecoder) uint64Ptr(key string) *uint64 {
	s, ok := d.str(key)
	if !ok {
		return nil
	}
	v, err := hexutil.DecodeUint64(s)
	if err != nil {
		d.fail(key, err)
		return nil
	}
	return &v
}

func (d *blockDecoder) uint64(key string) uint64 {
	if v := d.uint64Ptr(key); v != nil {
		return *v
	}
	return 0
}

func (d *blockDecoder) uint256Ptr(key string) *uint256.Int {
	s, ok := d.str(key)
	if !ok {
		return nil
	}
	b, err := hexutil.DecodeBig(s)
	if err != nil {
		d.fail(key, err)
		return nil
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		d.fail(key, fmt.Errorf("value %s overflows 256 bits", s))
		return nil
	}
	return v
}

func (d *blockDecoder) bytes(key string) []byte {
	s, ok := d.str(key)
	if !ok {
		return nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		d.fail(key, err)
		return nil
	}
	return b
}

func (d *blockDecoder) hashPtr(key string) *gethCommon.Hash {
	b := d.bytes(key)
	if b == nil {
		return nil
	}
	if len(b) != gethCommon.HashLength {
		d.fail(key, fmt.Errorf("expected %d bytes, got %d", gethCommon.HashLength, len(b)))
		return nil
	}
	h := gethCommon.BytesToHash(b)
	return &h
}

func (d *blockDecoder) hash(key string) gethCommon.Hash {
	if h := d.hashPtr(key); h != nil {
		return *h
	}
	return gethCommon.Hash{}
}

func (d *blockDecoder) bloom(key string) types.Bloom {
	b := d.bytes(key)
	if b == nil {
		return types.Bloom{}
	}
	if len(b) != types.BloomByteLength {
		d.fail(key, fmt.Errorf("expected %d bytes, got %d", types.BloomByteLength, len(b)))
		return types.Bloom{}
	}
	return types.BytesToBloom(b)
}
