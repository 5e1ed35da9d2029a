package resolver

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/rpc"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeProvider serves blocks 0..latest from memory without allocating a
// chain up front, so very long ranges stay cheap.
type fakeProvider struct {
	latest  uint64
	missing map[uint64]bool
	failing map[uint64]error
	// tags overrides tag resolution; a nil entry means "no block".
	tags  map[common.BlockTag]*common.Block
	delay func(number uint64) time.Duration

	calls      atomic.Int64
	batchCalls atomic.Int64
	// batch concurrency and size seen by GetBlocks
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
	maxBatch    atomic.Int64
}

func storeMax(v *atomic.Int64, n int64) {
	for {
		current := v.Load()
		if n <= current || v.CompareAndSwap(current, n) {
			return
		}
	}
}

func newFakeProvider(latest uint64) *fakeProvider {
	return &fakeProvider{
		latest:  latest,
		missing: map[uint64]bool{},
		failing: map[uint64]error{},
		tags:    map[common.BlockTag]*common.Block{},
	}
}

func (p *fakeProvider) GetBlockByNumber(ctx context.Context, ref common.BlockRef) (*common.Block, error) {
	p.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if tag, ok := ref.Tag(); ok {
		if block, overridden := p.tags[tag]; overridden {
			return block, nil
		}
		switch tag {
		case common.BlockTagLatest, common.BlockTagSafe, common.BlockTagFinalized:
			return testBlock(p.latest), nil
		case common.BlockTagEarliest:
			return testBlock(0), nil
		default:
			return nil, nil
		}
	}

	number, _ := ref.Number()
	if p.delay != nil {
		select {
		case <-time.After(p.delay(number)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.block(number)
}

func (p *fakeProvider) block(number uint64) (*common.Block, error) {
	if err, ok := p.failing[number]; ok {
		return nil, err
	}
	if number > p.latest || p.missing[number] {
		return nil, nil
	}
	return testBlock(number), nil
}

// fakeBatchProvider adds eth_getBlockByNumber batching on top of fakeProvider.
type fakeBatchProvider struct {
	*fakeProvider
}

func (p fakeBatchProvider) GetBlocks(ctx context.Context, blockNumbers []uint64) []rpc.GetBlocksResult {
	p.batchCalls.Add(1)
	storeMax(&p.maxInFlight, p.inFlight.Add(1))
	defer p.inFlight.Add(-1)
	storeMax(&p.maxBatch, int64(len(blockNumbers)))
	if p.delay != nil && len(blockNumbers) > 0 {
		select {
		case <-time.After(p.delay(blockNumbers[0])):
		case <-ctx.Done():
		}
	}

	results := make([]rpc.GetBlocksResult, len(blockNumbers))
	for i, number := range blockNumbers {
		results[i].BlockNumber = number
		if err := ctx.Err(); err != nil {
			results[i].Error = err
			continue
		}
		results[i].Data, results[i].Error = p.block(number)
	}
	return results
}

// limitedBatchProvider reports the largest batch it sends in one request.
type limitedBatchProvider struct {
	fakeBatchProvider
	limit int
}

func (p limitedBatchProvider) GetBlocksPerRequest() rpc.BlocksPerRequestConfig {
	return rpc.BlocksPerRequestConfig{Blocks: p.limit}
}

var errConnectionRefused = errors.New("dial tcp 127.0.0.1:8545: connect: connection refused")

// testBlock builds a block carrying every optional header value.
func testBlock(number uint64) *common.Block {
	return &common.Block{
		Number:                common.Ptr(number),
		Hash:                  common.Ptr(gethCommon.BigToHash(new(big.Int).SetUint64(number + 1))),
		ParentHash:            gethCommon.BigToHash(new(big.Int).SetUint64(number)),
		Timestamp:             1700000000 + number*12,
		Size:                  common.Ptr(uint64(544)),
		StateRoot:             gethCommon.HexToHash("0x01"),
		TransactionsRoot:      gethCommon.HexToHash("0x02"),
		ReceiptsRoot:          gethCommon.HexToHash("0x03"),
		LogsBloom:             types.BytesToBloom([]byte{0x01}),
		ExtraData:             []byte("geth"),
		MixHash:               common.Ptr(gethCommon.HexToHash("0x04")),
		TotalDifficulty:       uint256.NewInt(0),
		BaseFeePerGas:         uint256.NewInt(1000000000),
		WithdrawalsRoot:       common.Ptr(gethCommon.HexToHash("0x05")),
		BlobGasUsed:           common.Ptr(uint64(131072)),
		ExcessBlobGas:         common.Ptr(uint64(0)),
		ParentBeaconBlockRoot: common.Ptr(gethCommon.HexToHash("0x06")),
	}
}

func blockEntity(start common.BlockRef, end *common.BlockRef) common.EntityId {
	return common.BlockEntity{Range: common.NewBlockRange(start, end)}
}

func numbersOf(records []common.BlockRecord) []uint64 {
	numbers := make([]uint64, len(records))
	for i, record := range records {
		if record.Number != nil {
			numbers[i] = *record.Number
		}
	}
	return numbers
}
