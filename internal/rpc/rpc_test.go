package rpc

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "github.com/thirdweb-dev/blockquery/configs"
	"github.com/thirdweb-dev/blockquery/internal/common"
)

// fakeEthService serves the eth_ namespace from an in-memory chain.
type fakeEthService struct {
	mu      sync.Mutex
	blocks  map[uint64]common.RawBlock
	pending common.RawBlock
	latest  uint64
	fail    map[uint64]bool
	calls   int
}

func newFakeEthService(latest uint64) *fakeEthService {
	s := &fakeEthService{
		blocks: make(map[uint64]common.RawBlock),
		latest: latest,
		fail:   make(map[uint64]bool),
	}
	for n := uint64(0); n <= latest; n++ {
		s.blocks[n] = rawBlockFixture(n)
	}
	return s
}

func (s *fakeEthService) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(1))
}

func (s *fakeEthService) BlockNumber() hexutil.Uint64 {
	return hexutil.Uint64(s.latest)
}

func (s *fakeEthService) GetBlockByNumber(number gethRpc.BlockNumber, fullTx bool) (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if fullTx {
		return nil, errors.New("full transactions requested")
	}
	switch number {
	case gethRpc.PendingBlockNumber:
		return s.pending, nil
	case gethRpc.LatestBlockNumber, gethRpc.SafeBlockNumber, gethRpc.FinalizedBlockNumber:
		return s.blocks[s.latest], nil
	case gethRpc.EarliestBlockNumber:
		return s.blocks[0], nil
	}
	n := uint64(number.Int64())
	if s.fail[n] {
		return nil, errors.New("internal error")
	}
	return s.blocks[n], nil
}

func rawBlockFixture(n uint64) common.RawBlock {
	return common.RawBlock{
		"number":           hexutil.EncodeUint64(n),
		"hash":             gethCommon.BigToHash(new(big.Int).SetUint64(n + 1000)).Hex(),
		"parentHash":       gethCommon.BigToHash(new(big.Int).SetUint64(n + 999)).Hex(),
		"timestamp":        hexutil.EncodeUint64(1700000000 + n*12),
		"size":             "0x220",
		"stateRoot":        gethCommon.HexToHash("0x01").Hex(),
		"transactionsRoot": gethCommon.HexToHash("0x02").Hex(),
		"receiptsRoot":     gethCommon.HexToHash("0x03").Hex(),
		"logsBloom":        "0x" + strings.Repeat("00", 256),
		"extraData":        "0x",
		"mixHash":          gethCommon.HexToHash("0x04").Hex(),
		"baseFeePerGas":    "0x3b9aca00",
		"transactions":     []interface{}{},
	}
}

func setupTestClient(t *testing.T, svc *fakeEthService) *Client {
	t.Helper()
	server := gethRpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	rpcClient := gethRpc.DialInProc(server)

	client, err := NewClient(context.Background(), rpcClient, "inproc://test")
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	return client
}

func TestNewClient_LoadsChainID(t *testing.T) {
	client := setupTestClient(t, newFakeEthService(3))

	assert.Equal(t, big.NewInt(1), client.GetChainID())
	assert.Equal(t, "inproc://test", client.GetURL())
	assert.False(t, client.IsWebsocket())
	assert.Equal(t, DEFAULT_BLOCKS_PER_REQUEST, client.GetBlocksPerRequest().Blocks)
}

func TestGetBlockByNumber_Number(t *testing.T) {
	client := setupTestClient(t, newFakeEthService(10))

	block, err := client.GetBlockByNumber(context.Background(), common.NumberRef(5))
	require.NoError(t, err)
	require.NotNil(t, block)
	require.NotNil(t, block.Number)
	assert.Equal(t, uint64(5), *block.Number)
	assert.Equal(t, gethCommon.BigToHash(big.NewInt(1005)), *block.Hash)
	assert.Equal(t, uint64(1700000060), block.Timestamp)
	assert.Equal(t, uint64(0x220), *block.Size)
	assert.Equal(t, uint64(1000000000), block.BaseFeePerGas.Uint64())
	assert.Empty(t, block.ExtraData)
	assert.Nil(t, block.WithdrawalsRoot)
	assert.Nil(t, block.TotalDifficulty)
	assert.Nil(t, block.BlobGasUsed)
}

func TestGetBlockByNumber_Tag(t *testing.T) {
	client := setupTestClient(t, newFakeEthService(100))

	block, err := client.GetBlockByNumber(context.Background(), common.TagRef(common.BlockTagLatest))
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Equal(t, uint64(100), *block.Number)
}

func TestGetBlockByNumber_Missing(t *testing.T) {
	client := setupTestClient(t, newFakeEthService(10))

	block, err := client.GetBlockByNumber(context.Background(), common.NumberRef(11))
	assert.NoError(t, err)
	assert.Nil(t, block)
}

func TestGetBlockByNumber_PendingWithoutNumber(t *testing.T) {
	svc := newFakeEthService(10)
	pending := rawBlockFixture(11)
	pending["number"] = nil
	pending["hash"] = nil
	svc.pending = pending
	client := setupTestClient(t, svc)

	block, err := client.GetBlockByNumber(context.Background(), common.TagRef(common.BlockTagPending))
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Nil(t, block.Number)
	assert.Nil(t, block.Hash)
}

func TestGetBlockByNumber_ProviderError(t *testing.T) {
	svc := newFakeEthService(10)
	svc.fail[7] = true
	client := setupTestClient(t, svc)

	_, err := client.GetBlockByNumber(context.Background(), common.NumberRef(7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
}

func TestGetBlockByNumber_Malformed(t *testing.T) {
	svc := newFakeEthService(10)
	svc.blocks[3]["stateRoot"] = "0x1234"
	client := setupTestClient(t, svc)

	_, err := client.GetBlockByNumber(context.Background(), common.NumberRef(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stateRoot")
}

func TestGetBlocks_PreservesOrderAcrossBatches(t *testing.T) {
	originalConfig := config.Cfg.RPC
	defer func() { config.Cfg.RPC = originalConfig }()
	config.Cfg.RPC.Blocks.BlocksPerRequest = 2

	svc := newFakeEthService(20)
	client := setupTestClient(t, svc)
	require.Equal(t, 2, client.GetBlocksPerRequest().Blocks)

	numbers := []uint64{3, 4, 5, 6, 7, 21, 8}
	results := client.GetBlocks(context.Background(), numbers)
	require.Len(t, results, len(numbers))

	for i, result := range results {
		assert.Equal(t, numbers[i], result.BlockNumber)
		if numbers[i] == 21 {
			assert.NoError(t, result.Error)
			assert.Nil(t, result.Data)
			continue
		}
		require.NoError(t, result.Error)
		require.NotNil(t, result.Data)
		assert.Equal(t, numbers[i], *result.Data.Number)
	}
	assert.Equal(t, len(numbers), svc.calls)
}

func TestGetBlocks_ElementError(t *testing.T) {
	svc := newFakeEthService(5)
	svc.fail[2] = true
	client := setupTestClient(t, svc)

	results := client.GetBlocks(context.Background(), []uint64{1, 2, 3})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Error)
	assert.Error(t, results[1].Error)
	assert.NoError(t, results[2].Error)
}

func TestGetLatestBlockNumber(t *testing.T) {
	client := setupTestClient(t, newFakeEthService(42))

	latest, err := client.GetLatestBlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), latest)
}
