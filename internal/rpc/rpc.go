package rpc

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/blockquery/configs"
	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/metrics"
)

// GetBlocksResult is one entry of a batched block fetch. Data is nil with no
// Error when the node has no block at BlockNumber.
type GetBlocksResult struct {
	BlockNumber uint64
	Error       error
	Data        *common.Block
}

type BlocksPerRequestConfig struct {
	Blocks     int
	BatchDelay int
}

type IRPCClient interface {
	GetBlockByNumber(ctx context.Context, ref common.BlockRef) (*common.Block, error)
	GetBlocks(ctx context.Context, blockNumbers []uint64) []GetBlocksResult
	GetLatestBlockNumber(ctx context.Context) (uint64, error)
	GetChainID() *big.Int
	GetURL() string
	GetBlocksPerRequest() BlocksPerRequestConfig
	IsWebsocket() bool
	Close()
}

// Client is safe for concurrent use; the underlying go-ethereum client
// multiplexes calls over one connection.
type Client struct {
	RPCClient        *gethRpc.Client
	EthClient        *ethclient.Client
	isWebsocket      bool
	url              string
	chainID          *big.Int
	blocksPerRequest BlocksPerRequestConfig
	timeout          time.Duration
}

var _ IRPCClient = (*Client)(nil)

func Initialize() (IRPCClient, error) {
	rpcUrl := config.Cfg.RPC.URL
	if rpcUrl == "" {
		return nil, fmt.Errorf("RPC_URL environment variable is not set")
	}
	log.Debug().Msg("Initializing RPC")
	rpc, err := dial(rpcUrl)
	if err != nil {
		return nil, err
	}

	if err := rpc.checkGetBlockByNumberSupport(); err != nil {
		rpc.Close()
		return nil, err
	}
	config.Cfg.RPC.ChainID = rpc.chainID.String()
	return IRPCClient(rpc), nil
}

func dial(url string) (*Client, error) {
	rpcClient, dialErr := gethRpc.Dial(url)
	if dialErr != nil {
		return nil, fmt.Errorf("failed to dial RPC %s: %w", url, dialErr)
	}
	rpc, err := NewClient(context.Background(), rpcClient, url)
	if err != nil {
		rpcClient.Close()
		return nil, err
	}
	return rpc, nil
}

// NewClient wraps an already connected go-ethereum RPC client and loads the chain ID.
func NewClient(ctx context.Context, rpcClient *gethRpc.Client, url string) (*Client, error) {
	rpc := &Client{
		RPCClient:        rpcClient,
		EthClient:        ethclient.NewClient(rpcClient),
		url:              url,
		isWebsocket:      strings.HasPrefix(url, "ws://") || strings.HasPrefix(url, "wss://"),
		blocksPerRequest: GetBlockPerRequestConfig(),
		timeout:          GetRequestTimeout(),
	}
	if err := rpc.setChainID(ctx); err != nil {
		return nil, err
	}
	return rpc, nil
}

func (rpc *Client) GetChainID() *big.Int {
	return rpc.chainID
}

func (rpc *Client) GetURL() string {
	return rpc.url
}

func (rpc *Client) GetBlocksPerRequest() BlocksPerRequestConfig {
	return rpc.blocksPerRequest
}

func (rpc *Client) IsWebsocket() bool {
	return rpc.isWebsocket
}

func (rpc *Client) Close() {
	rpc.RPCClient.Close()
}

func (rpc *Client) checkGetBlockByNumberSupport() error {
	var blockByNumberResult interface{}
	err := rpc.RPCClient.Call(&blockByNumberResult, "eth_getBlockByNumber", GetBlockByRefWithoutTransactionsParams(common.TagRef(common.BlockTagLatest))...)
	if err != nil {
		return fmt.Errorf("eth_getBlockByNumber method not supported: %v", err)
	}
	log.Debug().Msg("eth_getBlockByNumber method supported")
	return nil
}

func (rpc *Client) setChainID(ctx context.Context) error {
	ctx, cancel := rpc.withTimeout(ctx)
	defer cancel()
	chainID, err := rpc.EthClient.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	rpc.chainID = chainID
	return nil
}

// GetBlockByNumber fetches the header summary of a block without transaction
// bodies. It returns nil and no error when the node has no such block.
func (rpc *Client) GetBlockByNumber(ctx context.Context, ref common.BlockRef) (*common.Block, error) {
	ctx, cancel := rpc.withTimeout(ctx)
	defer cancel()

	const method = "eth_getBlockByNumber"
	var raw common.RawBlock
	start := time.Now()
	err := rpc.RPCClient.CallContext(ctx, &raw, method, GetBlockByRefWithoutTransactionsParams(ref)...)
	observeRequest(method, start, err)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, ref, err)
	}
	if raw == nil {
		return nil, nil
	}
	block, err := SerializeBlock(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed block %s: %w", ref, err)
	}
	return block, nil
}

func (rpc *Client) GetBlocks(ctx context.Context, blockNumbers []uint64) []GetBlocksResult {
	blocks := RPCFetchInBatches[uint64, common.RawBlock](rpc, ctx, blockNumbers, rpc.blocksPerRequest.Blocks, rpc.blocksPerRequest.BatchDelay, "eth_getBlockByNumber", GetBlockWithoutTransactionsParams)
	return SerializeBlocks(blocks)
}

func (rpc *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	ctx, cancel := rpc.withTimeout(ctx)
	defer cancel()
	start := time.Now()
	blockNumber, err := rpc.EthClient.BlockNumber(ctx)
	observeRequest("eth_blockNumber", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	return blockNumber, nil
}

func (rpc *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if rpc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, rpc.timeout)
}

func observeRequest(method string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RPCRequests.WithLabelValues(method, status).Inc()
	metrics.RPCRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
