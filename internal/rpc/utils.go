package rpc

import (
	"time"

	config "github.com/thirdweb-dev/blockquery/configs"
)

const (
	DEFAULT_BLOCKS_PER_REQUEST = 100
	DEFAULT_PARALLEL_BATCHES   = 4
	DEFAULT_REQUEST_TIMEOUT    = 30 * time.Second
)

func GetBlockPerRequestConfig() BlocksPerRequestConfig {
	blocksPerRequest := config.Cfg.RPC.Blocks.BlocksPerRequest
	if blocksPerRequest <= 0 {
		blocksPerRequest = DEFAULT_BLOCKS_PER_REQUEST
	}
	batchDelay := config.Cfg.RPC.Blocks.BatchDelay
	if batchDelay < 0 {
		batchDelay = 0
	}
	return BlocksPerRequestConfig{
		Blocks:     blocksPerRequest,
		BatchDelay: batchDelay,
	}
}

func GetRequestTimeout() time.Duration {
	if config.Cfg.RPC.Timeout <= 0 {
		return DEFAULT_REQUEST_TIMEOUT
	}
	return time.Duration(config.Cfg.RPC.Timeout) * time.Millisecond
}
