package rpc

import (
	"context"
	"sync"
	"time"

	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/metrics"
	"golang.org/x/sync/semaphore"
)

type RPCFetchBatchResult[K any, T any] struct {
	Key    K
	Error  error
	Result T
}

// RPCFetchInBatches splits keys into batches of batchSize and sends at most
// DEFAULT_PARALLEL_BATCHES of them at a time. Results keep the order of keys.
func RPCFetchInBatches[K any, T any](rpc *Client, ctx context.Context, keys []K, batchSize int, batchDelay int, method string, argsFunc func(K) []interface{}) []RPCFetchBatchResult[K, T] {
	if len(keys) <= batchSize {
		return RPCFetchSingleBatch[K, T](rpc, ctx, keys, method, argsFunc)
	}
	chunks := common.SliceToChunks[K](keys, batchSize)

	log.Debug().Msgf("Fetching %s for %d keys in %d chunks of max %d requests", method, len(keys), len(chunks), batchSize)

	results := make([]RPCFetchBatchResult[K, T], len(keys))
	sem := semaphore.NewWeighted(DEFAULT_PARALLEL_BATCHES)
	var wg sync.WaitGroup

	offset := 0
	for _, chunk := range chunks {
		chunkOffset := offset
		offset += len(chunk)

		if err := sem.Acquire(ctx, 1); err != nil {
			for i, key := range chunk {
				results[chunkOffset+i] = RPCFetchBatchResult[K, T]{Key: key, Error: err}
			}
			continue
		}
		wg.Add(1)
		go func(chunk []K) {
			defer wg.Done()
			defer sem.Release(1)
			// each goroutine owns a disjoint window of results
			copy(results[chunkOffset:], RPCFetchSingleBatch[K, T](rpc, ctx, chunk, method, argsFunc))
			if batchDelay > 0 {
				time.Sleep(time.Duration(batchDelay) * time.Millisecond)
			}
		}(chunk)
	}
	wg.Wait()

	return results
}

func RPCFetchSingleBatch[K any, T any](rpc *Client, ctx context.Context, keys []K, method string, argsFunc func(K) []interface{}) []RPCFetchBatchResult[K, T] {
	batch := make([]gethRpc.BatchElem, len(keys))
	results := make([]RPCFetchBatchResult[K, T], len(keys))

	for i, key := range keys {
		results[i] = RPCFetchBatchResult[K, T]{Key: key}
		batch[i] = gethRpc.BatchElem{
			Method: method,
			Args:   argsFunc(key),
			Result: new(T),
		}
	}

	ctx, cancel := rpc.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := rpc.RPCClient.BatchCallContext(ctx, batch)
	observeRequest(method, start, err)
	metrics.RPCBatchSize.Observe(float64(len(keys)))
	if err != nil {
		for i := range results {
			results[i].Error = err
		}
		return results
	}

	for i, elem := range batch {
		if elem.Error != nil {
			results[i].Error = elem.Error
		} else {
			results[i].Result = *elem.Result.(*T)
		}
	}

	return results
}
