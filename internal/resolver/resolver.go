package resolver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/blockquery/configs"
	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/metrics"
	"github.com/thirdweb-dev/blockquery/internal/rpc"
	"golang.org/x/sync/errgroup"
)

const DEFAULT_PARALLEL_FETCHES = 8

// Provider is the chain-data source the resolver reads blocks from. It must
// be safe for concurrent use. A nil block with a nil error means the provider
// has no block for ref.
type Provider interface {
	GetBlockByNumber(ctx context.Context, ref common.BlockRef) (*common.Block, error)
}

// BatchProvider can fetch many blocks in one round trip. Results must line up
// with blockNumbers.
type BatchProvider interface {
	Provider
	GetBlocks(ctx context.Context, blockNumbers []uint64) []rpc.GetBlocksResult
}

// batchLimiter is implemented by providers that split GetBlocks calls larger
// than their own batch size into several requests.
type batchLimiter interface {
	GetBlocksPerRequest() rpc.BlocksPerRequestConfig
}

type Resolver struct {
	provider         Provider
	parallelFetches  int
	blocksPerRequest int
	useBatching      bool
}

type Option func(*Resolver)

// WithParallelFetches bounds the number of in-flight provider requests per
// range. With batching each request carries up to the batch size in blocks.
func WithParallelFetches(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.parallelFetches = n
		}
	}
}

// WithBlocksPerRequest sets the batch size used when the provider supports
// batching. It never exceeds the provider's own batch size.
func WithBlocksPerRequest(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.blocksPerRequest = n
		}
	}
}

func WithBatching(enabled bool) Option {
	return func(r *Resolver) {
		r.useBatching = enabled
	}
}

func NewResolver(provider Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider:         provider,
		parallelFetches:  config.Cfg.Resolver.ParallelFetches,
		blocksPerRequest: rpc.GetBlockPerRequestConfig().Blocks,
		useBatching:      config.Cfg.Resolver.UseBatching,
	}
	if r.parallelFetches <= 0 {
		r.parallelFetches = DEFAULT_PARALLEL_FETCHES
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveBlockQuery resolves every entity concurrently and returns their
// records flattened in input order, each range ascending. Any failure fails
// the whole call and no partial result is returned.
func (r *Resolver) ResolveBlockQuery(ctx context.Context, entityIds []common.EntityId, fields []common.BlockField) ([]common.BlockRecord, error) {
	start := time.Now()
	records, err := r.resolveBlockQuery(ctx, entityIds, fields)
	metrics.QueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FailedQueries.WithLabelValues(ErrorKind(err)).Inc()
		log.Debug().Err(err).Int("entities", len(entityIds)).Msg("Block query failed")
		return nil, err
	}

	metrics.ResolvedQueries.Inc()
	log.Debug().
		Int("entities", len(entityIds)).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Resolved block query")
	return records, nil
}

func (r *Resolver) resolveBlockQuery(ctx context.Context, entityIds []common.EntityId, fields []common.BlockField) ([]common.BlockRecord, error) {
	// reject foreign entities before any provider traffic
	ranges := make([]common.BlockRange, len(entityIds))
	for i, entityId := range entityIds {
		blockRange, err := blockRangeOf(entityId)
		if err != nil {
			return nil, err
		}
		ranges[i] = blockRange
	}

	results := make([][]common.BlockRecord, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, blockRange := range ranges {
		g.Go(func() error {
			records, err := r.resolveBlockRange(gctx, blockRange, fields)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, records := range results {
		total += len(records)
	}
	flattened := make([]common.BlockRecord, 0, total)
	for _, records := range results {
		flattened = append(flattened, records...)
	}
	return flattened, nil
}

func (r *Resolver) resolveBlockRange(ctx context.Context, blockRange common.BlockRange, fields []common.BlockField) ([]common.BlockRecord, error) {
	startNumber, err := r.resolveBlockNumber(ctx, blockRange.Start())
	if err != nil {
		return nil, err
	}

	endNumber := startNumber
	if endRef, ok := blockRange.End(); ok {
		endNumber, err = r.resolveBlockNumber(ctx, endRef)
		if err != nil {
			return nil, err
		}
		if startNumber > endNumber {
			return nil, &InvalidRangeError{Start: startNumber, End: endNumber}
		}
	}

	return r.fetchRange(ctx, startNumber, endNumber, fields)
}

func blockRangeOf(entityId common.EntityId) (common.BlockRange, error) {
	switch e := entityId.(type) {
	case common.BlockEntity:
		return e.Range, nil
	case *common.BlockEntity:
		if e != nil {
			return e.Range, nil
		}
		return common.BlockRange{}, &EntityKindMismatchError{Description: "nil block entity"}
	case nil:
		return common.BlockRange{}, &EntityKindMismatchError{Description: "nil entity"}
	default:
		return common.BlockRange{}, &EntityKindMismatchError{Description: entityId.String()}
	}
}
