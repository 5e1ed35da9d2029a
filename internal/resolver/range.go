package resolver

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// recordSegmentSize is how many record slots the per-block fetcher reserves
// at a time. Slots are only reserved for fetches that are about to start.
const recordSegmentSize = 1024

// fetchRange fetches and projects every block in [start, end]. The caller
// guarantees start <= end. Records come back in ascending block order no
// matter in which order the fetches complete; the first failure aborts the
// whole range.
func (r *Resolver) fetchRange(ctx context.Context, start uint64, end uint64, fields []common.BlockField) ([]common.BlockRecord, error) {
	log.Debug().Uint64("start_block", start).Uint64("end_block", end).Msg("Fetching block range")

	var (
		records []common.BlockRecord
		err     error
	)
	if batcher, ok := r.provider.(BatchProvider); ok && r.useBatching {
		records, err = r.fetchRangeInBatches(ctx, batcher, start, end, fields)
	} else {
		records, err = r.fetchRangeByBlock(ctx, start, end, fields)
	}
	if err != nil {
		return nil, err
	}

	metrics.BlocksFetched.Add(float64(len(records)))
	metrics.ObserveFetchedBlock(end)
	return records, nil
}

func (r *Resolver) fetchRangeByBlock(ctx context.Context, start uint64, end uint64, fields []common.BlockField) ([]common.BlockRecord, error) {
	var (
		segments [][]common.BlockRecord
		segment  []common.BlockRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelFetches)
	for number := start; ; number++ {
		if gctx.Err() != nil {
			break
		}
		if len(segment) == cap(segment) {
			segment = make([]common.BlockRecord, 0, segmentLen(number, end, recordSegmentSize))
			segments = append(segments, segment)
		}
		segment = segment[:len(segment)+1]
		slot := &segment[len(segment)-1]
		segments[len(segments)-1] = segment

		g.Go(func() error {
			record, err := r.fetchBlock(gctx, number, fields)
			if err != nil {
				return err
			}
			*slot = record
			return nil
		})
		if number == end {
			break
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop may have stopped early because the caller went away
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return flatten(segments), nil
}

func (r *Resolver) fetchBlock(ctx context.Context, number uint64, fields []common.BlockField) (common.BlockRecord, error) {
	ref := common.NumberRef(number)
	block, err := r.provider.GetBlockByNumber(ctx, ref)
	if err != nil {
		return common.BlockRecord{}, &ProviderError{Op: "fetch block", Ref: ref, Err: err}
	}
	if block == nil {
		return common.BlockRecord{}, &BlockNotFoundError{Number: number}
	}
	return projectFetched(block, number, fields), nil
}

// fetchRangeInBatches sends one GetBlocks call per chunk of at most
// batchSize blocks, with at most parallelFetches chunks in flight.
func (r *Resolver) fetchRangeInBatches(ctx context.Context, batcher BatchProvider, start uint64, end uint64, fields []common.BlockField) ([]common.BlockRecord, error) {
	batchSize := r.batchSize()
	var chunkRecords [][]common.BlockRecord

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelFetches)
	for chunkStart := start; ; {
		if gctx.Err() != nil {
			break
		}
		chunkEnd := chunkStart + uint64(segmentLen(chunkStart, end, batchSize)) - 1
		chunk := common.BlockNumbersInRange(chunkStart, chunkEnd)
		records := make([]common.BlockRecord, len(chunk))
		chunkRecords = append(chunkRecords, records)

		g.Go(func() error {
			results := batcher.GetBlocks(gctx, chunk)
			if len(results) != len(chunk) {
				return &ProviderError{
					Op:  "fetch blocks",
					Ref: common.NumberRef(chunk[0]),
					Err: fmt.Errorf("expected %d results, got %d", len(chunk), len(results)),
				}
			}
			for i, result := range results {
				number := chunk[i]
				if result.Error != nil {
					return &ProviderError{Op: "fetch block", Ref: common.NumberRef(number), Err: result.Error}
				}
				if result.Data == nil {
					return &BlockNotFoundError{Number: number}
				}
				records[i] = projectFetched(result.Data, number, fields)
			}
			return nil
		})
		if chunkEnd == end {
			break
		}
		chunkStart = chunkEnd + 1
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return flatten(chunkRecords), nil
}

// batchSize caps the resolver's chunk size at what the provider sends in a
// single request, so one GetBlocks call is one round trip.
func (r *Resolver) batchSize() int {
	size := r.blocksPerRequest
	if limited, ok := r.provider.(batchLimiter); ok {
		if limit := limited.GetBlocksPerRequest().Blocks; limit > 0 && (size <= 0 || limit < size) {
			size = limit
		}
	}
	if size <= 0 {
		size = 1
	}
	return size
}

// segmentLen is min(size, end-from+1) without overflowing at the top of the
// uint64 range. from <= end and size > 0.
func segmentLen(from uint64, end uint64, size int) int {
	if end-from < uint64(size) {
		return int(end-from) + 1
	}
	return size
}

func flatten(parts [][]common.BlockRecord) []common.BlockRecord {
	total := 0
	for _, part := range parts {
		total += len(part)
	}
	flattened := make([]common.BlockRecord, 0, total)
	for _, part := range parts {
		flattened = append(flattened, part...)
	}
	return flattened
}

// projectFetched projects block and makes sure the record carries the number
// it was fetched under.
func projectFetched(block *common.Block, number uint64, fields []common.BlockField) common.BlockRecord {
	record := ProjectBlock(block, fields)
	if record.Number == nil {
		record.Number = common.Ptr(number)
	}
	return record
}
