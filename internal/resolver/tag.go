package resolver

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/metrics"
)

// resolveBlockNumber turns ref into a concrete block number. Numbers are
// returned as is; tags cost exactly one provider call.
func (r *Resolver) resolveBlockNumber(ctx context.Context, ref common.BlockRef) (uint64, error) {
	if number, ok := ref.Number(); ok {
		return number, nil
	}

	tag, _ := ref.Tag()
	metrics.TagResolutions.WithLabelValues(tagLabel(tag)).Inc()

	block, err := r.provider.GetBlockByNumber(ctx, ref)
	if err != nil {
		return 0, &ProviderError{Op: "resolve tag", Ref: ref, Err: err}
	}
	// pending blocks may come back without a number
	if block == nil || block.Number == nil {
		return 0, &UnresolvableTagError{Ref: ref}
	}

	log.Debug().Str("tag", string(tag)).Uint64("block_number", *block.Number).Msg("Resolved block tag")
	return *block.Number, nil
}

func tagLabel(tag common.BlockTag) string {
	switch tag {
	case common.BlockTagLatest, common.BlockTagEarliest, common.BlockTagPending, common.BlockTagSafe, common.BlockTagFinalized:
		return string(tag)
	default:
		return "other"
	}
}
