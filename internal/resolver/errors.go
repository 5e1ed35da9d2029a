package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/thirdweb-dev/blockquery/internal/common"
)

// UnresolvableTagError is returned when the provider has no block, or no block
// number, for a symbolic reference.
type UnresolvableTagError struct {
	Ref common.BlockRef
}

func (e *UnresolvableTagError) Error() string {
	return fmt.Sprintf("unable to fetch block number for tag %s", e.Ref)
}

type InvalidRangeError struct {
	Start uint64
	End   uint64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid block range: start block %d is greater than end block %d", e.Start, e.End)
}

type EntityKindMismatchError struct {
	Description string
}

func (e *EntityKindMismatchError) Error() string {
	return fmt.Sprintf("mismatch between entity and entity id, %s can't be resolved as a block id", e.Description)
}

type BlockNotFoundError struct {
	Number uint64
}

func (e *BlockNotFoundError) Error() string {
	return fmt.Sprintf("block %d not found", e.Number)
}

// ProviderError wraps a transport or protocol failure of a provider call.
type ProviderError struct {
	Op  string
	Ref common.BlockRef
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Ref, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrorKind names the failure class of err, for metrics and API responses.
func ErrorKind(err error) string {
	var (
		unresolvable *UnresolvableTagError
		invalidRange *InvalidRangeError
		mismatch     *EntityKindMismatchError
		notFound     *BlockNotFoundError
		provider     *ProviderError
	)
	switch {
	case errors.As(err, &unresolvable):
		return "unresolvable_tag"
	case errors.As(err, &invalidRange):
		return "invalid_range"
	case errors.As(err, &mismatch):
		return "entity_kind_mismatch"
	case errors.As(err, &notFound):
		return "block_not_found"
	case errors.As(err, &provider):
		return "provider_failure"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unknown"
	}
}
