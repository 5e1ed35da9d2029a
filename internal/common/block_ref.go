package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

type BlockTag string

const (
	BlockTagLatest    BlockTag = "latest"
	BlockTagEarliest  BlockTag = "earliest"
	BlockTagPending   BlockTag = "pending"
	BlockTagSafe      BlockTag = "safe"
	BlockTagFinalized BlockTag = "finalized"
)

// BlockRef points at a block either by number or by a tag the provider
// resolves against current chain state.
type BlockRef struct {
	number uint64
	tag    BlockTag
}

func NumberRef(number uint64) BlockRef {
	return BlockRef{number: number}
}

func TagRef(tag BlockTag) BlockRef {
	return BlockRef{tag: tag}
}

// Number returns the block number if the reference is concrete.
func (r BlockRef) Number() (uint64, bool) {
	if r.tag != "" {
		return 0, false
	}
	return r.number, true
}

// Tag returns the symbolic tag if the reference is not a number.
func (r BlockRef) Tag() (BlockTag, bool) {
	return r.tag, r.tag != ""
}

func (r BlockRef) IsTag() bool {
	return r.tag != ""
}

func (r BlockRef) String() string {
	if r.tag != "" {
		return string(r.tag)
	}
	return strconv.FormatUint(r.number, 10)
}

// RPCArg renders the reference the way eth_getBlockByNumber expects it.
func (r BlockRef) RPCArg() string {
	if r.tag != "" {
		return string(r.tag)
	}
	return hexutil.EncodeUint64(r.number)
}

// ParseBlockRef accepts a decimal number, a 0x-prefixed quantity or a tag name.
// Unknown names are kept as opaque tags so chain specific aliases reach the provider untouched.
func ParseBlockRef(s string) (BlockRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BlockRef{}, fmt.Errorf("empty block reference")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := hexutil.DecodeUint64(strings.ToLower(s))
		if err != nil {
			return BlockRef{}, fmt.Errorf("invalid block number %q: %w", s, err)
		}
		return NumberRef(n), nil
	}
	if s[0] >= '0' && s[0] <= '9' {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return BlockRef{}, fmt.Errorf("invalid block number %q: %w", s, err)
		}
		return NumberRef(n), nil
	}
	return TagRef(BlockTag(strings.ToLower(s))), nil
}

// BlockRange is an inclusive span of blocks. A range without an end
// selects the single block at start.
type BlockRange struct {
	start BlockRef
	end   *BlockRef
}

func NewBlockRange(start BlockRef, end *BlockRef) BlockRange {
	if end != nil {
		e := *end
		end = &e
	}
	return BlockRange{start: start, end: end}
}

func (r BlockRange) Start() BlockRef {
	return r.start
}

func (r BlockRange) End() (BlockRef, bool) {
	if r.end == nil {
		return BlockRef{}, false
	}
	return *r.end, true
}

func (r BlockRange) String() string {
	if r.end == nil {
		return r.start.String()
	}
	return r.start.String() + ":" + r.end.String()
}

// ParseBlockRange parses "start" or "start:end".
func ParseBlockRange(s string) (BlockRange, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return BlockRange{}, fmt.Errorf("invalid block range %q", s)
	}
	start, err := ParseBlockRef(parts[0])
	if err != nil {
		return BlockRange{}, err
	}
	if len(parts) == 1 {
		return NewBlockRange(start, nil), nil
	}
	end, err := ParseBlockRef(parts[1])
	if err != nil {
		return BlockRange{}, err
	}
	return NewBlockRange(start, &end), nil
}
