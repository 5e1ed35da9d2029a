package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockRef(t *testing.T) {
	ref, err := ParseBlockRef("12345")
	require.NoError(t, err)
	n, ok := ref.Number()
	assert.True(t, ok)
	assert.Equal(t, uint64(12345), n)
	assert.Equal(t, "0x3039", ref.RPCArg())

	ref, err = ParseBlockRef("0x3039")
	require.NoError(t, err)
	n, ok = ref.Number()
	assert.True(t, ok)
	assert.Equal(t, uint64(12345), n)

	ref, err = ParseBlockRef("Latest")
	require.NoError(t, err)
	tag, ok := ref.Tag()
	assert.True(t, ok)
	assert.Equal(t, BlockTagLatest, tag)
	assert.Equal(t, "latest", ref.RPCArg())
	_, ok = ref.Number()
	assert.False(t, ok)

	_, err = ParseBlockRef("")
	assert.Error(t, err)
	_, err = ParseBlockRef("12abc")
	assert.Error(t, err)
	_, err = ParseBlockRef("0xzz")
	assert.Error(t, err)
}

func TestNumberRefZeroIsNotATag(t *testing.T) {
	ref := NumberRef(0)
	assert.False(t, ref.IsTag())
	assert.Equal(t, "0", ref.String())
	assert.Equal(t, "0x0", ref.RPCArg())
}

func TestParseBlockRange(t *testing.T) {
	r, err := ParseBlockRange("1:3")
	require.NoError(t, err)
	start, _ := r.Start().Number()
	assert.Equal(t, uint64(1), start)
	end, ok := r.End()
	require.True(t, ok)
	endNumber, _ := end.Number()
	assert.Equal(t, uint64(3), endNumber)
	assert.Equal(t, "1:3", r.String())

	r, err = ParseBlockRange("latest")
	require.NoError(t, err)
	_, ok = r.End()
	assert.False(t, ok)
	assert.Equal(t, "latest", r.String())

	r, err = ParseBlockRange("earliest:pending")
	require.NoError(t, err)
	assert.Equal(t, "earliest:pending", r.String())

	_, err = ParseBlockRange("1:2:3")
	assert.Error(t, err)
	_, err = ParseBlockRange("1:")
	assert.Error(t, err)
}

func TestBlockRangeIsImmutable(t *testing.T) {
	end := NumberRef(5)
	r := NewBlockRange(NumberRef(1), &end)
	end = NumberRef(100)

	got, ok := r.End()
	require.True(t, ok)
	n, _ := got.Number()
	assert.Equal(t, uint64(5), n)
}

func TestEntityDescriptions(t *testing.T) {
	assert.Equal(t, EntityKindBlock, BlockEntity{Range: NewBlockRange(NumberRef(1), nil)}.Kind())
	assert.Equal(t, "block 1", BlockEntity{Range: NewBlockRange(NumberRef(1), nil)}.String())
	assert.Equal(t, "account 0xabc", AccountEntity{Address: "0xabc"}.String())
	assert.Equal(t, "transaction 0x1,0x2", TransactionEntity{Hashes: []string{"0x1", "0x2"}}.String())
}

func TestBlockNumbersInRange(t *testing.T) {
	assert.Equal(t, []uint64{7}, BlockNumbersInRange(7, 7))
	assert.Equal(t, []uint64{1, 2, 3}, BlockNumbersInRange(1, 3))
	assert.Equal(t, []uint64{math.MaxUint64 - 1, math.MaxUint64}, BlockNumbersInRange(math.MaxUint64-1, math.MaxUint64))
	assert.Equal(t, []uint64{math.MaxUint64}, BlockNumbersInRange(math.MaxUint64, math.MaxUint64))
}

func TestSliceToChunks(t *testing.T) {
	chunks := SliceToChunks([]uint64{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]uint64{{1, 2}, {3, 4}, {5}}, chunks)
	assert.Equal(t, [][]uint64{{1, 2}}, SliceToChunks([]uint64{1, 2}, 0))
}
