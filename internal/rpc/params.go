package rpc

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/thirdweb-dev/blockquery/internal/common"
)

func GetBlockByRefWithoutTransactionsParams(ref common.BlockRef) []interface{} {
	return []interface{}{ref.RPCArg(), false}
}

func GetBlockWithoutTransactionsParams(blockNum uint64) []interface{} {
	return []interface{}{hexutil.EncodeUint64(blockNum), false}
}
