package mocks

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"
	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/rpc"
)

// MockIRPCClient is a testify mock of rpc.IRPCClient.
type MockIRPCClient struct {
	mock.Mock
}

var _ rpc.IRPCClient = (*MockIRPCClient)(nil)

func (_m *MockIRPCClient) GetBlockByNumber(ctx context.Context, ref common.BlockRef) (*common.Block, error) {
	ret := _m.Called(ctx, ref)

	var r0 *common.Block
	if rf, ok := ret.Get(0).(func(context.Context, common.BlockRef) *common.Block); ok {
		r0 = rf(ctx, ref)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*common.Block)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, common.BlockRef) error); ok {
		r1 = rf(ctx, ref)
	} else {
		r1 = ret.Error(1)
	}
	return r0, r1
}

func (_m *MockIRPCClient) GetBlocks(ctx context.Context, blockNumbers []uint64) []rpc.GetBlocksResult {
	ret := _m.Called(ctx, blockNumbers)

	if rf, ok := ret.Get(0).(func(context.Context, []uint64) []rpc.GetBlocksResult); ok {
		return rf(ctx, blockNumbers)
	}
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).([]rpc.GetBlocksResult)
}

func (_m *MockIRPCClient) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(uint64), ret.Error(1)
}

func (_m *MockIRPCClient) GetChainID() *big.Int {
	ret := _m.Called()
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(*big.Int)
}

func (_m *MockIRPCClient) GetURL() string {
	ret := _m.Called()
	return ret.String(0)
}

func (_m *MockIRPCClient) GetBlocksPerRequest() rpc.BlocksPerRequestConfig {
	ret := _m.Called()
	return ret.Get(0).(rpc.BlocksPerRequestConfig)
}

func (_m *MockIRPCClient) IsWebsocket() bool {
	ret := _m.Called()
	return ret.Bool(0)
}

func (_m *MockIRPCClient) Close() {
	_m.Called()
}

// NewMockIRPCClient creates a mock and registers its expectation check on t.
func NewMockIRPCClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIRPCClient {
	m := &MockIRPCClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
