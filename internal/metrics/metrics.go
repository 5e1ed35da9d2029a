package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RPC Metrics
var (
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rpc_requests_total",
		Help: "The total number of RPC requests by method and outcome",
	}, []string{"method", "status"})

	RPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rpc_request_duration_seconds",
		Help:    "Time taken by RPC requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	RPCBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rpc_batch_size",
		Help:    "The number of calls sent in a single RPC batch",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// Resolver Metrics
var (
	ResolvedQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resolver_queries_total",
		Help: "The total number of block queries resolved successfully",
	})

	FailedQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_failed_queries_total",
		Help: "The total number of block queries that failed, by error kind",
	}, []string{"kind"})

	TagResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_tag_resolutions_total",
		Help: "The number of block tags resolved through the provider",
	}, []string{"tag"})

	BlocksFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resolver_blocks_fetched_total",
		Help: "The total number of blocks fetched and projected",
	})

	HighestFetchedBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "resolver_highest_fetched_block",
		Help: "The highest block number fetched since startup",
	})

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resolver_query_duration_seconds",
		Help:    "Time taken to resolve a block query",
		Buckets: prometheus.DefBuckets,
	})
)

var (
	highestFetchedMu   sync.Mutex
	highestFetched     uint64
	highestFetchedSeen bool
)

// ObserveFetchedBlock raises HighestFetchedBlock to number. Lower numbers
// from ranges finishing out of order leave the gauge untouched.
func ObserveFetchedBlock(number uint64) {
	highestFetchedMu.Lock()
	defer highestFetchedMu.Unlock()
	if highestFetchedSeen && number <= highestFetched {
		return
	}
	highestFetched = number
	highestFetchedSeen = true
	HighestFetchedBlock.Set(float64(number))
}
