package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/blockquery/internal/middleware"
)

// LatestBlockReader is the part of the RPC client the health check needs.
type LatestBlockReader interface {
	GetLatestBlockNumber(ctx context.Context) (uint64, error)
}

type RouterOptions struct {
	MetricsEnabled bool
	// Node, when set, is queried by /health
	Node LatestBlockReader
}

// NewRouter wires the block query endpoints onto a fresh gin engine.
func NewRouter(blocks *BlocksHandler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	r.GET("/health", healthHandler(opts.Node))
	if opts.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/blocks", blocks.GetBlocks)
	return r
}

func healthHandler(node LatestBlockReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if node == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		latest, err := node.GetLatestBlockNumber(c.Request.Context())
		if err != nil {
			log.Warn().Err(err).Msg("Health check failed to reach RPC")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "latest_block": latest})
	}
}

func sendJSONResponse(c *gin.Context, response interface{}) {
	c.JSON(http.StatusOK, response)
}
