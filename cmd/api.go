package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/thirdweb-dev/blockquery/configs"
	"github.com/thirdweb-dev/blockquery/internal/handlers"
	"github.com/thirdweb-dev/blockquery/internal/resolver"
	"github.com/thirdweb-dev/blockquery/internal/rpc"
)

var (
	apiCmd = &cobra.Command{
		Use:          "api",
		Short:        "Serve block queries over HTTP",
		Long:         "Starts an HTTP server answering GET /blocks with projected block records.",
		SilenceUsage: true,
		RunE:         RunApi,
	}
)

func RunApi(cmd *cobra.Command, args []string) error {
	rpcClient, err := rpc.Initialize()
	if err != nil {
		return fmt.Errorf("failed to initialize RPC: %w", err)
	}
	defer rpcClient.Close()

	if config.Cfg.Log.Level != "debug" && config.Cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	blockResolver := resolver.NewResolver(rpcClient)
	r := handlers.NewRouter(
		handlers.NewBlocksHandler(blockResolver, rpcClient.GetChainID().String()),
		handlers.RouterOptions{MetricsEnabled: config.Cfg.API.MetricsEnabled, Node: rpcClient},
	)

	log.Info().Str("host", config.Cfg.API.Host).Str("rpc", rpcClient.GetURL()).Msg("Starting API server")
	if err := r.Run(config.Cfg.API.Host); err != nil {
		return fmt.Errorf("API server stopped: %w", err)
	}
	return nil
}
