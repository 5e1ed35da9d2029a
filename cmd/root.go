package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	configs "github.com/thirdweb-dev/blockquery/configs"
	"github.com/thirdweb-dev/blockquery/internal/env"
	customLogger "github.com/thirdweb-dev/blockquery/internal/log"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          "blockquery",
		Short:        "Resolve block ranges against an Ethereum JSON-RPC node",
		Long:         "blockquery resolves block references and ranges against an Ethereum JSON-RPC node and returns projected block records.",
		SilenceUsage: true,
		RunE:         RunApi,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	rootCmd.PersistentFlags().String("rpc-url", "", "RPC Url to resolve blocks against")
	rootCmd.PersistentFlags().Int("rpc-timeout", 0, "Milliseconds to wait for a single RPC request")
	rootCmd.PersistentFlags().Int("rpc-blocks-blocksPerRequest", 0, "How many blocks to fetch per batch request")
	rootCmd.PersistentFlags().Int("rpc-blocks-batchDelay", 0, "Milliseconds to wait between batches of blocks when fetching from the RPC")
	rootCmd.PersistentFlags().Int("resolver-parallel-fetches", 0, "How many block fetches may be in flight per range")
	rootCmd.PersistentFlags().Bool("resolver-use-batching", true, "Whether to fetch ranges with JSON-RPC batch requests")
	rootCmd.PersistentFlags().String("log-level", "", "Log level to use for the application")
	rootCmd.PersistentFlags().Bool("log-prettify", false, "Whether to prettify the log output")
	rootCmd.PersistentFlags().String("api-host", ":3000", "Address the API server listens on")
	rootCmd.PersistentFlags().Bool("api-metrics-enabled", true, "Whether to expose prometheus metrics on /metrics")
	viper.BindPFlag("rpc.url", rootCmd.PersistentFlags().Lookup("rpc-url"))
	viper.BindPFlag("rpc.timeout", rootCmd.PersistentFlags().Lookup("rpc-timeout"))
	viper.BindPFlag("rpc.blocks.blocksPerRequest", rootCmd.PersistentFlags().Lookup("rpc-blocks-blocksPerRequest"))
	viper.BindPFlag("rpc.blocks.batchDelay", rootCmd.PersistentFlags().Lookup("rpc-blocks-batchDelay"))
	viper.BindPFlag("resolver.parallelFetches", rootCmd.PersistentFlags().Lookup("resolver-parallel-fetches"))
	viper.BindPFlag("resolver.useBatching", rootCmd.PersistentFlags().Lookup("resolver-use-batching"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.prettify", rootCmd.PersistentFlags().Lookup("log-prettify"))
	viper.BindPFlag("api.host", rootCmd.PersistentFlags().Lookup("api-host"))
	viper.BindPFlag("api.metricsEnabled", rootCmd.PersistentFlags().Lookup("api-metrics-enabled"))
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(apiCmd)
}

func initConfig() {
	env.Load()
	if err := configs.LoadConfig(cfgFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	customLogger.InitLogger()
}
