package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Prettify bool   `mapstructure:"prettify"`
}

type RPCBatchConfig struct {
	BlocksPerRequest int `mapstructure:"blocksPerRequest"`
	BatchDelay       int `mapstructure:"batchDelay"`
}

type RPCConfig struct {
	URL     string         `mapstructure:"url"`
	Timeout int            `mapstructure:"timeout"`
	Blocks  RPCBatchConfig `mapstructure:"blocks"`
	ChainID string
}

type ResolverConfig struct {
	ParallelFetches int  `mapstructure:"parallelFetches"`
	UseBatching     bool `mapstructure:"useBatching"`
}

type APIConfig struct {
	Host           string `mapstructure:"host"`
	MetricsEnabled bool   `mapstructure:"metricsEnabled"`
}

type Config struct {
	RPC      RPCConfig      `mapstructure:"rpc"`
	Log      LogConfig      `mapstructure:"log"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	API      APIConfig      `mapstructure:"api"`
}

var Cfg Config

func LoadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		// a config file is optional, flags and env cover everything
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	// sets e.g. RPC_URL to rpc.url
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}
