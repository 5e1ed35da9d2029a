package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/resolver"
	"github.com/thirdweb-dev/blockquery/internal/rpc"
)

var (
	blocksStart  string
	blocksEnd    string
	blocksFields string

	blocksCmd = &cobra.Command{
		Use:          "blocks",
		Short:        "Resolve a block range and print the projected records",
		Long:         "Resolves --start (and optionally --end) against the configured RPC and prints the requested fields of every block as JSON.",
		SilenceUsage: true,
		RunE:         RunBlocks,
	}
)

func init() {
	blocksCmd.Flags().StringVar(&blocksStart, "start", string(common.BlockTagLatest), "First block of the range, a number or a tag")
	blocksCmd.Flags().StringVar(&blocksEnd, "end", "", "Last block of the range, a number or a tag")
	blocksCmd.Flags().StringVar(&blocksFields, "fields", "all", "Comma separated list of fields to return")
}

func RunBlocks(cmd *cobra.Command, args []string) error {
	entityId, fields, err := parseBlocksArgs(blocksStart, blocksEnd, blocksFields)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	rpcClient, err := rpc.Initialize()
	if err != nil {
		return fmt.Errorf("failed to initialize RPC: %w", err)
	}
	defer rpcClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := resolver.NewResolver(rpcClient).ResolveBlockQuery(ctx, []common.EntityId{entityId}, fields)
	if err != nil {
		log.Error().Err(err).Str("kind", resolver.ErrorKind(err)).Msg("Failed to resolve blocks")
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

func parseBlocksArgs(start string, end string, fields string) (common.EntityId, []common.BlockField, error) {
	startRef, err := common.ParseBlockRef(start)
	if err != nil {
		return nil, nil, err
	}
	var endRef *common.BlockRef
	if end != "" {
		ref, err := common.ParseBlockRef(end)
		if err != nil {
			return nil, nil, err
		}
		endRef = &ref
	}

	blockFields, err := common.ParseBlockFields(strings.Split(fields, ","))
	if err != nil {
		return nil, nil, err
	}
	return common.BlockEntity{Range: common.NewBlockRange(startRef, endRef)}, blockFields, nil
}
