package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/blockquery/api"
	"github.com/thirdweb-dev/blockquery/internal/common"
	"github.com/thirdweb-dev/blockquery/internal/resolver"
)

type BlockQueryResolver interface {
	ResolveBlockQuery(ctx context.Context, entityIds []common.EntityId, fields []common.BlockField) ([]common.BlockRecord, error)
}

type BlocksHandler struct {
	resolver BlockQueryResolver
	chainId  string
}

func NewBlocksHandler(resolver BlockQueryResolver, chainId string) *BlocksHandler {
	return &BlocksHandler{resolver: resolver, chainId: chainId}
}

// GetBlocks resolves one or more block ranges.
// Example: GET /blocks?range=1:3&range=latest&field=number&field=hash
// Without any field every projectable field is returned.
func (h *BlocksHandler) GetBlocks(c *gin.Context) {
	params, err := api.ParseBlockQueryParams(c.Request)
	if err != nil {
		api.BadRequestErrorHandler(c, err, "invalid_params")
		return
	}
	if len(params.Ranges) == 0 {
		api.BadRequestErrorHandler(c, fmt.Errorf("at least one range is required"), "invalid_params")
		return
	}

	entityIds := make([]common.EntityId, 0, len(params.Ranges))
	for _, r := range params.Ranges {
		blockRange, err := common.ParseBlockRange(r)
		if err != nil {
			api.BadRequestErrorHandler(c, err, "invalid_params")
			return
		}
		entityIds = append(entityIds, common.BlockEntity{Range: blockRange})
	}

	fields := common.AllBlockFields()
	if len(params.Fields) > 0 {
		fields, err = common.ParseBlockFields(params.Fields)
		if err != nil {
			api.BadRequestErrorHandler(c, err, "invalid_params")
			return
		}
	}

	records, err := h.resolver.ResolveBlockQuery(c.Request.Context(), entityIds, fields)
	if err != nil {
		handleResolverError(c, err)
		return
	}

	sendJSONResponse(c, api.QueryResponse{
		Meta: api.Meta{
			ChainId:    h.chainId,
			Ranges:     len(entityIds),
			TotalItems: len(records),
		},
		Data: records,
	})
}

func handleResolverError(c *gin.Context, err error) {
	kind := resolver.ErrorKind(err)

	var (
		notFound *resolver.BlockNotFoundError
		provider *resolver.ProviderError
	)
	switch {
	case errors.As(err, &notFound):
		api.NotFoundErrorHandler(c, err, kind)
	case errors.As(err, &provider):
		log.Error().Err(err).Msg("Provider failure while resolving blocks")
		api.BadGatewayErrorHandler(c, err, kind)
	case kind == "unknown" || kind == "canceled":
		log.Error().Err(err).Msg("Error resolving blocks")
		api.InternalErrorHandler(c)
	default:
		api.BadRequestErrorHandler(c, err, kind)
	}
}
