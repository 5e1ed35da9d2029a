package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
	"github.com/rs/zerolog/log"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// BlockQueryParams are the query string parameters of GET /blocks.
// Both ranges and fields may be repeated.
type BlockQueryParams struct {
	Ranges []string `schema:"range"`
	Fields []string `schema:"field"`
}

type Meta struct {
	ChainId    string `json:"chain_id,omitempty"`
	Ranges     int    `json:"ranges"`
	TotalItems int    `json:"total_items"`
}

type QueryResponse struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

func writeError(c *gin.Context, code int, message string, kind string) {
	c.AbortWithStatusJSON(code, Error{
		Code:    code,
		Message: message,
		Kind:    kind,
	})
}

var (
	BadRequestErrorHandler = func(c *gin.Context, err error, kind string) {
		writeError(c, http.StatusBadRequest, err.Error(), kind)
	}
	NotFoundErrorHandler = func(c *gin.Context, err error, kind string) {
		writeError(c, http.StatusNotFound, err.Error(), kind)
	}
	BadGatewayErrorHandler = func(c *gin.Context, err error, kind string) {
		writeError(c, http.StatusBadGateway, err.Error(), kind)
	}
	InternalErrorHandler = func(c *gin.Context) {
		writeError(c, http.StatusInternalServerError, "An unexpected error occurred.", "")
	}
)

func ParseBlockQueryParams(r *http.Request) (BlockQueryParams, error) {
	var params BlockQueryParams
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		log.Error().Err(err).Msg("Error parsing query params")
		return BlockQueryParams{}, err
	}
	return params, nil
}
