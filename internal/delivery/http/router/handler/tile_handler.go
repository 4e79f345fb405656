package handler

import (
	"net/http"
	"strconv"
	"strings"

	"routeview/internal/delivery/http/response"
	"routeview/internal/infra/tiles"

	"github.com/labstack/echo/v4"
)

// TileHandler serves tiles from the local PMTiles archive
type TileHandler struct {
	source *tiles.Source
}

// NewTileHandler creates a new TileHandler
func NewTileHandler(source *tiles.Source) *TileHandler {
	return &TileHandler{source: source}
}

// GetTile handles /tiles/:tileset/:z/:x/:y where y carries the format extension, e.g. 1916.png
func (h *TileHandler) GetTile(c echo.Context) error {
	z, errZ := strconv.ParseUint(c.Param("z"), 10, 32)
	x, errX := strconv.ParseUint(c.Param("x"), 10, 32)
	rawY, ext, ok := strings.Cut(c.Param("y"), ".")
	y, errY := strconv.ParseUint(rawY, 10, 32)
	if errZ != nil || errX != nil || errY != nil || !ok {
		return response.BadRequest(c, "INVALID_TILE", "Tile coordinates must be /{tileset}/{z}/{x}/{y}.{ext}")
	}

	tile, err := h.source.Get(c.Request().Context(), c.Param("tileset"), uint32(z), uint32(x), uint32(y), ext)
	if err != nil {
		return handleAppError(c, err)
	}

	contentType := tile.Headers[echo.HeaderContentType]
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	for key, value := range tile.Headers {
		if key != echo.HeaderContentType {
			c.Response().Header().Set(key, value)
		}
	}

	return c.Blob(http.StatusOK, contentType, tile.Data)
}
