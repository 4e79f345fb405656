// Package tiles serves raster or vector tiles from a PMTiles archive.
package tiles

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"routeview/config"
	domainerrors "routeview/internal/domain/errors"

	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
	"github.com/protomaps/go-pmtiles/pmtiles"
	"go.uber.org/fx"
)

const defaultCacheSize = 64

// supportedExtensions are the tile formats a PMTiles archive may hold.
var supportedExtensions = map[string]bool{
	"mvt":  true,
	"png":  true,
	"jpg":  true,
	"webp": true,
	"avif": true,
}

// Tile is one tile read from the archive.
type Tile struct {
	Data    []byte
	Headers map[string]string
}

// Source reads tiles from a single PMTiles tileset.
// A Source with no archive configured reports Enabled() false and rejects every request.
type Source struct {
	server  *pmtiles.Server
	tileset string
	maxZoom maptile.Zoom
	logger  *slog.Logger
}

// SourceParams holds dependencies for the tile source, injected by Fx.
type SourceParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewSource opens the configured archive. A missing or disabled archive is not an error.
func NewSource(params SourceParams) (*Source, error) {
	logger := params.Logger
	src := &Source{logger: logger, maxZoom: 19}

	tilesCfg := params.Config.Tiles
	if tilesCfg == nil || tilesCfg.PMTiles == nil || !tilesCfg.PMTiles.Enabled {
		logger.Info("PMTiles archive disabled, serving remote tiles only")

		return src, nil
	}
	if tilesCfg.MaxZoom > 0 {
		src.maxZoom = maptile.Zoom(tilesCfg.MaxZoom)
	}

	cfg := tilesCfg.PMTiles
	if cfg.Source == "" {
		return nil, errors.New("PMTiles source is required when enabled")
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	bucketPath, prefix, tileset := parseSourcePath(cfg.Source)

	// pmtiles requires a *log.Logger
	silentLogger := log.New(io.Discard, "", 0)

	server, err := pmtiles.NewServer(bucketPath, prefix, silentLogger, cacheSize, "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PMTiles server")
	}
	server.Start()

	src.server = server
	src.tileset = tileset

	logger.Info("PMTiles archive opened",
		slog.String("source", cfg.Source),
		slog.String("tileset", tileset),
		slog.Int("cache_size", cacheSize),
	)

	return src, nil
}

// Enabled reports whether an archive is configured.
func (s *Source) Enabled() bool {
	return s != nil && s.server != nil
}

// Tileset returns the name requests must use, e.g. "addis" for addis.pmtiles.
func (s *Source) Tileset() string {
	if s == nil {
		return ""
	}

	return s.tileset
}

// Get reads tile z/x/y of the tileset in the given format.
func (s *Source) Get(ctx context.Context, tileset string, z, x, y uint32, ext string) (*Tile, error) {
	if !s.Enabled() {
		return nil, domainerrors.ErrTilesDisabled
	}

	tile, err := s.validate(tileset, z, x, y, ext)
	if err != nil {
		return nil, err
	}

	tilePath := fmt.Sprintf("/%s/%d/%d/%d.%s", s.tileset, tile.Z, tile.X, tile.Y, ext)
	status, headers, data := s.server.Get(ctx, tilePath)

	switch {
	case status == http.StatusOK:
		return &Tile{Data: data, Headers: headers}, nil
	case status == http.StatusNoContent, status == http.StatusNotFound:
		return nil, domainerrors.ErrTileNotFound.WithDetails(tilePath)
	default:
		s.logger.Warn("PMTiles read failed",
			slog.String("path", tilePath),
			slog.Int("status", status),
		)

		return nil, domainerrors.ErrInternalError.WithDetails(fmt.Sprintf("tile read returned status %d", status))
	}
}

func (s *Source) validate(tileset string, z, x, y uint32, ext string) (maptile.Tile, error) {
	if tileset != s.tileset {
		return maptile.Tile{}, domainerrors.ErrTileNotFound.WithDetails("unknown tileset " + tileset)
	}
	if !supportedExtensions[ext] {
		return maptile.Tile{}, domainerrors.ErrTileNotFound.WithDetails("unsupported tile format " + ext)
	}
	if maptile.Zoom(z) > s.maxZoom {
		return maptile.Tile{}, domainerrors.ErrTileNotFound.WithDetails(fmt.Sprintf("zoom %d exceeds %d", z, s.maxZoom))
	}

	tile := maptile.New(x, y, maptile.Zoom(z))
	if limit := uint32(1) << tile.Z; tile.X >= limit || tile.Y >= limit {
		return maptile.Tile{}, domainerrors.ErrTileNotFound.WithDetails(fmt.Sprintf("tile %d/%d/%d is out of range", z, x, y))
	}

	return tile, nil
}

// parseSourcePath splits a source into the bucket URL, the key prefix inside the
// bucket and the tileset name.
// Examples:
//   - "/data/addis.pmtiles" -> ("file:///data", "", "addis")
//   - "https://example.com/tiles/addis.pmtiles" -> ("https://example.com/tiles", "", "addis")
//   - "gs://bucket/maps/addis.pmtiles" -> ("gs://bucket", "maps", "addis")
func parseSourcePath(source string) (bucketPath, prefix, tilesetName string) {
	if strings.HasPrefix(source, "file://") {
		path := strings.TrimPrefix(source, "file://")
		tilesetName = strings.TrimSuffix(filepath.Base(path), ".pmtiles")

		return "file://" + filepath.Dir(path), "", tilesetName
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		lastSlash := strings.LastIndex(source, "/")
		tilesetName = strings.TrimSuffix(source[lastSlash+1:], ".pmtiles")

		return source[:lastSlash], "", tilesetName
	}

	if scheme, rest, ok := strings.Cut(source, "://"); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		dir, file := "", key
		if idx := strings.LastIndex(key, "/"); idx >= 0 {
			dir, file = key[:idx], key[idx+1:]
		}

		return scheme + "://" + bucket, dir, strings.TrimSuffix(file, ".pmtiles")
	}

	tilesetName = strings.TrimSuffix(filepath.Base(source), ".pmtiles")

	return "file://" + filepath.Dir(source), "", tilesetName
}
