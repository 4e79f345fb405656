package tiles

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"routeview/config"
	domainerrors "routeview/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourcePath(t *testing.T) {
	tests := []struct {
		name            string
		source          string
		expectedBucket  string
		expectedPrefix  string
		expectedTileset string
	}{
		{
			name:            "file:// prefix with absolute path",
			source:          "file:///srv/tiles/addis.pmtiles",
			expectedBucket:  "file:///srv/tiles",
			expectedTileset: "addis",
		},
		{
			name:            "local path without prefix",
			source:          "/srv/tiles/addis.pmtiles",
			expectedBucket:  "file:///srv/tiles",
			expectedTileset: "addis",
		},
		{
			name:            "root path file",
			source:          "/addis.pmtiles",
			expectedBucket:  "file:///",
			expectedTileset: "addis",
		},
		{
			name:            "https URL with port",
			source:          "https://tiles.example.com:8443/v1/addis.pmtiles",
			expectedBucket:  "https://tiles.example.com:8443/v1",
			expectedTileset: "addis",
		},
		{
			name:            "filename without extension",
			source:          "/srv/tiles/basemap",
			expectedBucket:  "file:///srv/tiles",
			expectedTileset: "basemap",
		},
		{
			name:            "gs bucket root",
			source:          "gs://my-bucket/addis.pmtiles",
			expectedBucket:  "gs://my-bucket",
			expectedTileset: "addis",
		},
		{
			name:            "s3 bucket with nested prefix",
			source:          "s3://my-bucket/maps/2024/addis.pmtiles",
			expectedBucket:  "s3://my-bucket",
			expectedPrefix:  "maps/2024",
			expectedTileset: "addis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, prefix, tileset := parseSourcePath(tt.source)
			assert.Equal(t, tt.expectedBucket, bucket)
			assert.Equal(t, tt.expectedPrefix, prefix)
			assert.Equal(t, tt.expectedTileset, tileset)
		})
	}
}

func newDisabledSource(t *testing.T) *Source {
	t.Helper()

	src, err := NewSource(SourceParams{
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return src
}

func TestNewSource_Disabled(t *testing.T) {
	src := newDisabledSource(t)

	assert.False(t, src.Enabled())
	_, err := src.Get(context.Background(), "addis", 12, 0, 0, "png")
	assert.Equal(t, domainerrors.ErrTilesDisabled, err)
}

func TestNewSource_EnabledWithoutSource(t *testing.T) {
	_, err := NewSource(SourceParams{
		Config: &config.Config{Tiles: &config.TilesConfig{PMTiles: &config.PMTilesConfig{Enabled: true}}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.Error(t, err)
}

func TestSource_Validate(t *testing.T) {
	src := &Source{tileset: "addis", maxZoom: 19}

	tests := []struct {
		name    string
		tileset string
		z, x, y uint32
		ext     string
		wantErr bool
	}{
		{name: "valid", tileset: "addis", z: 12, x: 2489, y: 1916, ext: "png"},
		{name: "world tile", tileset: "addis", z: 0, x: 0, y: 0, ext: "mvt"},
		{name: "unknown tileset", tileset: "nairobi", z: 12, x: 1, y: 1, ext: "png", wantErr: true},
		{name: "unsupported format", tileset: "addis", z: 12, x: 1, y: 1, ext: "gif", wantErr: true},
		{name: "zoom above max", tileset: "addis", z: 20, x: 1, y: 1, ext: "png", wantErr: true},
		{name: "x out of range", tileset: "addis", z: 1, x: 2, y: 0, ext: "png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile, err := src.validate(tt.tileset, tt.z, tt.x, tt.y, tt.ext)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.x, tile.X)
			assert.Equal(t, tt.y, tile.Y)
		})
	}
}
