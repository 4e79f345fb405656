package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	defaultBackendURL     = "http://127.0.0.1:5000"
	defaultCenterLat      = 9.0107
	defaultCenterLng      = 38.7613
	defaultZoom           = 12
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
	defaultTileURL        = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultAttribution    = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	defaultMaxZoom        = 19
)

// DefaultFitPadding is the margin, in pixels, kept around a fitted result path.
const DefaultFitPadding = 50

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Backend configuration for the route-planning service
	Backend *BackendConfig `json:"backend" yaml:"backend"`

	// Map configuration for the initial view and viewport fitting
	Map *MapConfig `json:"map" yaml:"map"`

	// Tiles configuration for the base map layer
	Tiles *TilesConfig `json:"tiles" yaml:"tiles"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// BackendConfig defines how the route-planning backend is reached
type BackendConfig struct {
	// Base URL serving /api/locations and /api/findpath
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Per-request timeout; zero waits indefinitely
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// MapConfig defines the initial camera and the pixel viewport used when fitting bounds
type MapConfig struct {
	CenterLat      float64 `json:"centerLat" yaml:"centerLat"`
	CenterLng      float64 `json:"centerLng" yaml:"centerLng"`
	Zoom           int     `json:"zoom" yaml:"zoom"`
	ViewportWidth  int     `json:"viewportWidth" yaml:"viewportWidth"`
	ViewportHeight int     `json:"viewportHeight" yaml:"viewportHeight"`
	FitPadding     int     `json:"fitPadding" yaml:"fitPadding"`
}

// TilesConfig defines the raster tile source shown under the overlays
type TilesConfig struct {
	// URL template consumed read-only by the browser
	URLTemplate string `json:"urlTemplate" yaml:"urlTemplate"`

	// Attribution required by the tile provider's license
	Attribution string `json:"attribution" yaml:"attribution"`

	MaxZoom int `json:"maxZoom" yaml:"maxZoom"`

	// PMTiles archive configuration for self-hosted tiles
	PMTiles *PMTilesConfig `json:"pmtiles" yaml:"pmtiles"`
}

// PMTilesConfig defines an optional PMTiles archive served under /tiles
type PMTilesConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// PMTiles source URL (local file path, HTTP URL, or file:// URL)
	Source string `json:"source" yaml:"source"`

	// Number of archive directories kept in memory
	CacheSize int `json:"cacheSize" yaml:"cacheSize"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment variables override file values.
	// Example: BACKEND_BASEURL -> backend.baseUrl
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	return cfg, nil
}

// ApplyDefaults fills unset sections with the values the map client was built around.
func (c *Config) ApplyDefaults() {
	if c.Backend == nil {
		c.Backend = &BackendConfig{}
	}
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		c.Backend.BaseURL = defaultBackendURL
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")

	if c.Map == nil {
		c.Map = &MapConfig{}
	}
	// 0,0 counts as unset.
	if c.Map.CenterLat == 0 && c.Map.CenterLng == 0 {
		c.Map.CenterLat = defaultCenterLat
		c.Map.CenterLng = defaultCenterLng
	}
	if c.Map.Zoom <= 0 {
		c.Map.Zoom = defaultZoom
	}
	if c.Map.ViewportWidth <= 0 {
		c.Map.ViewportWidth = defaultViewportWidth
	}
	if c.Map.ViewportHeight <= 0 {
		c.Map.ViewportHeight = defaultViewportHeight
	}
	if c.Map.FitPadding <= 0 {
		c.Map.FitPadding = DefaultFitPadding
	}

	if c.Tiles == nil {
		c.Tiles = &TilesConfig{}
	}
	if c.Tiles.URLTemplate == "" {
		c.Tiles.URLTemplate = defaultTileURL
		if c.Tiles.Attribution == "" {
			c.Tiles.Attribution = defaultAttribution
		}
	}
	if c.Tiles.MaxZoom <= 0 {
		c.Tiles.MaxZoom = defaultMaxZoom
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
