package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] when a value is not set by any
// source.
const (
	DefaultDSN            = "plantarium.db"
	DefaultStateFile      = "plantarium_state.json"
	DefaultSeedFile       = "plants.json"
	DefaultBaseURL        = "https://api.unsplash.com"
	DefaultRequestTimeout = 15 * time.Second
	DefaultPageSize       = 25
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// UnsplashAccessKey is the client_id for the Unsplash search endpoint.
	UnsplashAccessKey string
	// Version is the application version string.
	Version string
}

// ClientAdapter holds network settings used by the outbound photo client.
type ClientAdapter struct {
	// BaseURL is the Unsplash API root.
	BaseURL string
	// RequestTimeout is the timeout for outbound search requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups local storage settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
	// StateFile is the path of the grow-zone filter slot.
	StateFile string
	// SeedFile is the path of the bundled plant catalog.
	SeedFile string
}

// ClientGallery holds photo search settings.
type ClientGallery struct {
	// PageSize is the per_page value of each search request.
	PageSize int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains outbound client address and timeout.
	Adapter ClientAdapter
	// Storage contains local storage settings.
	Storage ClientStorage
	// Gallery contains photo search settings.
	Gallery ClientGallery
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration, applying defaults for anything left
// unset.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			UnsplashAccessKey: cfg.App.UnsplashAccessKey,
			Version:           cfg.App.Version,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
			StateFile: cfg.Storage.StateFile,
			SeedFile:  cfg.Storage.SeedFile,
		},
		Gallery: ClientGallery{
			PageSize: cfg.Gallery.PageSize,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (c *ClientConfig) applyDefaults() {
	if c.Storage.DB.DSN == "" {
		c.Storage.DB.DSN = DefaultDSN
	}
	if c.Storage.StateFile == "" {
		c.Storage.StateFile = DefaultStateFile
	}
	if c.Storage.SeedFile == "" {
		c.Storage.SeedFile = DefaultSeedFile
	}
	if c.Adapter.BaseURL == "" {
		c.Adapter.BaseURL = DefaultBaseURL
	}
	if c.Adapter.RequestTimeout <= 0 {
		c.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if c.Gallery.PageSize <= 0 {
		c.Gallery.PageSize = DefaultPageSize
	}
}
