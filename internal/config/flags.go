package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags from args (normally
// os.Args[1:]).
//
// Flags:
//
//	-d database file path (SQLite)
//	-state-file filter-state slot file path
//	-seed-file bundled plant catalog file path
//	-unsplash-access-key Unsplash API client_id
//	-base-url Unsplash API base URL
//	-request-timeout outbound request timeout (e.g., "15s", "1m")
//	-page-size photo search page size
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var databaseDSN string
	var stateFile string
	var seedFile string
	var unsplashAccessKey string
	var baseURL string
	var requestTimeout time.Duration
	var pageSize int
	var jsonConfigPath string

	fs := flag.NewFlagSet("plantarium", flag.ContinueOnError)
	fs.StringVar(&databaseDSN, "d", "", "Database file path")
	fs.StringVar(&stateFile, "state-file", "", "Filter state file path")
	fs.StringVar(&seedFile, "seed-file", "", "Seed plant catalog file path")
	fs.StringVar(&unsplashAccessKey, "unsplash-access-key", "", "Unsplash API access key")
	fs.StringVar(&baseURL, "base-url", "", "Unsplash API base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	fs.IntVar(&pageSize, "page-size", 0, "Photo search page size")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			UnsplashAccessKey: unsplashAccessKey,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			StateFile: stateFile,
			SeedFile:  seedFile,
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Gallery: Gallery{
			PageSize: pageSize,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
