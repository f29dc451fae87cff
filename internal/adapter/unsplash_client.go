package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/plantarium-app/plantarium/models"
)

// UnsplashClientConfig configures the outbound Unsplash HTTP client.
type UnsplashClientConfig struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
}

type unsplashClient struct {
	client    *resty.Client
	accessKey string
}

// NewUnsplashClient constructs a [PhotoSearcher] talking to the Unsplash
// search endpoint. The access key is mandatory; base URL and timeout fall
// back to sensible defaults.
func NewUnsplashClient(cfg UnsplashClientConfig) (PhotoSearcher, error) {
	if cfg.AccessKey == "" {
		return nil, ErrMissingAccessKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.unsplash.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &unsplashClient{client: cli, accessKey: cfg.AccessKey}, nil
}

// SearchPhotos implements [PhotoSearcher].
func (u *unsplashClient) SearchPhotos(ctx context.Context, query string, page, perPage int) (models.UnsplashSearchResponse, error) {
	resp, err := u.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":     query,
			"page":      strconv.Itoa(page),
			"per_page":  strconv.Itoa(perPage),
			"client_id": u.accessKey,
		}).
		Get("/search/photos")
	if err != nil {
		return models.UnsplashSearchResponse{}, fmt.Errorf("search photos request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UnsplashSearchResponse{}, err
	}

	var sr models.UnsplashSearchResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return models.UnsplashSearchResponse{}, fmt.Errorf("decode search response: %w", err)
	}

	return sr, nil
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
}
