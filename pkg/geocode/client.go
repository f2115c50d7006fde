package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/massfitdev/massfit-bot/pkg/config"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

const (
	defaultBaseURL             = "https://nominatim.openstreetmap.org"
	responseBodyReadLimit int64 = 1024
)

// AddressNotFound is the user-facing fallback when a coordinate pair cannot
// be resolved to an address.
const AddressNotFound = "Manzil aniqlanmadi"

// Client wraps the Nominatim reverse-geocoding API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
	userAgent  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured Nominatim base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the reverse-geocoding client from config.
func NewClient(cfg config.GeocodeConfig, opts ...Option) *Client {
	client := &Client{
		baseURL:   cfg.BaseURL,
		language:  cfg.Language,
		userAgent: cfg.UserAgent,
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client.httpClient = &http.Client{Timeout: timeout}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.language == "" {
		client.language = "uz"
	}
	if client.userAgent == "" {
		client.userAgent = "massfit-bot"
	}
	return client
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		HouseNumber   string `json:"house_number"`
		Road          string `json:"road"`
		Street        string `json:"street"`
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		CityDistrict  string `json:"city_district"`
		City          string `json:"city"`
	} `json:"address"`
}

// Reverse resolves a coordinate pair to a short address fragment.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "geocode client not configured")
	}

	endpoint := fmt.Sprintf("%s/reverse", strings.TrimRight(c.baseURL, "/"))
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("accept-language", c.language)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build reverse geocode request")
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute reverse geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "reverse geocode request failed")
	}

	var apiResp reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode reverse geocode response")
	}

	fragment := shortFragment(apiResp)
	if fragment == "" {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "no address components in response")
	}
	return fragment, nil
}

// ReverseOrFallback resolves coordinates best-effort, returning the fixed
// fallback text on any failure.
func (c *Client) ReverseOrFallback(ctx context.Context, lat, lon float64) string {
	address, err := c.Reverse(ctx, lat, lon)
	if err != nil {
		return AddressNotFound
	}
	return address
}

func shortFragment(resp reverseResponse) string {
	addr := resp.Address
	road := addr.Road
	if road == "" {
		road = addr.Street
	}
	area := addr.Neighbourhood
	if area == "" {
		area = addr.Suburb
	}
	district := addr.CityDistrict
	if district == "" {
		district = addr.City
	}

	parts := make([]string, 0, 4)
	for _, part := range []string{addr.HouseNumber, road, area, district} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, strings.TrimSpace(part))
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(resp.DisplayName)
	}
	return strings.Join(parts, ", ")
}
