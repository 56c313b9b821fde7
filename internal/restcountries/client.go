package restcountries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/five82/atlas/internal/apierr"
	"github.com/five82/atlas/internal/cache"
	"github.com/five82/atlas/internal/request"
)

// Fetcher defines the data operations consumed by the store and UI.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]Country, error)
	FetchByCode(ctx context.Context, code string) (Country, error)
	FetchByRegion(ctx context.Context, region string) ([]Country, error)
	SearchByName(ctx context.Context, name string) ([]Country, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	DefaultBaseURL   = "https://restcountries.com/v3.1"
	defaultUserAgent = "atlas/0.1"
	defaultTimeout   = 15 * time.Second

	KeyAll = "all-countries"
)

// KeyCountry returns the cache key for a single country.
func KeyCountry(code string) string {
	return "country-" + strings.ToUpper(strings.TrimSpace(code))
}

// KeyRegion returns the cache key for one region.
func KeyRegion(region string) string {
	return "region-" + strings.TrimSpace(region)
}

// KeySearch returns the coordinator key for a name search.
func KeySearch(name string) string {
	return "search-" + strings.TrimSpace(name)
}

// Client talks to the REST Countries HTTP API. Reads go through a TTL cache;
// network calls go through a request.Coordinator for supersession and retry.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	userAgent   string
	policy      request.Policy
	cache       *cache.Cache[any]
	coordinator *request.Coordinator
	logger      *slog.Logger
}

// Options configure a Client. Zero values select defaults.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Policy      request.Policy
	Cache       *cache.Cache[any]
	Coordinator *request.Coordinator
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// NewClient builds a Client.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	policy := opts.Policy
	if policy == (request.Policy{}) {
		policy = request.DefaultPolicy()
	}
	c := opts.Cache
	if c == nil {
		c = cache.New[any](5 * time.Minute)
	}
	coord := opts.Coordinator
	if coord == nil {
		coord = request.NewCoordinator()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:     base,
		http:        httpClient,
		userAgent:   defaultUserAgent,
		policy:      policy,
		cache:       c,
		coordinator: coord,
		logger:      logger,
	}, nil
}

// FetchAll retrieves every country by querying each region concurrently. The
// first unrecoverable failure cancels the remaining region requests.
func (c *Client) FetchAll(ctx context.Context) ([]Country, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if cached, ok := cachedAs[[]Country](c.cache, KeyAll); ok {
		return cloneCountries(cached), nil
	}

	results := make([][]Country, len(Regions))
	err := c.coordinator.Execute(ctx, KeyAll, request.Policy{}, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		for i, region := range Regions {
			g.Go(func() error {
				items, err := request.Do(gctx, c.coordinator, KeyAll+"/"+region, c.policy, func(ctx context.Context) ([]Country, error) {
					return c.getCountries(ctx, "/region/"+region, nil)
				})
				if err != nil {
					return err
				}
				results[i] = items
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return nil, err
	}

	total := 0
	for _, part := range results {
		total += len(part)
	}
	all := make([]Country, 0, total)
	for _, part := range results {
		all = append(all, part...)
	}
	c.cache.Set(KeyAll, all)
	c.logger.Debug("fetched all countries", slog.Int("count", len(all)))
	return cloneCountries(all), nil
}

// FetchByCode retrieves a single country by its alpha-2 or alpha-3 code.
func (c *Client) FetchByCode(ctx context.Context, code string) (Country, error) {
	if c == nil {
		return Country{}, fmt.Errorf("client is nil")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return Country{}, apierr.New(apierr.KindClient, "fetch by code", fmt.Errorf("code required"))
	}
	key := KeyCountry(code)
	if cached, ok := cachedAs[Country](c.cache, key); ok {
		return cached, nil
	}

	country, err := request.Do(ctx, c.coordinator, key, c.policy, func(ctx context.Context) (Country, error) {
		items, err := c.getCountries(ctx, "/alpha/"+code, withFields())
		if err != nil {
			return Country{}, err
		}
		if len(items) == 0 {
			return Country{}, apierr.NotFound("/alpha/" + code)
		}
		return items[0], nil
	})
	if err != nil {
		return Country{}, err
	}
	c.cache.Set(key, country)
	return country, nil
}

// FetchByRegion retrieves the countries of one region.
func (c *Client) FetchByRegion(ctx context.Context, region string) ([]Country, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	region = strings.TrimSpace(region)
	if region == "" {
		return nil, apierr.New(apierr.KindClient, "fetch by region", fmt.Errorf("region required"))
	}
	key := KeyRegion(region)
	if cached, ok := cachedAs[[]Country](c.cache, key); ok {
		return cloneCountries(cached), nil
	}

	items, err := request.Do(ctx, c.coordinator, key, c.policy, func(ctx context.Context) ([]Country, error) {
		return c.getCountries(ctx, "/region/"+region, withFields())
	})
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, items)
	return cloneCountries(items), nil
}

// SearchByName searches countries by name. Results are never cached and the
// request uses a reduced retry policy.
func (c *Client) SearchByName(ctx context.Context, name string) ([]Country, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.New(apierr.KindClient, "search", fmt.Errorf("name required"))
	}
	return request.Do(ctx, c.coordinator, KeySearch(name), c.policy.Reduced(), func(ctx context.Context) ([]Country, error) {
		return c.getCountries(ctx, "/name/"+name, withFields())
	})
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// CancelAllInFlight aborts every pending request.
func (c *Client) CancelAllInFlight() {
	c.coordinator.CancelAll()
}

// IsCached reports whether key holds a live cached response.
func (c *Client) IsCached(key string) bool {
	return c.cache.Has(key)
}

// CacheStats reports cache contents for diagnostics.
func (c *Client) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// InFlightStats reports pending request keys for diagnostics.
func (c *Client) InFlightStats() request.Stats {
	return c.coordinator.InFlight()
}

func withFields() url.Values {
	values := url.Values{}
	values.Set("fields", Fields)
	return values
}

func (c *Client) getCountries(ctx context.Context, path string, query url.Values) ([]Country, error) {
	var payload []Country
	if err := c.doURL(ctx, http.MethodGet, path, query, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) doURL(ctx context.Context, method, path string, query url.Values, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	reqURL.RawPath = ""
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return apierr.New(apierr.KindClient, path, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return apierr.Classify(path, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if statusErr := apierr.FromStatus(path, resp.StatusCode); statusErr != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return statusErr
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if ctx.Err() != nil {
			return apierr.Classify(path, ctx.Err())
		}
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return apierr.New(apierr.KindDecode, path, fmt.Errorf("decode response: %w", err))
		}
		return apierr.Classify(path, fmt.Errorf("read response: %w", err))
	}
	return nil
}

func cachedAs[T any](c *cache.Cache[any], key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		c.Delete(key)
		return zero, false
	}
	return typed, true
}

// cloneCountries copies the slice header contents so callers cannot mutate a
// cached collection in place.
func cloneCountries(items []Country) []Country {
	if items == nil {
		return nil
	}
	dup := make([]Country, len(items))
	copy(dup, items)
	return dup
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}
