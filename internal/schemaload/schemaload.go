// Package schemaload loads a GraphQL schema from a local file, a raw SDL
// URL, or a GraphQL introspection endpoint, per the --schema disambiguation
// rule: an https(s) URL ending in ".graphql" is fetched as raw SDL; any
// other http(s) URL is queried via introspection; anything else is read as
// a local file path.
package schemaload

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/validator"
	"golang.org/x/net/http2"
)

var fastJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Options configures a Load call.
type Options struct {
	// BearerToken, when non-empty, is sent as "Authorization: Bearer <token>"
	// on introspection/raw-SDL requests.
	BearerToken string
	// CacheTTL controls how long a successfully-loaded schema is reused
	// across repeated Load calls for the same source string within one
	// process. Zero disables caching.
	CacheTTL time.Duration
	// MaxRetries bounds the retry-with-backoff loop for network fetches.
	MaxRetries int
}

// NewHTTPClient returns an http.Client with HTTP/2 explicitly configured,
// rather than relying on the default transport's opportunistic upgrade.
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		log.Warn().Err(err).Msg("configuring HTTP/2 transport failed, falling back to HTTP/1.1")
	}
	return &http.Client{Transport: transport, Timeout: 30 * time.Second}
}

type cacheEntry struct {
	schema    *ast.Schema
	expiresAt time.Time
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]cacheEntry)
)

// Load resolves source per the disambiguation rule above and parses the
// result into an *ast.Schema.
func Load(ctx context.Context, client *http.Client, source string, opts Options) (*ast.Schema, error) {
	if opts.CacheTTL > 0 {
		cacheMu.Lock()
		if entry, ok := cache[source]; ok && time.Now().Before(entry.expiresAt) {
			cacheMu.Unlock()
			log.Debug().Str("source", source).Msg("schema cache hit")
			return entry.schema, nil
		}
		cacheMu.Unlock()
	}

	var (
		sdl string
		err error
	)

	switch {
	case isHTTPURL(source) && strings.HasSuffix(source, ".graphql"):
		sdl, err = fetchRawSDL(ctx, client, source, opts)
	case isHTTPURL(source):
		sdl, err = fetchIntrospection(ctx, client, source, opts)
	default:
		sdl, err = loadLocalFile(source)
	}
	if err != nil {
		return nil, err
	}

	schema, err := validator.LoadSchema(validator.Prelude, &ast.Source{Name: source, Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("parsing schema from %s: %w", source, err)
	}

	if opts.CacheTTL > 0 {
		cacheMu.Lock()
		cache[source] = cacheEntry{schema: schema, expiresAt: time.Now().Add(opts.CacheTTL)}
		cacheMu.Unlock()
	}

	return schema, nil
}

func isHTTPURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func loadLocalFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading schema file %s: %w", path, err)
	}
	return string(raw), nil
}

func fetchRawSDL(ctx context.Context, client *http.Client, url string, opts Options) (string, error) {
	body, err := withRetry(opts.MaxRetries, func() ([]byte, error) {
		return doGet(ctx, client, url, opts.BearerToken)
	})
	if err != nil {
		return "", fmt.Errorf("fetching raw SDL from %s: %w", url, err)
	}
	return string(body), nil
}

type introspectionRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func fetchIntrospection(ctx context.Context, client *http.Client, url string, opts Options) (string, error) {
	reqBody, err := json.Marshal(introspectionRequest{
		Query: IntrospectionQuery,
		Variables: map[string]any{
			"descriptions":          false,
			"inputValueDeprecation": false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding introspection request: %w", err)
	}

	raw, err := withRetry(opts.MaxRetries, func() ([]byte, error) {
		return doPost(ctx, client, url, reqBody, opts.BearerToken)
	})
	if err != nil {
		return "", fmt.Errorf("introspecting %s: %w", url, err)
	}

	var resp IntrospectionResponse
	if err := fastJSON.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decoding introspection response from %s: %w", url, err)
	}
	if len(resp.Errors) > 0 {
		return "", fmt.Errorf("introspection endpoint %s returned errors: %s", url, resp.Errors[0].Message)
	}

	return RenderSDL(resp.Data.Schema), nil
}

func doGet(ctx context.Context, client *http.Client, url, bearer string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	applyAuth(req, bearer)
	return doRequest(client, req)
}

func doPost(ctx context.Context, client *http.Client, url string, body []byte, bearer string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	applyAuth(req, bearer)
	return doRequest(client, req)
}

func applyAuth(req *http.Request, bearer string) {
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
}

func doRequest(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// withRetry retries fn with exponential backoff (100ms, 200ms, 400ms, ...)
// up to maxRetries additional attempts after the first.
func withRetry(maxRetries int, fn func() ([]byte, error)) ([]byte, error) {
	var lastErr error
	delay := 100 * time.Millisecond
	for attempt := 0; attempt <= maxRetries; attempt++ {
		body, err := fn()
		if err == nil {
			return body, nil
		}
		lastErr = err
		if attempt < maxRetries {
			log.Warn().Err(err).Int("attempt", attempt+1).Dur("backoff", delay).Msg("retrying schema fetch")
			time.Sleep(delay)
			delay *= 2
		}
	}
	return nil, lastErr
}
