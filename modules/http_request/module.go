// Package http_request provides the net.http_request block.
package http_request

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/registry"
	"github.com/specialistvlad/circuitgo/internal/value"
)

const (
	defaultTimeout = 30 * time.Second

	// MaxTimeout bounds every timeout given in seconds.
	MaxTimeout = 24 * time.Hour
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// Client is shared by every request. A pooled client is created when nil.
	Client *http.Client
	Logger *slog.Logger
}

// Register registers net.http_request.
func (m *Module) Register(r *registry.Registry) error {
	client := m.Client
	if client == nil {
		client = NewClient()
	}
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return r.Register(Request(client, logger))
}

// NewClient returns a client with connection pooling. Per-request deadlines
// come from the block's timeout_seconds config.
func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Request performs one HTTP request per execution. Any response, including
// 4xx and 5xx, is reported on the status port; only transport failures fail
// the block.
func Request(client *http.Client, logger *slog.Logger) block.Block {
	return &block.Func{
		Meta: block.Metadata{
			ID:          "net.http_request",
			Name:        "HTTP Request",
			Description: "Send an HTTP request and emit the response",
			Inputs:      []block.PortDefinition{block.Port("body", "any", false)},
			Outputs: []block.PortDefinition{
				block.Port("status", "number", true),
				block.Port("body", "string", true),
				block.Port("headers", "object", true),
			},
			ConfigSchema: map[string]string{
				"url":             "string",
				"method":          "string",
				"timeout_seconds": "number",
				"headers":         "object",
			},
		},
		Run: func(ctx *block.ExecutionContext) (value.Map, error) {
			return doRequest(ctx, client, logger)
		},
		Check: validate,
	}
}

func validate(cfg value.Map) error {
	ctx := block.NewContext(nil, cfg)
	u, err := ctx.ConfigString("url", "")
	if err != nil {
		return err
	}
	if u == "" {
		return block.MissingConfig("url")
	}
	if _, err := TimeoutSeconds(ctx, "timeout_seconds", defaultTimeout); err != nil {
		return err
	}
	_, err = headers(ctx)
	return err
}

// TimeoutSeconds reads the config entry key as a number of seconds, falling
// back to def. The value must be positive and no larger than MaxTimeout.
func TimeoutSeconds(ctx *block.ExecutionContext, key string, def time.Duration) (time.Duration, error) {
	secs, err := ctx.ConfigFloat(key, def.Seconds())
	if err != nil {
		return 0, err
	}
	if !(secs > 0) || secs > MaxTimeout.Seconds() {
		return 0, fmt.Errorf("%w: config '%s' must be in (0, %g] seconds, got %g",
			block.ErrInvalidInput, key, MaxTimeout.Seconds(), secs)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func doRequest(ctx *block.ExecutionContext, client *http.Client, logger *slog.Logger) (value.Map, error) {
	if err := validate(ctx.Config); err != nil {
		return nil, err
	}
	url, _ := ctx.ConfigString("url", "")
	method, err := ctx.ConfigString("method", http.MethodGet)
	if err != nil {
		return nil, err
	}
	timeout, _ := TimeoutSeconds(ctx, "timeout_seconds", defaultTimeout)
	hdrs, _ := headers(ctx)

	body, err := requestBody(ctx)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, strings.ToUpper(method), url, body)
	if err != nil {
		return nil, block.Failf("failed to create request: %v", err)
	}
	for k, v := range hdrs {
		req.Header.Set(k, v)
	}

	logger.Info("Making HTTP request.", "method", req.Method, "url", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, block.Failf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()
	logger.Info("Received HTTP response.", "status", resp.Status)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, block.Failf("failed to read response body: %v", err)
	}

	respHeaders := make(value.Map, len(resp.Header))
	for k := range resp.Header {
		respHeaders[k] = value.String(resp.Header.Get(k))
	}
	return value.Map{
		"status":  value.Int(int64(resp.StatusCode)),
		"body":    value.String(string(data)),
		"headers": value.Object(respHeaders),
	}, nil
}

// requestBody sends strings and bytes as-is and encodes anything else as
// plain JSON. A missing or null input sends no body.
func requestBody(ctx *block.ExecutionContext) (io.Reader, error) {
	v, ok := ctx.Input("body")
	if !ok || v.IsNull() {
		return nil, nil
	}
	if s, ok := v.AsString(); ok {
		return strings.NewReader(s), nil
	}
	if b, ok := v.AsBytes(); ok {
		return strings.NewReader(string(b)), nil
	}
	data, err := json.Marshal(v.Native())
	if err != nil {
		return nil, fmt.Errorf("%w: input 'body': %v", block.ErrInvalidInput, err)
	}
	return strings.NewReader(string(data)), nil
}

func headers(ctx *block.ExecutionContext) (map[string]string, error) {
	v, ok := ctx.ConfigValue("headers")
	if !ok || v.IsNull() {
		return nil, nil
	}
	obj, ok := v.AsObject()
	if !ok {
		return nil, block.WrongConfigType("headers", "object", v)
	}
	out := make(map[string]string, len(obj))
	for k, hv := range obj {
		s, ok := hv.AsString()
		if !ok {
			return nil, fmt.Errorf("%w: header '%s' must be a string", block.ErrInvalidInput, k)
		}
		out[k] = s
	}
	return out, nil
}
