// Package client resolves articles and users through their owning services.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const requestTimeout = 3 * time.Second

// ErrUnexpectedStatus is returned for any response that is neither 200 nor 404
var ErrUnexpectedStatus = errors.New("unexpected status from remote service")

type tokenKey struct{}

// WithBearerToken stores the caller's token so lookups can be made on their behalf
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func bearerToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// envelope is the response body shape shared by the article and user services
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// serviceClient performs guarded GETs against one remote service
type serviceClient struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *CircuitBreaker
}

func newServiceClient(name, baseURL string, transport http.RoundTripper) *serviceClient {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &serviceClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   requestTimeout,
		},
		breaker: NewCircuitBreaker(name, DefaultMaxFailures, DefaultOpenTimeout),
	}
}

// get decodes the envelope data into out. found is false on 404.
// A 404 is an answer, not a failure, so it does not trip the breaker.
func (c *serviceClient) get(ctx context.Context, path string, out interface{}) (found bool, err error) {
	err = c.breaker.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if token := bearerToken(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%s request failed: %w", c.name, err)
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		default:
			return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, c.name, resp.StatusCode)
		}

		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", c.name, err)
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", c.name, err)
		}
		found = true
		return nil
	})
	return found, err
}
