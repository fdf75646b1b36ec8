// Package client implements the credentialed HTTP client for the SwiftCab
// platform API. The remote service owns every business rule; this client
// converts its responses into domain values and its failures into the
// domain error taxonomy. Calls block only at the network boundary and
// every method takes a context.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/swiftcab/swiftcab-go/domain"
)

// DefaultTimeout bounds every API call unless Config overrides it.
const DefaultTimeout = 10 * time.Second

// Config holds the client settings.
type Config struct {
	BaseURL string // API origin, e.g. https://api.swiftcab.example/api/v1
	Timeout time.Duration
	Logger  *logrus.Logger
}

// Client is a session-holding API client. The session cookie set by Login
// is carried on every subsequent call.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

// New creates a Client for the given API origin.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.WarnLevel)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout, Jar: jar},
		log:     log,
	}, nil
}

// envelope is the response wrapper the API puts around every payload.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do issues one request and decodes the enveloped response into out.
// Failures are converted at this boundary: nothing propagates uncaught and
// nothing is swallowed without a trace.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		terr := &domain.TransportError{Op: op, Err: err}
		c.log.WithError(err).WithField("op", op).Warn("api call failed at transport")
		return terr
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 400 {
		apiErr := c.mapStatus(resp.StatusCode, env.Message)
		c.log.WithFields(logrus.Fields{
			"op":     op,
			"status": resp.StatusCode,
		}).WithError(apiErr).Warn("api call rejected")
		return apiErr
	}
	if decodeErr != nil {
		c.log.WithError(decodeErr).WithField("op", op).Warn("api response undecodable")
		return &domain.TransportError{Op: op, Err: decodeErr}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &domain.TransportError{Op: op, Err: err}
		}
	}
	return nil
}

// mapStatus converts an HTTP rejection into the domain error taxonomy.
func (c *Client) mapStatus(code int, message string) error {
	if message == "" {
		message = http.StatusText(code)
	}

	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrValidation, message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrUnauthenticated, message)
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(message), "block") {
			return fmt.Errorf("%w: %s", domain.ErrBlocked, message)
		}
		return fmt.Errorf("%w: %s", domain.ErrForbidden, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, message)
	default:
		return &domain.TransportError{Op: "http " + http.StatusText(code), Err: fmt.Errorf("%s", message)}
	}
}
