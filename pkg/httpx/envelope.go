package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Envelope is the {error, error_msg, data} body used by the API and by the
// collaborator services it calls. Error 0 means success.
type Envelope[T any] struct {
	Error    int    `json:"error"`
	ErrorMsg string `json:"error_msg"`
	Data     T      `json:"data"`
}

// RemoteError describes a failed call to an envelope service. Response holds
// whatever could be read back and is meant for debug output only.
type RemoteError struct {
	Op         string
	StatusCode int
	Response   any
	Err        error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("httpx: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("httpx: %s: status %d", e.Op, e.StatusCode)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// ErrNonZero is wrapped by RemoteError when the service answered with a
// non-zero envelope error.
var ErrNonZero = errors.New("non-zero envelope error")

// EnvelopeClient posts JSON to a service answering with an Envelope.
type EnvelopeClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewEnvelopeClient creates a client with a bounded request timeout.
func NewEnvelopeClient(baseURL string, timeout time.Duration) *EnvelopeClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &EnvelopeClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *EnvelopeClient) url(path string) string {
	return c.BaseURL + path
}

// Post sends body to path and returns the decoded envelope. Transport
// failures, non-2xx statuses, undecodable bodies and non-zero envelope errors
// all come back as *RemoteError.
func (c *EnvelopeClient) Post(ctx context.Context, path string, body any) (*Envelope[json.RawMessage], error) {
	op := "POST " + path

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return nil, &RemoteError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &RemoteError{Op: op, Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Op: op, StatusCode: resp.StatusCode, Response: string(raw)}
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &RemoteError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Response:   string(raw),
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}

	if env.Error != 0 {
		return nil, &RemoteError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Response:   env,
			Err:        fmt.Errorf("%w %d: %s", ErrNonZero, env.Error, env.ErrorMsg),
		}
	}

	return &env, nil
}
