package transmit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// FallbackMessage is shown when the endpoint gives no usable error.
const FallbackMessage = "Transmission failed. Please try again."

const maxErrorBody = 64 << 10

// SubmitError is a failed submission. Message is safe to show to the user.
type SubmitError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmitError) Error() string { return e.Message }

func (e *SubmitError) Unwrap() error { return e.Err }

// Client posts payloads to a form endpoint.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Timeout  time.Duration
	Log      *zap.Logger
}

func (c *Client) log() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// Submit performs one POST. It never retries.
func (c *Client) Submit(ctx context.Context, p Payload) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	body, err := json.Marshal(p)
	if err != nil {
		return &SubmitError{Message: FallbackMessage, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &SubmitError{Message: FallbackMessage, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.log().Warn("transmit failed", zap.String("endpoint", c.Endpoint), zap.Error(err))
		return &SubmitError{Message: FallbackMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		c.log().Info("transmit ok", zap.Int("status", resp.StatusCode), zap.Duration("took", time.Since(start)))
		return nil
	}

	msg := errorMessage(io.LimitReader(resp.Body, maxErrorBody))
	c.log().Warn("transmit rejected", zap.Int("status", resp.StatusCode), zap.String("message", msg))
	return &SubmitError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		Err:        fmt.Errorf("endpoint returned %s", resp.Status),
	}
}

// errorMessage extracts errors[0].message from a JSON body.
func errorMessage(r io.Reader) string {
	var body struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return FallbackMessage
	}
	if len(body.Errors) == 0 || body.Errors[0].Message == "" {
		return FallbackMessage
	}
	return body.Errors[0].Message
}

// Transmit runs a whole submission through m: validation, honeypot, request.
func Transmit(ctx context.Context, c *Client, m *Machine, source string) error {
	switch m.Begin() {
	case Honeypot:
		return nil
	case Invalid:
		return ErrInvalid
	case Busy:
		return fmt.Errorf("submission already in flight")
	}
	err := c.Submit(ctx, m.Form.Payload(source))
	m.Resolve(err)
	return err
}
