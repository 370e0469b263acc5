package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/google/uuid"
)

const (
	ActionSubmitWorkout       = "submitWorkout"
	ActionGetExerciseDatabase = "getExerciseDatabase"
	ActionCheckUserAccess     = "checkUserAccess"

	// Bodies larger than this are treated as malformed.
	maxResponseSize = 4 << 20
)

var errMalformedResponse = errors.New("malformed response body")

// submission is the wire body of submitWorkout: the workout fields plus the
// client-side timestamp.
type submission struct {
	models.Workout
	Timestamp string `json:"timestamp"`
}

type catalogResponse struct {
	Exercises []string `json:"exercises"`
}

type HTTPClient struct {
	endpoint string
	http     *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the API at endpoint. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(endpoint string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", endpoint)
	}

	return &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// SetToken sets the bearer token sent with every request. An empty token
// disables the Authorization header.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Submit(ctx context.Context, r *models.Record) (*Ack, error) {
	var ack Ack
	body := submission{Workout: r.Payload, Timestamp: r.Timestamp}

	if err := c.call(ctx, ActionSubmitWorkout, body, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *HTTPClient) FetchCatalog(ctx context.Context) ([]string, error) {
	var resp catalogResponse
	if err := c.call(ctx, ActionGetExerciseDatabase, struct{}{}, &resp); err != nil {
		return nil, err
	}
	if resp.Exercises == nil {
		return []string{}, nil
	}
	return resp.Exercises, nil
}

func (c *HTTPClient) CheckAccess(ctx context.Context) (*AccessInfo, error) {
	var info AccessInfo
	if err := c.call(ctx, ActionCheckUserAccess, struct{}{}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) actionURL(action string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("action", action)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// call POSTs in as JSON and decodes a 2xx JSON response into out.
func (c *HTTPClient) call(ctx context.Context, action string, in, out any) error {
	fail := func(status int, err error) error {
		return &SubmissionError{Action: action, StatusCode: status, Err: err}
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fail(0, fmt.Errorf("encode request: %w", err))
	}

	u, err := c.actionURL(action)
	if err != nil {
		return fail(0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if t := c.Token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmissionError{Action: action, Unreachable: true, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, nil)
	}

	if !json.Valid(data) {
		return fail(resp.StatusCode, errMalformedResponse)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("%w: %w", errMalformedResponse, err))
	}

	return nil
}
