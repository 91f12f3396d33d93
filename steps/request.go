package steps

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flowgraph-go/flowgraph/flow"
)

// Error codes specific to the request step (spec's HTTP error taxonomy).
const (
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeRequestError = "REQUEST_ERROR"
	ErrCodeInvalidURL   = "INVALID_URL"
)

// StepRequestConfig configures an HTTP request step. URL, header values,
// and body are interpolatable; method and timeout are fixed at authoring
// time.
type StepRequestConfig struct {
	URL     string            `yaml:"url" validate:"required"`
	Method  string            `yaml:"method" validate:"omitempty,oneof=GET POST PUT PATCH DELETE"`
	Headers map[string]string `yaml:"headers"`
	Body    string            `yaml:"body"`
	Timeout int               `yaml:"timeout" validate:"omitempty,gte=1,lte=300"`
}

func (c *StepRequestConfig) Clone() flow.Config {
	clone := *c
	clone.Headers = make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		clone.Headers[k] = v
	}
	return &clone
}

func (c *StepRequestConfig) ScalarFields() []flow.ScalarField {
	return []flow.ScalarField{
		{
			Name: "url",
			Kind: flow.CoerceString,
			Get:  func() string { return c.URL },
			Set:  func(v any) { c.URL = v.(string) },
		},
		{
			Name: "body",
			Kind: flow.CoerceString,
			Get:  func() string { return c.Body },
			Set:  func(v any) { c.Body = v.(string) },
		},
	}
}

func (c *StepRequestConfig) MapFields() []flow.MapField {
	return []flow.MapField{
		{
			Name: "headers",
			Get:  func() map[string]string { return c.Headers },
			Set:  func(m map[string]string) { c.Headers = m },
		},
	}
}

func (c *StepRequestConfig) ListFields() []flow.ListField             { return nil }
func (c *StepRequestConfig) NestedListFields() []flow.NestedListField { return nil }
func (c *StepRequestConfig) NestedFields() []flow.NestedField         { return nil }

// StepRequest makes an HTTP request to an external service. 2xx/3xx
// responses fire the "success" port; 4xx/5xx responses and transport
// failures fire "error".
type StepRequest struct {
	flow.BaseStep
	Cfg      *StepRequestConfig
	client   *http.Client
	checkURL func(string) error
}

// NewStepRequest builds a request step. Method defaults to GET and timeout
// to 30 seconds.
func NewStepRequest(id string, cfg *StepRequestConfig) *StepRequest {
	if cfg.Method == "" {
		cfg.Method = "GET"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30
	}
	return &StepRequest{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepRequest,
			StepPorts:   []string{"success", "error"},
		},
		Cfg:      cfg,
		client:   &http.Client{},
		checkURL: ValidateSafeURL,
	}
}

func (s *StepRequest) Config() flow.Config { return s.Cfg }

func (s *StepRequest) Outputs() []flow.Output {
	return []flow.Output{
		{Key: "response", Type: flow.StateAny, Description: "Response body"},
		{Key: "status_code", Type: flow.StateNumber, Description: "HTTP status code"},
		{Key: "response_headers", Type: flow.StateObject, Description: "Response headers"},
	}
}

func (s *StepRequest) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "HTTP Request",
		Description: "Make HTTP requests to external services",
		Icon:        "http",
		Category:    "integration",
		Color:       "#2196F3",
	}
}

func (s *StepRequest) Run(ctx context.Context, state *flow.State, cfg flow.Config) flow.StepRunResult {
	c := cfg.(*StepRequestConfig)

	if err := s.checkURL(c.URL); err != nil {
		return flow.FailureResult(s.ID(), s.Ports(), err.Error(), ErrCodeInvalidURL, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.Timeout)*time.Second)
	defer cancel()

	var body io.Reader
	hasBody := c.Body != "" && (c.Method == "POST" || c.Method == "PUT" || c.Method == "PATCH")
	if hasBody {
		body = strings.NewReader(c.Body)
	}

	req, err := http.NewRequestWithContext(ctx, c.Method, c.URL, body)
	if err != nil {
		return flow.FailureResult(s.ID(), s.Ports(), "request failed: "+err.Error(), ErrCodeRequestError, nil)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	if hasBody && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return flow.FailureResult(s.ID(), s.Ports(), "request timed out", ErrCodeTimeout, nil)
		}
		return flow.FailureResult(s.ID(), s.Ports(), "request failed: "+err.Error(), ErrCodeRequestError, nil)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return flow.FailureResult(s.ID(), s.Ports(), "failed to read response body: "+err.Error(), ErrCodeRequestError, nil)
	}

	// JSON responses decode to maps/slices so {{response.field}} paths work
	// downstream; anything else stays a plain string.
	var responseBody any
	if err := json.Unmarshal(raw, &responseBody); err != nil {
		responseBody = string(raw)
	}

	headers := make(map[string]any, len(resp.Header))
	for k, values := range resp.Header {
		if len(values) == 1 {
			headers[k] = values[0]
		} else {
			headers[k] = values
		}
	}

	state.Set("response", responseBody)
	state.Set("status_code", resp.StatusCode)
	state.Set("response_headers", headers)

	port := "success"
	if resp.StatusCode >= 400 {
		port = "error"
	}

	return flow.SuccessResult(s.ID(), []string{port}, map[string]any{
		"response":         responseBody,
		"status_code":      resp.StatusCode,
		"response_headers": headers,
	})
}
