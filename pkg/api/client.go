package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nimbusctl/nimbus/pkg/types"
)

const defaultTimeout = 30 * time.Second

// apiPrefix is the route prefix for deployment operations. The health
// endpoint lives at the server root, outside the prefix.
const apiPrefix = "/api"

// DeployRequest is the create payload. Field names follow the wire contract
// of the deploy endpoint, not the deployment record.
type DeployRequest struct {
	InstanceName string `json:"instanceName"`
	InstanceType string `json:"instanceType"`
	AMIID        string `json:"amiId"`
	KeyName      string `json:"keyName"`
}

// DeployResponse is returned by a successful create.
type DeployResponse struct {
	Success      bool   `json:"success"`
	InstanceID   string `json:"instance_id,omitempty"`
	DeploymentID string `json:"deployment_id,omitempty"`
	Message      string `json:"message"`
}

// UnmarshalJSON accepts deployment_id as a JSON number or string. The
// backend emits numeric ids; the client keeps them opaque.
func (r *DeployResponse) UnmarshalJSON(data []byte) error {
	type alias DeployResponse
	aux := struct {
		DeploymentID json.RawMessage `json:"deployment_id"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.DeploymentID = idString(aux.DeploymentID)
	return nil
}

func idString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

// TerminateResponse is returned when termination has been initiated.
type TerminateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthCheck is the backend health probe result.
type HealthCheck struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// DeploymentService defines the operations the deployer backend exposes.
type DeploymentService interface {
	// ListDeployments returns the full deployment set.
	ListDeployments(ctx context.Context) ([]types.Deployment, error)

	// GetDeployment returns a single deployment by ID.
	GetDeployment(ctx context.Context, id string) (*types.Deployment, error)

	// CreateDeployment submits launch parameters for a new instance.
	CreateDeployment(ctx context.Context, req DeployRequest) (*DeployResponse, error)

	// SyncDeployment refreshes one deployment's live provider state.
	SyncDeployment(ctx context.Context, id string) (*types.Deployment, error)

	// TerminateDeployment initiates provider-side instance teardown.
	TerminateDeployment(ctx context.Context, id string) (*TerminateResponse, error)

	// Health probes the backend.
	Health(ctx context.Context) (*HealthCheck, error)
}

var _ DeploymentService = (*Client)(nil)

// Client talks to the deployer backend over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *log.Logger
}

// Option allows customizing the Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client for the backend at endpoint (scheme://host[:port]).
// Deployment routes carry the /api prefix while the health probe lives at
// the server root, so the endpoint is normalized to the root: a trailing
// /api segment is accepted and stripped.
func New(endpoint string, opts ...Option) *Client {
	base := strings.TrimRight(endpoint, "/")
	base = strings.TrimSuffix(base, apiPrefix)
	c := &Client{
		endpoint:   base,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     log.New(io.Discard),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Endpoint returns the normalized backend root URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ListDeployments returns the full deployment set. The backend wraps the
// list in a {"deployments": [...]} envelope; a bare array is accepted too.
func (c *Client) ListDeployments(ctx context.Context) ([]types.Deployment, error) {
	body, err := c.do(ctx, http.MethodGet, apiPrefix+"/deployments", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	var envelope struct {
		Deployments []types.Deployment `json:"deployments"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Deployments != nil {
		return envelope.Deployments, nil
	}

	var deployments []types.Deployment
	if err := json.Unmarshal(body, &deployments); err != nil {
		return nil, fmt.Errorf("failed to decode deployment list: %w", err)
	}

	return deployments, nil
}

// GetDeployment returns a single deployment by ID.
func (c *Client) GetDeployment(ctx context.Context, id string) (*types.Deployment, error) {
	body, err := c.do(ctx, http.MethodGet, apiPrefix+"/deployments/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get deployment %s: %w", id, err)
	}

	var d types.Deployment
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("failed to decode deployment: %w", err)
	}

	return &d, nil
}

// CreateDeployment submits launch parameters for a new instance.
func (c *Client) CreateDeployment(ctx context.Context, req DeployRequest) (*DeployResponse, error) {
	body, err := c.do(ctx, http.MethodPost, apiPrefix+"/deploy", req)
	if err != nil {
		return nil, err
	}

	var resp DeployResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode deploy response: %w", err)
	}

	return &resp, nil
}

// SyncDeployment asks the backend to refresh one deployment's live provider
// state and returns the refreshed record.
func (c *Client) SyncDeployment(ctx context.Context, id string) (*types.Deployment, error) {
	body, err := c.do(ctx, http.MethodPost, apiPrefix+"/deployments/"+id+"/sync", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sync deployment %s: %w", id, err)
	}

	var d types.Deployment
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("failed to decode deployment: %w", err)
	}

	return &d, nil
}

// TerminateDeployment initiates provider-side teardown for one deployment.
func (c *Client) TerminateDeployment(ctx context.Context, id string) (*TerminateResponse, error) {
	body, err := c.do(ctx, http.MethodDelete, apiPrefix+"/deployments/"+id, nil)
	if err != nil {
		return nil, err
	}

	var resp TerminateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode terminate response: %w", err)
	}

	return &resp, nil
}

// Health probes the backend health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthCheck, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}

	var hc HealthCheck
	if err := json.Unmarshal(body, &hc); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}

	return &hc, nil
}

// do performs one request and returns the raw response body. Non-2xx
// responses become *APIError carrying the backend error text.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}
