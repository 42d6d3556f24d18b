// Package tpu manages Cloud TPU nodes through the TPU v2 REST API.
//
// Authentication reuses the ambient gcloud credentials; there is no Go SDK
// for the TPU API in use here, so requests go through net/http directly.
package tpu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"
)

const apiBase = "https://tpu.googleapis.com/v2"

// Credentials supplies the project and bearer token for API calls.
type Credentials interface {
	// Token returns a bearer token for the TPU API.
	Token(ctx context.Context) (string, error)

	// Project returns the active cloud project ID.
	Project(ctx context.Context) (string, error)
}

// GcloudCredentials reads credentials from the installed gcloud CLI.
type GcloudCredentials struct {
	token   string
	project string
}

// NewGcloudCredentials creates a credential source backed by gcloud.
func NewGcloudCredentials() *GcloudCredentials {
	return &GcloudCredentials{}
}

// Token implements Credentials. The token is cached for the process lifetime.
func (g *GcloudCredentials) Token(ctx context.Context) (string, error) {
	if g.token != "" {
		return g.token, nil
	}
	out, err := exec.CommandContext(ctx, "gcloud", "auth", "print-access-token").Output()
	if err != nil {
		return "", fmt.Errorf("failed to read gcloud access token: %w", err)
	}
	g.token = strings.TrimSpace(string(out))
	return g.token, nil
}

// Project implements Credentials. The project is cached for the process lifetime.
func (g *GcloudCredentials) Project(ctx context.Context) (string, error) {
	if g.project != "" {
		return g.project, nil
	}
	out, err := exec.CommandContext(ctx, "gcloud", "config", "list", "--format", "value(core.project)").Output()
	if err != nil {
		return "", fmt.Errorf("failed to read gcloud project: %w", err)
	}
	g.project = strings.TrimSpace(string(out))
	return g.project, nil
}

// Node is the subset of the TPU node resource tpuprep works with.
type Node struct {
	Name             string            `json:"name,omitempty"`
	AcceleratorType  string            `json:"acceleratorType,omitempty"`
	RuntimeVersion   string            `json:"runtimeVersion,omitempty"`
	State            string            `json:"state,omitempty"`
	Health           string            `json:"health,omitempty"`
	NetworkEndpoints []NetworkEndpoint `json:"networkEndpoints,omitempty"`
}

// NetworkEndpoint is one worker endpoint of a TPU node.
type NetworkEndpoint struct {
	IPAddress    string        `json:"ipAddress,omitempty"`
	AccessConfig *AccessConfig `json:"accessConfig,omitempty"`
}

// AccessConfig carries the external address of an endpoint.
type AccessConfig struct {
	ExternalIP string `json:"externalIp,omitempty"`
}

// CreateRequest describes a TPU node to create.
type CreateRequest struct {
	Name            string
	Zone            string
	AcceleratorType string
	RuntimeVersion  string
	Preemptible     bool
}

// Client calls the Cloud TPU REST API.
type Client struct {
	http    *http.Client
	creds   Credentials
	baseURL string
}

// NewClient creates a TPU API client.
func NewClient(creds Credentials) *Client {
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		creds:   creds,
		baseURL: apiBase,
	}
}

// Create requests creation of a TPU node. The API call is asynchronous;
// poll with Status or WaitForState afterwards.
func (c *Client) Create(ctx context.Context, req CreateRequest) error {
	body := map[string]any{
		"accelerator_type": req.AcceleratorType,
		"runtime_version":  req.RuntimeVersion,
		"network_config":   map[string]any{"enable_external_ips": true},
	}
	if req.Preemptible {
		body["schedulingConfig"] = map[string]any{"preemptible": true}
	}

	path := fmt.Sprintf("locations/%s/nodes?node_id=%s", req.Zone, req.Name)
	if _, err := c.do(ctx, http.MethodPost, path, body); err != nil {
		return fmt.Errorf("failed to create TPU %s: %w", req.Name, err)
	}
	return nil
}

// Status fetches the current state of a TPU node.
func (c *Client) Status(ctx context.Context, name, zone string) (*Node, error) {
	path := fmt.Sprintf("locations/%s/nodes/%s", zone, name)
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch TPU %s: %w", name, err)
	}

	var node Node
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode TPU node: %w", err)
	}
	return &node, nil
}

// Delete removes a TPU node.
func (c *Client) Delete(ctx context.Context, name, zone string) error {
	path := fmt.Sprintf("locations/%s/nodes/%s", zone, name)
	if _, err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		return fmt.Errorf("failed to delete TPU %s: %w", name, err)
	}
	return nil
}

// WaitForState polls until the node reaches the wanted state.
// PREEMPTED and TERMINATED nodes never recover, so either one ends the
// wait with an error when it is not the wanted state.
func (c *Client) WaitForState(ctx context.Context, name, zone, state string, interval time.Duration) error {
	for {
		node, err := c.Status(ctx, name, zone)
		if err != nil {
			return err
		}
		if node.State == state {
			return nil
		}
		if node.State == "PREEMPTED" || node.State == "TERMINATED" {
			return fmt.Errorf("TPU %s was %s", name, strings.ToLower(node.State))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Connections returns the externally reachable worker addresses of a node.
func (c *Client) Connections(ctx context.Context, name, zone string) ([]string, error) {
	node, err := c.Status(ctx, name, zone)
	if err != nil {
		return nil, err
	}

	var hosts []string
	for _, ep := range node.NetworkEndpoints {
		if ep.AccessConfig != nil && ep.AccessConfig.ExternalIP != "" {
			hosts = append(hosts, ep.AccessConfig.ExternalIP)
		}
	}
	return hosts, nil
}

// do issues one authenticated API request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	project, err := c.creds.Project(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/projects/%s/%s", c.baseURL, project, path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("TPU API returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}
