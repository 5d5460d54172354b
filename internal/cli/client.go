package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/pkg/model"
)

// Client is an HTTP client for the cpusim API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a cpusim API client.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Logger:     logger,
	}
}

// apiResponse is the parsed envelope.
type apiResponse struct {
	Status    string          `json:"status"`
	RequestID string          `json:"request_id"`
	Data      json.RawMessage `json:"data"`
	Error     *model.APIError `json:"error"`
}

// remoteSchedule is the data of a POST /api/v1/schedules response.
type remoteSchedule struct {
	ID      string             `json:"id"`
	Policy  model.Policy       `json:"policy"`
	Quantum int                `json:"quantum"`
	Bursts  []model.Burst      `json:"bursts"`
	Metrics *scheduler.Metrics `json:"metrics"`
}

// do performs an HTTP request and returns the parsed envelope.
func (c *Client) do(method, path string, body any) (*apiResponse, error) {
	url := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		c.Logger.Debug("HTTP request body", "body", string(data))
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.Logger.Debug("HTTP request", "method", method, "url", url)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.Logger.Debug("HTTP response", "status", resp.StatusCode, "body", string(respBody))

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}

	if apiResp.Status == "error" && apiResp.Error != nil {
		return &apiResp, apiResp.Error
	}

	return &apiResp, nil
}

// CreateSchedule runs req on the server.
func (c *Client) CreateSchedule(req model.ScheduleRequest) (*scheduler.Result, error) {
	resp, err := c.do(http.MethodPost, "/api/v1/schedules", req)
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	var data remoteSchedule
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	c.Logger.Info("schedule created", "id", data.ID, "request_id", resp.RequestID)
	return &scheduler.Result{
		Policy:  data.Policy,
		Quantum: data.Quantum,
		Bursts:  data.Bursts,
		Metrics: data.Metrics,
	}, nil
}
