package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sandevgo/helpbot/internal/config"
	"github.com/sandevgo/helpbot/internal/core"
)

// Client talks to the hosted answering service. The agent ID is fixed for the
// lifetime of the client. No timeout is set: a question resolves whenever the
// service responds, and the caller's context bounds the program lifetime.
type Client struct {
	client  *http.Client
	baseURL string
	agentID string
	apiKey  string
}

func NewClient(cfg *config.AgentConfig) *Client {
	return &Client{
		client:  &http.Client{},
		baseURL: cfg.BaseURL,
		agentID: cfg.AgentID,
		apiKey:  cfg.APIKey,
	}
}

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	Status     string         `json:"status"`
	Answer     string         `json:"answer"`
	Confidence *float64       `json:"confidence,omitempty"`
	Sources    []sourceRecord `json:"sources,omitempty"`
	FollowUps  []string       `json:"followup_questions,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func (c *Client) Ask(ctx context.Context, question string) (core.Reply, error) {
	path := fmt.Sprintf("/v1/agents/%s/query", url.PathEscape(c.agentID))
	resp, err := c.doRequest(ctx, http.MethodPost, path, queryRequest{Question: question})
	if err != nil {
		return core.Reply{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Reply{}, fmt.Errorf("read body: %w", err)
	}

	var result queryResponse
	if jsonErr := json.Unmarshal(data, &result); jsonErr != nil {
		if resp.StatusCode != http.StatusOK {
			return core.Reply{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
		}
		return core.Reply{}, fmt.Errorf("decode: %w", jsonErr)
	}

	// Error-shaped payloads carry a user-presentable message regardless of
	// the HTTP status code.
	if result.Error != "" {
		return core.Reply{}, &core.ServiceError{Message: result.Error}
	}
	if resp.StatusCode != http.StatusOK {
		return core.Reply{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	if result.Status != "" && result.Status != "success" {
		return core.Reply{}, &core.ServiceError{Message: fmt.Sprintf("agent returned status %q", result.Status)}
	}

	reply := core.Reply{
		Answer:     result.Answer,
		Confidence: result.Confidence,
		FollowUps:  result.FollowUps,
	}
	for _, s := range result.Sources {
		reply.Sources = append(reply.Sources, s.toCore())
	}
	return reply, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", core.HelpBotUserAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	return resp, nil
}
