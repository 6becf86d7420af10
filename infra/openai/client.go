// Package openai asks the OpenAI Responses API for a study plan.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kilianp07/studyplan/core/logger"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/planner"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client implements planner.RemotePlanner.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        logger.Logger
}

var _ planner.RemotePlanner = (*Client)(nil)

// NewClient validates cfg and builds a client whose transport is traced.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}, nil
}

// RequestPlan sends one Responses API request and parses the returned blocks.
// Every error is a *planner.RemoteError.
func (c *Client) RequestPlan(ctx context.Context, req planner.RemoteRequest) ([]model.ScheduleBlock, error) {
	if c.cfg.APIKey == "" {
		return nil, planner.MissingCredential()
	}
	if c.cfg.Timeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout())
		defer cancel()
	}

	body, err := json.Marshal(responsesRequest{
		Model:           c.cfg.Model,
		Input:           BuildPrompt(req),
		MaxOutputTokens: c.cfg.MaxOutputTokens,
	})
	if err != nil {
		return nil, planner.TransportFailure(0, "", fmt.Errorf("encode request: %w", err))
	}
	raw, err := c.post(ctx, "/responses", body)
	if err != nil {
		return nil, err
	}
	text, err := ParseEnvelope(raw)
	if err != nil {
		return nil, err
	}
	c.log.Debugw("remote plan text received", map[string]any{"chars": len(text)})
	return ParseBlocks(text, req.Start)
}

func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, planner.TransportFailure(0, "", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, planner.TransportFailure(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, planner.TransportFailure(resp.StatusCode, "", fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, planner.TransportFailure(resp.StatusCode, string(raw), nil)
	}
	return raw, nil
}
