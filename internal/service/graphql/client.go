package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sumonst21/opencollective-images/internal/constants"
	"github.com/sumonst21/opencollective-images/pkg/errors"
	"go.uber.org/zap"
)

// Executor runs one GraphQL document against the upstream API and decodes
// the data payload into result. Implementations own timeouts and retries;
// callers treat any returned error as terminal for the current request.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any, result any) error
}

// Client is a minimal GraphQL-over-HTTP POST client.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

func NewClient(url string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: constants.APIConfig.GraphqlTimeout,
		},
		url:    url,
		logger: logger,
	}
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, result any) error {
	payload, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return errors.NewAPIError("failed to encode query", 500, nil).WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return errors.NewAPIError("failed to build request", 500, nil).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("GraphQL request failed", zap.Error(err))
		return errors.NewAPIError("upstream request failed", 502, nil).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewAPIError("failed to read response", 502, nil).WithCause(err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("GraphQL error status",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(body)),
		)
		return errors.NewAPIError(fmt.Sprintf("upstream returned status %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"body": string(body),
		})
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.NewAPIError("malformed response", 502, nil).WithCause(err)
	}

	if len(envelope.Errors) > 0 {
		c.logger.Warn("GraphQL query errors", zap.String("message", envelope.Errors[0].Message))
		return errors.NewAPIError(envelope.Errors[0].Message, 502, map[string]any{
			"errors": len(envelope.Errors),
		})
	}

	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return errors.NewAPIError("unexpected response shape", 502, nil).WithCause(err)
		}
	}

	return nil
}
