package strand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Stage is one unit of the document-API wire protocol: the output of each
// stage feeds the next, and the response carries the result of the last.
type Stage struct {
	Service string         `json:"service"`
	Action  string         `json:"action"`
	Args    map[string]any `json:"args,omitempty"`
}

// ExecutePipeline runs the ordered stages and returns the final stage's
// JSON result.
func (c *Client) ExecutePipeline(ctx context.Context, stages ...Stage) (json.RawMessage, error) {
	if len(stages) == 0 {
		return nil, errors.New("execute pipeline: no stages")
	}

	opts := NewRequestOptions()
	opts.Body = stages

	resp, err := c.Do(ctx, http.MethodPost, "/pipeline", opts)
	if err != nil {
		return nil, fmt.Errorf("execute pipeline: %w", err)
	}

	var result json.RawMessage
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("execute pipeline: %w", err)
	}

	return result, nil
}

// CallFunction executes a named server-side function as a one-stage
// pipeline.
func (c *Client) CallFunction(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	return c.ExecutePipeline(ctx, Stage{
		Action: "callFunction",
		Args: map[string]any{
			"name": name,
			"args": args,
		},
	})
}
