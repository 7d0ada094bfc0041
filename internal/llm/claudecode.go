package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

const (
	claudeCodeDefaultPath  = "claude"
	claudeCodeDefaultModel = "haiku"
)

// claudeCodeClient shells out to the claude CLI, which brings the
// credentials of the logged-in user.
type claudeCodeClient struct {
	path  string
	model string
}

func newClaudeCodeClient(cfg Config) (Client, error) {
	c := &claudeCodeClient{path: claudeCodeDefaultPath, model: claudeCodeDefaultModel}
	if cfg.ClaudeCodePath != "" {
		c.path = cfg.ClaudeCodePath
	}
	if cfg.Model != "" {
		c.model = cfg.Model
	}

	if _, err := exec.LookPath(c.path); err != nil {
		return nil, fmt.Errorf("claude CLI not found at %s: %w", c.path, err)
	}
	return c, nil
}

func (c *claudeCodeClient) args(prompt string) []string {
	return []string{
		"--print", systemPrompt + "\n\n" + prompt,
		"--output-format", "json",
		"--model", c.model,
		"--max-turns", "1",
	}
}

func (c *claudeCodeClient) Complete(ctx context.Context, prompt string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, c.args(prompt)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("claude CLI failed: %s: %w", msg, err)
		}
		return "", fmt.Errorf("claude CLI failed: %w", err)
	}

	var result struct {
		Result  string `json:"result"`
		IsError bool   `json:"is_error"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		// plain text output
		return stdout.String(), nil
	}
	if result.IsError {
		return "", fmt.Errorf("%w: %s", ErrMalformedResponse, result.Result)
	}
	return result.Result, nil
}
