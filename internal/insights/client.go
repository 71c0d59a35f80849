// Package insights produces the natural-language financial summary by
// calling an OpenAI-compatible chat-completions endpoint.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"budgetbuddy/internal/core"
)

const systemPrompt = "In 5 lines max you are a financial assistant that tells users what they should do to reduce their expenses."

// Figures carries everything the prompt embeds about one user's month.
type Figures struct {
	TotalIncome       core.Money
	TotalExpenses     core.Money
	LastMonthExpenses core.Money
	Categories        []core.CategoryAmount
}

// Client talks to the chat-completions endpoint. One request per call,
// no retries, no streaming.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

func NewClient(endpoint, apiKey, model string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize builds the prompt from the figures and performs one
// synchronous completion request, returning the generated text.
func (c *Client) Summarize(ctx context.Context, figures Figures) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(figures)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal summary request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create summary request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.ErrorContext(ctx, "summary endpoint returned error",
			"status", resp.StatusCode,
			"body", string(snippet))
		return "", fmt.Errorf("summary endpoint returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("summary response contained no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

func buildPrompt(f Figures) string {
	var b strings.Builder
	b.WriteString("Generate a human-readable financial summary.\n")
	fmt.Fprintf(&b, "Current Month Income: %s\n", core.FormatUSD(f.TotalIncome))
	fmt.Fprintf(&b, "Current Month Expenses: %s\n", core.FormatUSD(f.TotalExpenses))
	fmt.Fprintf(&b, "Previous Month Expenses: %s\n", core.FormatUSD(f.LastMonthExpenses))
	b.WriteString("Expenses by category:")
	if len(f.Categories) == 0 {
		b.WriteString(" none")
	}
	for _, ca := range f.Categories {
		fmt.Fprintf(&b, " %s=%s", ca.Name, core.FormatUSD(ca.Amount))
	}
	b.WriteString("\nProvide insights, trends, and friendly advice on how to reduce expenses.")
	return b.String()
}
