package insights

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budgetbuddy/internal/core"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFigures() Figures {
	return Figures{
		TotalIncome:       core.Money{Cents: 500000},
		TotalExpenses:     core.Money{Cents: 320000},
		LastMonthExpenses: core.Money{Cents: 280000},
		Categories: []core.CategoryAmount{
			{Name: "Food", Amount: core.Money{Cents: 120000}},
			{Name: "Rent", Amount: core.Money{Cents: 200000}},
		},
	}
}

func TestSummarize(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Spend less on food."}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "gemini-2.5-flash", 5*time.Second, testLogger())
	summary, err := c.Summarize(context.Background(), testFigures())
	require.NoError(t, err)
	require.Equal(t, "Spend less on food.", summary)

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "gemini-2.5-flash", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	require.Equal(t, "system", gotBody.Messages[0].Role)

	prompt := gotBody.Messages[1].Content
	require.Contains(t, prompt, "Current Month Income: $5,000.00")
	require.Contains(t, prompt, "Previous Month Expenses: $2,800.00")
	require.Contains(t, prompt, "Food=$1,200.00")
}

func TestSummarizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "model", 5*time.Second, testLogger())
	_, err := c.Summarize(context.Background(), testFigures())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 429")
}

func TestSummarizeNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices": []}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "model", 5*time.Second, testLogger())
	_, err := c.Summarize(context.Background(), testFigures())
	require.Error(t, err)
}

func TestSummarizeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // deliberately closed before the call

	c := NewClient(srv.URL, "key", "model", time.Second, testLogger())
	_, err := c.Summarize(context.Background(), testFigures())
	require.Error(t, err)
}

func TestBuildPromptNoCategories(t *testing.T) {
	prompt := buildPrompt(Figures{})
	require.Contains(t, prompt, "Expenses by category: none")
	require.True(t, strings.HasPrefix(prompt, "Generate a human-readable financial summary."))
}
