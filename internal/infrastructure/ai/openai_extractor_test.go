package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngvyshop/chatorder-api/internal/infrastructure/ai"
)

// oracleServer returns an httptest server that always answers with content as
// the single chat completion choice.
func oracleServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4-turbo", req["model"])
		assert.InDelta(t, 0.1, req["temperature"].(float64), 0.001)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

const validOracleJSON = `{
  "product_name": "Blue Shirt",
  "orders": [
    {"customer_name": "Anna", "items": [{"color": "Red", "quantity": 2}]},
    {"customer_name": "Ben", "items": [{"color": "Blue", "quantity": 1}]}
  ]
}`

func TestParseOrderMessageValidResponse(t *testing.T) {
	srv := oracleServer(t, validOracleJSON)
	defer srv.Close()

	e := ai.NewOpenAIExtractorWithURL("test-key", "gpt-4-turbo", srv.URL)
	out, err := e.ParseOrderMessage(context.Background(), "Blue Shirt 2 Red (Anna) 1 Blue (Ben)")
	require.NoError(t, err)

	assert.Equal(t, "Blue Shirt", out.ProductName)
	require.Len(t, out.Orders, 2)
	assert.Equal(t, "Anna", out.Orders[0].CustomerName)
	assert.Equal(t, 2, out.Orders[0].Items[0].Quantity)
	assert.Equal(t, 3, out.TotalQuantity())
}

func TestParseOrderMessageMarkdownWrappedResponse(t *testing.T) {
	srv := oracleServer(t, "```json\n"+validOracleJSON+"\n```")
	defer srv.Close()

	e := ai.NewOpenAIExtractorWithURL("test-key", "gpt-4-turbo", srv.URL)
	out, err := e.ParseOrderMessage(context.Background(), "Blue Shirt 2 Red (Anna) 1 Blue (Ben)")
	require.NoError(t, err)
	assert.Equal(t, "Blue Shirt", out.ProductName)
}

func TestParseOrderMessageProseWrappedResponse(t *testing.T) {
	srv := oracleServer(t, "Here is the structured order you asked for:\n"+validOracleJSON+"\nLet me know if you need anything else.")
	defer srv.Close()

	e := ai.NewOpenAIExtractorWithURL("test-key", "gpt-4-turbo", srv.URL)
	out, err := e.ParseOrderMessage(context.Background(), "Blue Shirt 2 Red (Anna) 1 Blue (Ben)")
	require.NoError(t, err)
	assert.Equal(t, "Blue Shirt", out.ProductName)
}

func TestParseOrderMessageNonJSONResponse(t *testing.T) {
	srv := oracleServer(t, "I could not parse that message, sorry.")
	defer srv.Close()

	e := ai.NewOpenAIExtractorWithURL("test-key", "gpt-4-turbo", srv.URL)
	_, err := e.ParseOrderMessage(context.Background(), "gibberish message with many words")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON object")
}

func TestParseOrderMessageSchemaViolation(t *testing.T) {
	// Well-formed JSON but zero quantity: must be a hard failure.
	srv := oracleServer(t, `{"product_name": "Blue Shirt", "orders": [{"customer_name": "Anna", "items": [{"color": "Red", "quantity": 0}]}]}`)
	defer srv.Close()

	e := ai.NewOpenAIExtractorWithURL("test-key", "gpt-4-turbo", srv.URL)
	_, err := e.ParseOrderMessage(context.Background(), "Blue Shirt 0 Red (Anna)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive quantity")
}

func TestParseOrderMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_exceeded", "message": "slow down"}}`))
	}))
	defer srv.Close()

	e := ai.NewOpenAIExtractorWithURL("test-key", "gpt-4-turbo", srv.URL)
	_, err := e.ParseOrderMessage(context.Background(), "Blue Shirt 2 Red (Anna)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_exceeded")
}

func TestParseOrderMessageMissingAPIKey(t *testing.T) {
	e := ai.NewOpenAIExtractor("", "gpt-4-turbo")
	_, err := e.ParseOrderMessage(context.Background(), "Blue Shirt 2 Red (Anna)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestParseOrderMessageContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	e := ai.NewOpenAIExtractorWithURL("test-key", "gpt-4-turbo", srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := e.ParseOrderMessage(ctx, "Blue Shirt 2 Red (Anna)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
