package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/ports"
)

// Compile-time check that OpenAIExtractor implements OrderExtractor.
var _ ports.OrderExtractor = (*OpenAIExtractor)(nil)

const (
	openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

	// Near-zero temperature keeps the oracle's parsing deterministic.
	extractionTemperature = 0.1

	extractionSystemPrompt = `You are a helpful assistant that extracts structured order information from single-line messages. You understand that each customer can have multiple color orders, and the format is: [product_name] [quantity1 for customer 1] [color1 for customer 1] (customer1) [quantity1 for customer 2] [color1 for customer 2] [quantity2 for customer 2] [color2 for customer 2] (customer2) ...`

	extractionPromptTemplate = `You are an order parsing assistant. Your task is to extract structured order information from the following message:

%s

The message follows this pattern:
[product_name] [quantity1 for customer 1] [color1 for customer 1] (customer1) [quantity1 for customer 2] [color1 for customer 2] [quantity2 for customer 2] [color2 for customer 2] (customer2) ...

IMPORTANT: Parse the ACTUAL message above, not the example. Return a JSON object with this structure:
{
    "product_name": "Name of the product",
    "orders": [
        {
            "customer_name": "Customer name",
            "items": [
                {
                    "color": "Color name",
                    "quantity": number
                }
            ]
        }
    ]
}

Now, please parse the actual message provided above and return the structured data.`
)

// OpenAIExtractor implements the extraction oracle using the OpenAI chat
// completions REST API. Plain net/http, no SDK required.
type OpenAIExtractor struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIExtractor builds the adapter. model is typically "gpt-4-turbo".
// An empty apiKey makes calls return a descriptive error instead of panicking.
func NewOpenAIExtractor(apiKey, model string) *OpenAIExtractor {
	return &OpenAIExtractor{
		apiKey:  apiKey,
		model:   model,
		baseURL: openAIChatCompletionsURL,
		httpClient: &http.Client{
			// Network timeout; the caller additionally imposes a context timeout.
			Timeout: 60 * time.Second,
		},
	}
}

// NewOpenAIExtractorWithURL builds the adapter against a custom endpoint
// (tests, proxies).
func NewOpenAIExtractorWithURL(apiKey, model, baseURL string) *OpenAIExtractor {
	e := NewOpenAIExtractor(apiKey, model)
	e.baseURL = baseURL
	return e
}

// ── OpenAI chat completions wire structures ──────────────────────────────────

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe captures the first JSON object in free text, in case the model
// wraps its answer in prose or markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ParseOrderMessage sends the message to the oracle and decodes the
// structured order. Any non-conforming response is a hard failure.
func (e *OpenAIExtractor) ParseOrderMessage(ctx context.Context, text string) (*dto.StructuredOrder, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("extractor: OPENAI_API_KEY not configured")
	}

	payload := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(extractionPromptTemplate, text)},
		},
		Temperature: extractionTemperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("extractor: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extractor: build HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("extractor: timeout or cancellation: %w", ctx.Err())
		}
		return nil, fmt.Errorf("extractor: HTTP call failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("extractor: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp chatResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("extractor: OpenAI error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("extractor: OpenAI HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return nil, fmt.Errorf("extractor: decode OpenAI response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("extractor: oracle returned no choices")
	}

	rawText := chatResp.Choices[0].Message.Content
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("extractor: no JSON object in oracle response (response: %s)", rawText)
	}

	var structured dto.StructuredOrder
	if err := json.Unmarshal([]byte(cleanJSON), &structured); err != nil {
		return nil, fmt.Errorf("extractor: parse structured order: %w (extracted JSON: %s)", err, cleanJSON)
	}
	if err := structured.Validate(); err != nil {
		return nil, fmt.Errorf("extractor: %w", err)
	}
	return &structured, nil
}

// extractJSON pulls the first well-formed JSON object out of free text.
// Two steps: strip markdown code fences, then regex for the first { ... }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
