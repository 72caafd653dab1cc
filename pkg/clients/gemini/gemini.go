package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 60 * time.Second
)

// Client defines the interface for AI inventory extraction.
type Client interface {
	ExtractRecords(ctx context.Context, text string) ([]ExtractedItem, error)
}

// ExtractedItem is one partially specified inventory record returned by the
// model. Missing optional fields are defaulted by the caller.
type ExtractedItem struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Status      string  `json:"status,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	DateAdded   string  `json:"dateAdded,omitempty"`
}

// Config holds the client options. Zero values fall back to production
// defaults; BaseURL is overridable for tests.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type geminiClient struct {
	httpClient *resty.Client
	baseURL    string
	model      string
}

// NewClient creates a configured Gemini client.
func NewClient(apiKey string) Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a Gemini client with custom options.
func NewClientWithConfig(cfg Config) Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetHeader("x-goog-api-key", cfg.APIKey).
		SetHeader("content-type", "application/json").
		SetTimeout(timeout)

	return &geminiClient{httpClient: client, baseURL: baseURL, model: model}
}

// schema mirrors the Gemini structured-output schema object.
type schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Items       *schema           `json:"items,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema"`
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// extractionSchema constrains the response to an array of partial records.
func extractionSchema() *schema {
	return &schema{
		Type: "ARRAY",
		Items: &schema{
			Type: "OBJECT",
			Properties: map[string]schema{
				"productName": {Type: "STRING"},
				"category": {
					Type: "STRING",
					Enum: []string{"Electronics", "Furniture", "Clothing", "Office Supplies", "Other"},
				},
				"quantity": {Type: "NUMBER"},
				"price":    {Type: "NUMBER"},
				"status": {
					Type: "STRING",
					Enum: []string{"In Stock", "Low Stock", "Out of Stock", "Discontinued"},
				},
				"notes":     {Type: "STRING"},
				"dateAdded": {Type: "STRING", Description: "ISO 8601 date string (YYYY-MM-DD)"},
			},
			Required: []string{"productName", "quantity", "price", "category"},
		},
	}
}

func extractionPrompt(text string) string {
	return fmt.Sprintf(`Extract product inventory data from the following text.
If a category is not clear, map it to 'Other'.
If status is not mentioned, infer it from quantity (0 = Out of Stock, < 10 = Low Stock, else In Stock).
Return a JSON array.

Text to parse: "%s"`, text)
}

// ExtractRecords sends the free-form text to the model and decodes the
// structured array it returns. An empty model response is "nothing found",
// not an error; a malformed one is surfaced as an error.
func (c *geminiClient) ExtractRecords(ctx context.Context, text string) ([]ExtractedItem, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []contentPart{{Text: extractionPrompt(text)}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   extractionSchema(),
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(url)

	if err != nil {
		return nil, fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gemini api error: %s", resp.String())
	}

	rawText := candidateText(respBody)
	if rawText == "" {
		return nil, nil
	}

	var items []ExtractedItem
	if err := json.Unmarshal([]byte(rawText), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini response: %w. Response was: %s", err, rawText)
	}

	return items, nil
}

func candidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	// Strip markdown code fences if the model wraps the JSON anyway.
	text := strings.TrimSpace(sb.String())
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}

	return strings.TrimSpace(text)
}
