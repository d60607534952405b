package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pattarin-dev/thaidoc-parser/dto"
)

// RefineClient asks an OpenAI-compatible chat endpoint to revise the
// heuristic parse. It is strictly optional: callers must treat any error
// as "keep the heuristic result".
type RefineClient struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewRefineClient(apiURL, apiKey, model string) *RefineClient {
	return &RefineClient{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *RefineClient) Available() bool {
	return c.apiURL != "" && c.apiKey != ""
}

const refineSystemPrompt = `You revise structured data extracted from noisy OCR text of Thai/English business documents. ` +
	`You receive the cleaned text and the extracted fields as JSON and return the same JSON structure with obvious OCR mistakes corrected. ` +
	`Respond with JSON only.`

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Refine sends the heuristic result for revision and returns the revised
// composite result.
func (c *RefineClient) Refine(result dto.ParseResult) (*dto.ParseResult, error) {
	if !c.Available() {
		return nil, fmt.Errorf("refine endpoint not configured")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parse result: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: refineSystemPrompt},
			{Role: "user", Content: string(payload)},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("refine endpoint returned status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("failed to decode refine response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("refine endpoint returned no choices")
	}

	content := strings.TrimSpace(chat.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "`\n ")

	var refined dto.ParseResult
	if err := json.Unmarshal([]byte(content), &refined); err != nil {
		return nil, fmt.Errorf("refine response is not a parse result: %w", err)
	}
	return &refined, nil
}
