package client

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OCRSpaceClient wraps the OCR.space REST API as a remote fallback for
// documents the local Tesseract install reads poorly (mostly dense Thai).
type OCRSpaceClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewOCRSpaceClient(apiURL, apiKey string) *OCRSpaceClient {
	return &OCRSpaceClient{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// Available reports whether the client has an API key configured.
func (c *OCRSpaceClient) Available() bool {
	return c.apiKey != ""
}

// toOCRSpaceLang maps the document language hint onto OCR.space codes.
func toOCRSpaceLang(hint string) string {
	switch hint {
	case "tha":
		return "tha"
	case "eng":
		return "eng"
	default:
		// OCR.space has no combined mode; Thai covers mixed documents
		// better than English does.
		return "tha"
	}
}

type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// ExtractText sends image bytes to OCR.space and returns the recognized
// text. Engine 2 is tried first; engine 1 is the degraded fallback.
func (c *OCRSpaceClient) ExtractText(imageData []byte, mimeType, langHint string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("OCR.space API key not configured")
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	for _, engine := range []string{"2", "1"} {
		text, err := c.request(dataURL, toOCRSpaceLang(langHint), engine)
		if err == nil {
			return text, nil
		}
		log.Printf("OCR.space engine %s failed: %v", engine, err)
	}
	return "", fmt.Errorf("OCR.space returned no usable text")
}

func (c *OCRSpaceClient) request(dataURL, language, engine string) (string, error) {
	form := url.Values{}
	form.Set("base64Image", dataURL)
	form.Set("language", language)
	form.Set("OCREngine", engine)
	form.Set("scale", "true")
	form.Set("isTable", "true")

	req, err := http.NewRequest(http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR.space request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR.space returned status %d", resp.StatusCode)
	}

	var parsed ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode OCR.space response: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("OCR.space processing error: %s", string(parsed.ErrorMessage))
	}

	var sb strings.Builder
	for _, r := range parsed.ParsedResults {
		sb.WriteString(r.ParsedText)
		sb.WriteString("\n")
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("OCR.space returned empty text")
	}
	return text, nil
}
