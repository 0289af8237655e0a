package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTextModel     = "gemini-2.5-flash"
	DefaultImageModel    = "gemini-2.5-flash-image"
)

const systemInstruction = `You are a world-class TikTok marketing strategist and content creator.
You specialize in creating viral, high-retention content.
Your tone is energetic, concise, and trend-aware.
Always prioritize "hooks" that grab attention in the first 3 seconds.`

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidPrompt   = errors.New("invalid request, try a different prompt")
	ErrQuotaExceeded   = errors.New("API quota exceeded, try again later")
	ErrInvalidDuration = errors.New("unsupported script duration")
)

// GeminiConfig selects endpoint and models
type GeminiConfig struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string             `json:"responseMimeType,omitempty"`
	ResponseSchema   interface{}        `json:"responseSchema,omitempty"`
	ImageConfig      *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *geminiError `json:"error,omitempty"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// text joins the text parts of the first candidate
func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// schema is a tiny builder for Gemini response schemas
type schema map[string]interface{}

func objectSchema(properties schema, required ...string) schema {
	s := schema{"type": "OBJECT", "properties": properties}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func arraySchema(items schema) schema {
	return schema{"type": "ARRAY", "items": items}
}

func stringSchema() schema {
	return schema{"type": "STRING"}
}

func newGeminiHTTPClient() *http.Client {
	return &http.Client{}
}

func (a *ContentGeneratorAgent) callGemini(ctx context.Context, model string, reqBody geminiRequest) (*geminiResponse, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		log.Printf("Gemini API error (status %d): %s", resp.StatusCode, string(body))
		return nil, ErrInvalidPrompt
	case resp.StatusCode == http.StatusTooManyRequests:
		log.Printf("Gemini API error (status %d): %s", resp.StatusCode, string(body))
		return nil, ErrQuotaExceeded
	case resp.StatusCode != http.StatusOK:
		log.Printf("Gemini API error (status %d): %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if apiResp.Error != nil {
		return nil, fmt.Errorf("API error: %s - %s", apiResp.Error.Status, apiResp.Error.Message)
	}

	return &apiResp, nil
}

func textRequest(prompt string, config *geminiGenerationConfig) geminiRequest {
	return geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
		GenerationConfig: config,
	}
}
