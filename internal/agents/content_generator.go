package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/shubh-37/content-commander/internal/models"
)

// fallbackScript is shown when the model answers with no text
const fallbackScript = "Failed to generate script."

// Supported script durations
var scriptDurations = map[string]string{
	"15 seconds": "15 seconds",
	"30 seconds": "30 seconds",
	"60 seconds": "60 seconds",
	"15s":        "15 seconds",
	"30s":        "30 seconds",
	"60s":        "60 seconds",
	"":           "30 seconds",
}

// ContentGeneratorAgent produces ideas, scripts, metadata and thumbnails with Gemini
type ContentGeneratorAgent struct {
	apiKey     string
	baseURL    string
	textModel  string
	imageModel string
	httpClient *http.Client
}

func NewContentGeneratorAgent(cfg GeminiConfig) (*ContentGeneratorAgent, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}

	return &ContentGeneratorAgent{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		httpClient: newGeminiHTTPClient(),
	}, nil
}

// GenerateIdeas asks for five video ideas about topic
func (a *ContentGeneratorAgent) GenerateIdeas(ctx context.Context, topic string) ([]models.VideoIdea, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyInput
	}

	prompt := fmt.Sprintf(`Generate 5 viral TikTok video ideas for the topic: "%s".
Focus on high-retention hooks.
Return JSON format with 'ideas' array containing objects with 'hook' and 'angle' properties.`, topic)

	config := &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema: objectSchema(schema{
			"ideas": arraySchema(objectSchema(schema{
				"hook":  stringSchema(),
				"angle": stringSchema(),
			}, "hook", "angle")),
		}),
	}

	resp, err := a.callGemini(ctx, a.textModel, textRequest(prompt, config))
	if err != nil {
		return nil, fmt.Errorf("failed to generate ideas: %w", err)
	}

	ideas, err := parseIdeas(resp.text())
	if err != nil {
		return nil, err
	}

	log.Printf("💡 Generated %d ideas for %q", len(ideas), topic)
	return ideas, nil
}

// GenerateScript writes a script for hook at the requested duration
func (a *ContentGeneratorAgent) GenerateScript(ctx context.Context, hook, duration string) (string, error) {
	hook = strings.TrimSpace(hook)
	if hook == "" {
		return "", ErrEmptyInput
	}

	target, ok := scriptDurations[strings.ToLower(strings.TrimSpace(duration))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
	}

	prompt := fmt.Sprintf(`Write a viral TikTok script for this idea: "%s".
Target duration: %s.
Format it with specific visual cues in brackets [Visual] and spoken audio in bold **Audio**.`, hook, target)

	resp, err := a.callGemini(ctx, a.textModel, textRequest(prompt, nil))
	if err != nil {
		return "", fmt.Errorf("failed to generate script: %w", err)
	}

	script := strings.TrimSpace(resp.text())
	if script == "" {
		return fallbackScript, nil
	}
	return script, nil
}

func parseIdeas(text string) ([]models.VideoIdea, error) {
	if strings.TrimSpace(text) == "" {
		return []models.VideoIdea{}, nil
	}

	var payload struct {
		Ideas []struct {
			Hook  string `json:"hook"`
			Angle string `json:"angle"`
		} `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse ideas: %w", err)
	}

	ideas := make([]models.VideoIdea, 0, len(payload.Ideas))
	for _, idea := range payload.Ideas {
		if strings.TrimSpace(idea.Hook) == "" {
			continue
		}
		ideas = append(ideas, models.NewVideoIdea(strings.TrimSpace(idea.Hook), strings.TrimSpace(idea.Angle)))
	}
	return ideas, nil
}

// stripCodeFence removes a ```json fence the model sometimes adds
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
