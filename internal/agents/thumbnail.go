package agents

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const thumbnailAspectRatio = "9:16"

// GenerateThumbnail renders a thumbnail background and returns it as a data URL.
// An empty string with a nil error means the model produced no image.
func (a *ContentGeneratorAgent) GenerateThumbnail(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyInput
	}

	finalPrompt := fmt.Sprintf("Create a high-contrast, attention-grabbing TikTok thumbnail background for: %s. Vibrant colors, neon aesthetic, 9:16 aspect ratio.", prompt)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: finalPrompt}},
			},
		},
		GenerationConfig: &geminiGenerationConfig{
			ImageConfig: &geminiImageConfig{AspectRatio: thumbnailAspectRatio},
		},
	}

	resp, err := a.callGemini(ctx, a.imageModel, reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to generate thumbnail: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			log.Printf("⚠️ Thumbnail prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return "data:image/png;base64," + part.InlineData.Data, nil
		}
		if part.Text != "" {
			log.Printf("⚠️ Model returned text instead of image: %s", part.Text)
		}
	}

	return "", nil
}
