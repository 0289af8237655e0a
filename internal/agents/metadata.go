package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// scriptExcerptLimit bounds how much of the script goes into the metadata prompt
const scriptExcerptLimit = 500

// GenerateMetadata derives a caption and hashtags from script
func (a *ContentGeneratorAgent) GenerateMetadata(ctx context.Context, script string) (string, []string, error) {
	if strings.TrimSpace(script) == "" {
		return "", nil, ErrEmptyInput
	}

	prompt := fmt.Sprintf(`Based on this script, generate a catchy caption (under 100 chars) and 10 viral hashtags.
Script: "%s..."`, excerpt(script, scriptExcerptLimit))

	config := &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema: objectSchema(schema{
			"caption":  stringSchema(),
			"hashtags": arraySchema(stringSchema()),
		}),
	}

	resp, err := a.callGemini(ctx, a.textModel, textRequest(prompt, config))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate metadata: %w", err)
	}

	caption, hashtags := a.parseMetadata(resp.text())
	return caption, hashtags, nil
}

// parseMetadata reads the JSON answer, falling back to CAPTION:/HASHTAGS: lines
func (a *ContentGeneratorAgent) parseMetadata(response string) (string, []string) {
	var payload struct {
		Caption  string   `json:"caption"`
		Hashtags []string `json:"hashtags"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &payload); err == nil {
		return strings.TrimSpace(payload.Caption), normalizeHashtags(payload.Hashtags)
	}

	var caption string
	var tags []string

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "CAPTION:") {
			caption = strings.TrimSpace(strings.TrimPrefix(line, "CAPTION:"))
		}

		if strings.HasPrefix(line, "HASHTAGS:") {
			tagsStr := strings.TrimSpace(strings.TrimPrefix(line, "HASHTAGS:"))
			tagsStr = strings.Trim(tagsStr, "[]")
			tags = append(tags, strings.FieldsFunc(tagsStr, func(r rune) bool {
				return r == ',' || r == ' '
			})...)
		}
	}

	return caption, normalizeHashtags(tags)
}

func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		tag = strings.TrimLeft(tag, "#")
		if tag == "" {
			continue
		}
		out = append(out, "#"+strings.ReplaceAll(tag, " ", ""))
	}
	return out
}

// excerpt cuts s to at most n runes
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
