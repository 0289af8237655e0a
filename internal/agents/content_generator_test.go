package agents

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestAgent(t *testing.T, handler http.HandlerFunc) *ContentGeneratorAgent {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	agent, err := NewContentGeneratorAgent(GeminiConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewContentGeneratorAgent: %v", err)
	}
	return agent
}

func textResponse(text string) string {
	raw, _ := json.Marshal(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{map[string]interface{}{"text": text}},
				},
			},
		},
	})
	return string(raw)
}

func TestNewContentGeneratorAgentRequiresKey(t *testing.T) {
	if _, err := NewContentGeneratorAgent(GeminiConfig{}); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestAgentLeavesDeadlinesToContext(t *testing.T) {
	agent, err := NewContentGeneratorAgent(GeminiConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewContentGeneratorAgent: %v", err)
	}
	if agent.httpClient.Timeout != 0 {
		t.Fatalf("expected no client timeout, got %v", agent.httpClient.Timeout)
	}
}

func TestGenerateIdeas(t *testing.T) {
	agent := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var req geminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Contents[0].Parts[0].Text, `"cooking"`) {
			t.Errorf("topic missing from prompt")
		}
		if req.SystemInstruction == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected JSON generation config with system instruction")
		}
		w.Write([]byte(textResponse(`{"ideas":[{"hook":"Stop salting pasta water","angle":"myth busting"},{"hook":"3 knife tricks","angle":"skills"}]}`)))
	})

	ideas, err := agent.GenerateIdeas(context.Background(), "cooking")
	if err != nil {
		t.Fatalf("GenerateIdeas: %v", err)
	}
	if len(ideas) != 2 || ideas[0].Hook != "Stop salting pasta water" || ideas[1].Angle != "skills" {
		t.Fatalf("unexpected ideas %+v", ideas)
	}
	if ideas[0].ID == "" || ideas[0].ID == ideas[1].ID {
		t.Fatalf("expected distinct ids")
	}
}

func TestGenerateIdeasEmptyTopic(t *testing.T) {
	called := false
	agent := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	if _, err := agent.GenerateIdeas(context.Background(), "  "); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if called {
		t.Fatalf("expected no API call")
	}
}

func TestGenerateScript(t *testing.T) {
	var prompt string
	agent := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Contents[0].Parts[0].Text
		w.Write([]byte(textResponse("[Visual] close up\n**Audio** hello")))
	})

	script, err := agent.GenerateScript(context.Background(), "my hook", "60s")
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if !strings.HasPrefix(script, "[Visual]") {
		t.Fatalf("unexpected script %q", script)
	}
	if !strings.Contains(prompt, "Target duration: 60 seconds") {
		t.Fatalf("duration missing from prompt: %s", prompt)
	}

	if _, err := agent.GenerateScript(context.Background(), "my hook", "2 hours"); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestGenerateScriptEmptyAnswer(t *testing.T) {
	agent := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	script, err := agent.GenerateScript(context.Background(), "hook", "")
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if script != fallbackScript {
		t.Fatalf("expected fallback script, got %q", script)
	}
}

func TestGenerateMetadata(t *testing.T) {
	long := strings.Repeat("a", 800)
	agent := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		if strings.Contains(req.Contents[0].Parts[0].Text, strings.Repeat("a", 501)) {
			t.Errorf("script excerpt longer than 500 chars")
		}
		w.Write([]byte(textResponse(`{"caption":"Watch till the end","hashtags":["fyp","#viral"," cooking tips "]}`)))
	})

	caption, hashtags, err := agent.GenerateMetadata(context.Background(), long)
	if err != nil {
		t.Fatalf("GenerateMetadata: %v", err)
	}
	if caption != "Watch till the end" {
		t.Fatalf("unexpected caption %q", caption)
	}
	want := []string{"#fyp", "#viral", "#cookingtips"}
	if strings.Join(hashtags, " ") != strings.Join(want, " ") {
		t.Fatalf("expected %v, got %v", want, hashtags)
	}
}

func TestParseMetadataLineFallback(t *testing.T) {
	a := &ContentGeneratorAgent{}
	caption, tags := a.parseMetadata("CAPTION: Big news\nHASHTAGS: [#one, two]")
	if caption != "Big news" || len(tags) != 2 || tags[1] != "#two" {
		t.Fatalf("unexpected parse %q %v", caption, tags)
	}
}

func TestGenerateThumbnail(t *testing.T) {
	agent := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash-image:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req geminiRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.GenerationConfig.ImageConfig == nil || req.GenerationConfig.ImageConfig.AspectRatio != "9:16" {
			t.Errorf("expected 9:16 image config")
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"here you go"},{"inlineData":{"mimeType":"image/png","data":"QUJD"}}]}}]}`))
	})

	url, err := agent.GenerateThumbnail(context.Background(), "neon kitchen")
	if err != nil {
		t.Fatalf("GenerateThumbnail: %v", err)
	}
	if url != "data:image/png;base64,QUJD" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestGenerateThumbnailRefusal(t *testing.T) {
	agent := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(textResponse("I can't make that image.")))
	})

	url, err := agent.GenerateThumbnail(context.Background(), "something")
	if err != nil || url != "" {
		t.Fatalf("expected absent image, got %q err=%v", url, err)
	}
}

func TestGeminiErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrQuotaExceeded},
		{http.StatusBadRequest, ErrInvalidPrompt},
	}
	for _, tc := range cases {
		agent := newTestAgent(t, func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"error":{"code":1,"message":"nope","status":"X"}}`))
		})

		_, err := agent.GenerateThumbnail(context.Background(), "prompt")
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}
