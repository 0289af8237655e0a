package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/slack-go/slack"

	"github.com/shubh-37/content-commander/internal/agents"
	"github.com/shubh-37/content-commander/internal/models"
)

type fakeSlack struct {
	mu       sync.Mutex
	messages []map[string]string
}

func (f *fakeSlack) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/auth.test"):
			w.Write([]byte(`{"ok":true,"user_id":"UBOT","team_id":"T1"}`))
		case strings.HasSuffix(r.URL.Path, "/chat.postMessage"):
			if err := r.ParseForm(); err != nil {
				t.Errorf("ParseForm: %v", err)
			}
			f.mu.Lock()
			f.messages = append(f.messages, map[string]string{
				"channel": r.FormValue("channel"),
				"text":    r.FormValue("text"),
				"blocks":  r.FormValue("blocks"),
			})
			f.mu.Unlock()
			w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1700000000.000100"}`))
		default:
			t.Errorf("unexpected Slack call %s", r.URL.Path)
		}
	}
}

func newTestNotifier(t *testing.T) (*Notifier, *fakeSlack) {
	t.Helper()
	fake := &fakeSlack{}
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), "xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.GetBotID() != "UBOT" {
		t.Fatalf("unexpected bot id %q", client.GetBotID())
	}
	return NewNotifier(client, "C1"), fake
}

func TestNotifyScheduledUpload(t *testing.T) {
	notifier, fake := newTestNotifier(t)
	account := models.TikTokAccount{ID: "1", Username: "@creator_one"}
	post := models.NewScheduledPost(account, "Watch this", "", "2026-11-01T18:30")

	err := notifier.NotifyUpload(context.Background(), account, agents.UploadResult{
		Outcome: agents.OutcomeSimulated,
		Status:  agents.StatusScheduled,
		Post:    &post,
	})
	if err != nil {
		t.Fatalf("NotifyUpload: %v", err)
	}

	if len(fake.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(fake.messages))
	}
	msg := fake.messages[0]
	if msg["channel"] != "C1" || !strings.Contains(msg["text"], "Post scheduled for @creator_one") {
		t.Fatalf("unexpected message %+v", msg)
	}
	if !strings.Contains(msg["blocks"], "2026-11-01T18:30") {
		t.Fatalf("schedule time missing from blocks: %s", msg["blocks"])
	}
}

func TestNotifyFallbackWarning(t *testing.T) {
	notifier, fake := newTestNotifier(t)
	account := models.TikTokAccount{ID: "2", Username: "Real Creator", AccessToken: "tok"}

	err := notifier.NotifyUpload(context.Background(), account, agents.UploadResult{
		Outcome: agents.OutcomeSimulated,
		Status:  agents.StatusPendingApproval,
		Warning: agents.FallbackWarning,
	})
	if err != nil {
		t.Fatalf("NotifyUpload: %v", err)
	}
	if !strings.Contains(fake.messages[0]["blocks"], "Falling back to simulation") {
		t.Fatalf("warning missing: %s", fake.messages[0]["blocks"])
	}
}

func TestSendScheduleDigest(t *testing.T) {
	notifier, fake := newTestNotifier(t)
	account := models.TikTokAccount{ID: "1", Username: "@creator_one"}
	posts := []models.ScheduledPost{
		models.NewScheduledPost(account, strings.Repeat("x", 120), "", "2026-11-02T09:00"),
		models.NewScheduledPost(account, "short", "", "2026-11-01T09:00"),
	}

	if err := notifier.SendScheduleDigest(context.Background(), posts); err != nil {
		t.Fatalf("SendScheduleDigest: %v", err)
	}
	text := fake.messages[0]["text"]
	if !strings.Contains(text, "Total: 2 scheduled posts") || !strings.Contains(text, strings.Repeat("x", 80)+"...") {
		t.Fatalf("unexpected digest %q", text)
	}
}
