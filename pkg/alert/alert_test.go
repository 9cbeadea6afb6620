package alert

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joenewbry/prospector/pkg/prospect"
)

func testNotification(top int) *Notification {
	n := &Notification{
		RunID:    "run_abc12345",
		Campaign: "memex",
		Total:    top,
		Adapters: []string{"github", "hackernews"},
	}
	for i := 0; i < top; i++ {
		n.Top = append(n.Top, prospect.Prospect{
			Source:      prospect.SourceGitHub,
			Username:    fmt.Sprintf("user%d", i),
			DisplayName: fmt.Sprintf("User %d", i),
			ProfileURL:  fmt.Sprintf("https://github.com/user%d", i),
			FinalScore:  0.9 - float64(i)*0.1,
		})
	}
	return n
}

func TestWebhookSendsSignedEvent(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "s3cret")
	if err := wh.Send(context.Background(), testNotification(2)); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got := gotHeader.Get("X-Prospector-Event"); got != "run.finished" {
		t.Errorf("event header = %q, want run.finished", got)
	}
	if got := gotHeader.Get("X-Prospector-Run"); got != "run_abc12345" {
		t.Errorf("run header = %q, want run_abc12345", got)
	}

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if got := gotHeader.Get("X-Signature-256"); got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}

	var event webhookEvent
	if err := json.Unmarshal(gotBody, &event); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if event.Event != "run.finished" {
		t.Errorf("event = %q, want run.finished", event.Event)
	}
	if event.EmittedAt.IsZero() {
		t.Error("emitted_at is zero")
	}
	if event.Run == nil || event.Run.RunID != "run_abc12345" {
		t.Errorf("run payload = %+v, want run_abc12345", event.Run)
	}
	if len(event.Run.Top) != 2 {
		t.Errorf("top prospects = %d, want 2", len(event.Run.Top))
	}
}

func TestWebhookNoSecretSkipsSignature(t *testing.T) {
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "")
	if err := wh.Send(context.Background(), testNotification(1)); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := gotHeader.Get("X-Signature-256"); got != "" {
		t.Errorf("signature = %q, want empty", got)
	}
}

func TestWebhookErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "")
	if err := wh.Send(context.Background(), testNotification(1)); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestSlackCapsTopProspects(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	s := NewSlack(srv.URL)
	if err := s.Send(context.Background(), testNotification(8)); err != nil {
		t.Fatalf("Send: %v", err)
	}

	var payload struct {
		Blocks []struct {
			Type     string           `json:"type"`
			Elements []map[string]any `json:"elements"`
		} `json:"blocks"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	found := false
	for _, b := range payload.Blocks {
		if b.Type == "context" {
			found = true
			if len(b.Elements) != 5 {
				t.Errorf("context elements = %d, want 5", len(b.Elements))
			}
		}
	}
	if !found {
		t.Error("no context block in payload")
	}
}

func TestBroadcastJoinsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := NewManager([]Notifier{NewWebhook(srv.URL, ""), NewDiscord(srv.URL)})
	err := m.Broadcast(context.Background(), testNotification(1))
	if err == nil {
		t.Fatal("expected joined error from failing notifiers")
	}
}
