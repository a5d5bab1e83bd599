package collector

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"whatsapp-client/pkg/webhook"
)

func newTestWebhook() (*webhook.Handler, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	h := webhook.NewHandler("secret")
	r := gin.New()
	h.Routes(r)
	return h, r
}

// pushText delivers a text message through the webhook endpoint, so the
// collector sees exactly what a live dispatch would produce.
func pushText(t *testing.T, r *gin.Engine, from, id, body string) {
	t.Helper()
	payload := fmt.Sprintf(`{
		"object": "whatsapp_business_account",
		"entry": [{"changes": [{"field": "messages", "value": {"messages": [
			{"from": %q, "id": %q, "type": "text", "text": {"body": %q}}
		]}}]}]
	}`, from, id, body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("push failed: %d %q", w.Code, w.Body.String())
	}
}

func TestNewRequiresHandler(t *testing.T) {
	_, err := New(nil, Options{})
	if err == nil || !strings.Contains(err.Error(), "webhook handler is not initialized") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCollectorStopsAtMax(t *testing.T) {
	h, r := newTestWebhook()
	c, err := New(h, Options{Max: 1})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	pushText(t, r, "14155550100", "wamid.1", "first")
	pushText(t, r, "14155550100", "wamid.2", "second")

	if !c.Ended() {
		t.Fatal("collector did not stop at max")
	}
	collected := <-c.Done()
	if len(collected) != 1 {
		t.Fatalf("expected 1 message, got %d", len(collected))
	}
	if msg := collected["wamid.1"]; msg == nil || msg.Text != "first" {
		t.Fatalf("unexpected collected message: %+v", collected)
	}
}

func TestCollectorTimeout(t *testing.T) {
	h, _ := newTestWebhook()
	c, err := New(h, Options{Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	select {
	case collected := <-c.Done():
		if len(collected) != 0 {
			t.Fatalf("expected empty map on timeout, got %d entries", len(collected))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("collector never ended")
	}
	if !c.Ended() {
		t.Fatal("collector not marked ended after timeout")
	}
}

func TestCollectorFilter(t *testing.T) {
	h, r := newTestWebhook()
	c, err := New(h, Options{
		Filter: func(m *webhook.IncomingMessage) bool { return m.From == "14155550100" },
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	pushText(t, r, "14155550100", "wamid.1", "keep")
	pushText(t, r, "14155550199", "wamid.2", "drop")

	collected := c.Collected()
	if len(collected) != 1 || collected["wamid.1"] == nil {
		t.Fatalf("unexpected collected set: %+v", collected)
	}
}

func TestCollectorLastWriteWins(t *testing.T) {
	h, r := newTestWebhook()
	c, err := New(h, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	pushText(t, r, "14155550100", "wamid.1", "old")
	pushText(t, r, "14155550100", "wamid.1", "new")

	collected := c.Collected()
	if len(collected) != 1 || collected["wamid.1"].Text != "new" {
		t.Fatalf("expected the redelivery to replace the entry: %+v", collected)
	}
}

func TestCollectorOnCollect(t *testing.T) {
	h, r := newTestWebhook()
	var seen []string
	c, err := New(h, Options{
		OnCollect: func(m *webhook.IncomingMessage) { seen = append(seen, m.ID) },
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	pushText(t, r, "14155550100", "wamid.1", "a")
	pushText(t, r, "14155550100", "wamid.2", "b")
	c.Stop()

	if len(seen) != 2 || seen[0] != "wamid.1" || seen[1] != "wamid.2" {
		t.Fatalf("unexpected callback order: %v", seen)
	}
}

func TestCollectorIgnoresEventsAfterStop(t *testing.T) {
	h, r := newTestWebhook()
	c, err := New(h, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	pushText(t, r, "14155550100", "wamid.1", "in")
	c.Stop()
	c.Stop() // second call is a no-op
	pushText(t, r, "14155550100", "wamid.2", "late")

	collected := <-c.Done()
	if len(collected) != 1 || collected["wamid.1"] == nil {
		t.Fatalf("late message leaked into the collection: %+v", collected)
	}
}

func TestAwaitMessage(t *testing.T) {
	h, r := newTestWebhook()

	result := make(chan *webhook.IncomingMessage, 1)
	errs := make(chan error, 1)
	go func() {
		msg, err := AwaitMessage(h, nil, 2*time.Second)
		result <- msg
		errs <- err
	}()

	// Give the goroutine a moment to subscribe before the event arrives.
	time.Sleep(20 * time.Millisecond)
	pushText(t, r, "14155550100", "wamid.1", "here")

	msg := <-result
	if err := <-errs; err != nil {
		t.Fatalf("await: %v", err)
	}
	if msg == nil || msg.ID != "wamid.1" || msg.Text != "here" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestAwaitMessageTimeout(t *testing.T) {
	h, _ := newTestWebhook()

	msg, err := AwaitMessage(h, nil, 20*time.Millisecond)
	if msg != nil {
		t.Fatalf("expected no message, got %+v", msg)
	}
	if err == nil || !strings.Contains(err.Error(), "no messages were collected within the time limit") {
		t.Fatalf("unexpected error: %v", err)
	}
}
