package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/field-service-api/internal/models"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	fail bool
}

func (s *recordingSender) Name() string { return "recording" }

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if s.fail {
		return errors.New("provider down")
	}
	return nil
}

func TestReminderIncludesTechnician(t *testing.T) {
	c := NewComposer("Spark & Flow Services")
	sr := &models.ServiceRequest{Name: "Dana", Phone: "+15550001"}
	ap := &models.Appointment{ServiceType: "plumbing", ScheduledDate: "2025-06-01", TimeSlot: "morning"}

	msg := c.Reminder(sr, ap)
	assert.Equal(t, KindReminder, msg.Kind)
	assert.Equal(t, "+15550001", msg.To)
	assert.NotContains(t, msg.Body, " with ")

	ap.TechnicianName = "Ana"
	msg = c.Reminder(sr, ap)
	assert.Contains(t, msg.Body, "2025-06-01, morning (8AM-12PM) with Ana")
}

func TestQuoteIssuedCarriesToken(t *testing.T) {
	amount := 420.0
	token := "abc-123"
	sr := &models.ServiceRequest{Name: "Dana", Phone: "+15550001", QuotedAmount: &amount, QuoteToken: &token}

	msg := NewComposer("Spark").QuoteIssued(sr)
	assert.Contains(t, msg.Body, "$420.00")
	assert.Contains(t, msg.Body, "abc-123")
}

func TestAsyncDispatcherSkipsEmptyRecipients(t *testing.T) {
	sender := &recordingSender{}
	d := NewAsyncDispatcher(sender, 10)

	d.Dispatch(
		Message{Kind: KindCancelled, To: "+15550001", Body: "a"},
		Message{Kind: KindCancelled, To: "", Body: "b"},
	)
	d.Close()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a", sender.sent[0].Body)
}

func TestAsyncDispatcherSwallowsFailures(t *testing.T) {
	sender := &recordingSender{fail: true}
	d := NewAsyncDispatcher(sender, 10)

	assert.NotPanics(t, func() {
		d.Dispatch(Message{Kind: KindReminder, To: "+15550001"})
		d.Close()
	})
	assert.Len(t, sender.sent, 1)
}

func TestHTTPSenderPostsForm(t *testing.T) {
	var got struct {
		path, user, pass, to, from, body string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.user, got.pass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		got.to = r.PostForm.Get("To")
		got.from = r.PostForm.Get("From")
		got.body = r.PostForm.Get("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewHTTPSender(srv.URL+"/", "AC1", "secret", "+15559999")
	err := s.Send(context.Background(), Message{To: "+15550001", Body: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "/Accounts/AC1/Messages.json", got.path)
	assert.Equal(t, "AC1", got.user)
	assert.Equal(t, "secret", got.pass)
	assert.Equal(t, "+15550001", got.to)
	assert.Equal(t, "+15559999", got.from)
	assert.Equal(t, "hello", got.body)
}

func TestHTTPSenderReportsProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid number", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewHTTPSender(srv.URL, "AC1", "secret", "+1").Send(context.Background(), Message{To: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
