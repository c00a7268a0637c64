package notify

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	done chan struct{}
}

func (s *recordingSender) ProviderID() string { return "recording" }

func (s *recordingSender) Send(_ context.Context, to string, body string) error {
	s.mu.Lock()
	s.sent = append(s.sent, Message{To: to, Body: body})
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func TestNotifier_DeliversAsync(t *testing.T) {
	sender := &recordingSender{done: make(chan struct{}, 2)}
	n := NewNotifier(sender)

	n.BusinessNewBooking("+5521999990000", "Ana Souza", "2030-05-20", "09:00")
	n.CustomerConfirmation("21988887777", "Studio Ipanema", "2030-05-20", "09:00")

	for i := 0; i < 2; i++ {
		select {
		case <-sender.done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for delivery")
		}
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "+5521999990000" {
		t.Fatalf("wrong recipient: %q", sender.sent[0].To)
	}
}

func TestNotifier_SkipsEmptyRecipient(t *testing.T) {
	sender := &recordingSender{done: make(chan struct{}, 1)}
	n := NewNotifier(sender)

	n.BusinessNewBooking("", "Ana Souza", "2030-05-20", "09:00")

	select {
	case <-sender.done:
		t.Fatal("message without recipient must be dropped")
	case <-time.After(100 * time.Millisecond):
	}
}
