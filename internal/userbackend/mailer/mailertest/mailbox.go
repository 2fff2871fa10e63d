// Package mailertest provides an in-process email collaborator for tests.
package mailertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/freecontest/userbackend/pkg/httpx"
)

// Message is one captured send request.
type Message struct {
	SenderEmail    string            `json:"sender_email"`
	RecipientEmail string            `json:"recipient_email"`
	TemplateID     int               `json:"template_id"`
	Params         map[string]string `json:"params"`
}

// Mailbox records every message it is asked to send.
type Mailbox struct {
	*httptest.Server

	mu       sync.Mutex
	messages []Message
	fail     bool
}

// New starts a mailbox that is closed when the test ends.
func New(t testing.TB) *Mailbox {
	t.Helper()
	m := &Mailbox{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /email/v1/send", m.send)
	m.Server = httptest.NewServer(mux)
	t.Cleanup(m.Close)
	return m
}

func (m *Mailbox) Fail(on bool) {
	m.mu.Lock()
	m.fail = on
	m.mu.Unlock()
}

// Messages returns a copy of everything received so far.
func (m *Mailbox) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.messages...)
}

// LastOTP returns the otp param of the latest message sent to recipient.
func (m *Mailbox) LastOTP(recipient string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].RecipientEmail == recipient {
			return m.messages[i].Params["otp"]
		}
	}
	return ""
}

func (m *Mailbox) send(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope[any]{Error: 1, ErrorMsg: err.Error()})
		return
	}

	m.mu.Lock()
	fail := m.fail
	if !fail {
		m.messages = append(m.messages, msg)
	}
	m.mu.Unlock()

	if fail {
		httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{Error: 4000, ErrorMsg: "smtp down"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Envelope[any]{ErrorMsg: "sent"})
}
