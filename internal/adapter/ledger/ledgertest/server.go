// Package ledgertest provides a recording stand-in for the ledger service.
package ledgertest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Call is one request received by the fake ledger.
type Call struct {
	Method      string
	Path        string
	RawQuery    string
	RequestURI  string
	ContentType string
	Header      http.Header
	Body        []byte
}

// Responder decides the reply for a call.
type Responder func(Call) (status int, body string)

// Reply answers every call with the same status and body.
func Reply(status int, body string) Responder {
	return func(Call) (int, string) { return status, body }
}

type Server struct {
	*httptest.Server

	mu      sync.Mutex
	calls   []Call
	respond Responder
}

// NewServer starts a fake ledger that is closed when the test ends.
func NewServer(t testing.TB, respond Responder) *Server {
	t.Helper()

	s := &Server{respond: respond}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	call := Call{
		Method:      r.Method,
		Path:        r.URL.EscapedPath(),
		RawQuery:    r.URL.RawQuery,
		RequestURI:  r.RequestURI,
		ContentType: r.Header.Get("Content-Type"),
		Header:      r.Header.Clone(),
		Body:        body,
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	respond := s.respond
	s.mu.Unlock()

	status, reply := respond(call)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, reply)
}

// Calls returns a copy of every call received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// SetResponder swaps the reply policy for later calls.
func (s *Server) SetResponder(respond Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respond = respond
}
