package render

import "strings"

// Session accumulates the text of one top-level render request.
type Session struct {
	buf  strings.Builder
	open bool
}

// NewSession returns a closed session.
func NewSession() *Session { return &Session{} }

// Begin opens the session. Opening an open session is fatal.
func (s *Session) Begin() {
	if s.open {
		fatalf(ErrSessionOpen, "begin")
	}
	s.open = true
	s.buf.Reset()
}

// End closes the session and returns the accumulated text. Closing a closed
// session is fatal.
func (s *Session) End() string {
	if !s.open {
		fatalf(ErrSessionClosed, "end")
	}
	s.open = false
	text := s.buf.String()
	s.buf.Reset()
	return text
}

// Open reports whether the session is accepting text.
func (s *Session) Open() bool { return s.open }

// WriteString appends text to the open session.
func (s *Session) WriteString(text string) {
	if !s.open {
		fatalf(ErrSessionClosed, "write")
	}
	s.buf.WriteString(text)
}
