package logging

import "sync"

// Sink collects log entries in memory while the TUI owns the terminal.
//
// Entries are only ever appended. Nothing in the shell clears a Sink, so a
// long session keeps every line it logged; readers page through it with
// Since and a cursor of their own.
type Sink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append adds an entry. Safe for concurrent use.
func (s *Sink) Append(e LogEntry) {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
}

// Len returns the number of entries collected so far.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Lines returns every buffered entry formatted for display.
func (s *Sink) Lines() []string {
	lines, _ := s.Since(0)
	return lines
}

// Since returns the formatted entries at positions >= from, and the cursor
// to pass on the next call.
func (s *Sink) Since(from int) ([]string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from < 0 {
		from = 0
	}
	if from >= len(s.entries) {
		return nil, len(s.entries)
	}
	lines := make([]string, 0, len(s.entries)-from)
	for _, e := range s.entries[from:] {
		lines = append(lines, e.Line())
	}
	return lines, len(s.entries)
}
