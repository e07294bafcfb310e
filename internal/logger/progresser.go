package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// IsTerminal reports whether w is a file connected to a terminal.
// Buffers and pipes report false.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	return err == nil && (stat.Mode()&os.ModeCharDevice) != 0
}

// Progresser receives progress of a multi-step fetch.
type Progresser interface {
	Update(current, total int)
}

// TTYProgresser redraws a single status line in place.
type TTYProgresser struct {
	mu     sync.Mutex
	out    io.Writer
	format string
	drawn  bool
}

// NewProgresser creates a TTYProgresser writing to out. format takes the
// current and total counts, e.g. "Folders: %d/%d".
func NewProgresser(out io.Writer, format string) *TTYProgresser {
	return &TTYProgresser{out: out, format: format}
}

// Update redraws the status line.
func (p *TTYProgresser) Update(current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "\r"+p.format, current, total)
	p.drawn = true
}

// Clear erases the status line. It writes nothing if Update was never called.
func (p *TTYProgresser) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.drawn {
		return
	}
	// \r returns to column 0, \033[K erases to end of line
	_, _ = io.WriteString(p.out, "\r\033[K")
	p.drawn = false
}
