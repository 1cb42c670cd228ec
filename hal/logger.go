package hal

import (
	"bytes"
	"io"
	"log/slog"
)

// NewSlogHandler returns a text slog.Handler whose records end up as lines
// on l.
func NewSlogHandler(l Logger, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewTextHandler(LineWriter(l), opts)
}

// LineWriter adapts l to an io.Writer. Each complete line written becomes
// one WriteLineBytes call; a trailing partial line is held until its newline
// arrives.
func LineWriter(l Logger) io.Writer {
	return &lineWriter{l: l}
}

type lineWriter struct {
	l   Logger
	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.l.WriteLineBytes(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}

// Tee returns a Logger that writes every line to each of ls in order.
func Tee(ls ...Logger) Logger {
	return teeLogger(ls)
}

type teeLogger []Logger

func (t teeLogger) WriteLineString(s string) {
	for _, l := range t {
		l.WriteLineString(s)
	}
}

func (t teeLogger) WriteLineBytes(b []byte) {
	for _, l := range t {
		l.WriteLineBytes(b)
	}
}
