package trace

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// StreamTracer writes each event as it arrives. Output to a regular file is
// buffered until Flush; any other writer is written through.
type StreamTracer struct {
	mu     sync.Mutex
	dst    io.Writer
	bw     *bufio.Writer // nil for standard streams
	level  Level
	format Format
}

// NewStreamTracer creates a StreamTracer. FormatAuto falls back to text.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	t := &StreamTracer{dst: w, level: level, format: format}
	if f, ok := w.(*os.File); ok && !isStdStream(f) {
		t.bw = bufio.NewWriter(f)
	}
	return t
}

func isStdStream(w io.Writer) bool {
	return w == os.Stderr || w == os.Stdout
}

func (t *StreamTracer) out() io.Writer {
	if t.bw != nil {
		return t.bw
	}
	return t.dst
}

// Emit writes ev. Write errors are dropped; a broken trace output must not
// change a verdict.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.admits(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Seq = nextSeq()
	_, _ = t.out().Write(FormatEvent(ev, t.format))
}

// Flush pushes buffered events to the destination.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bw != nil {
		return t.bw.Flush()
	}
	return nil
}

// Close flushes and closes the destination. Standard streams stay open.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.dst.(io.Closer); ok && t.bw != nil {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }
