package render

import (
	"bufio"
	"io"
)

// sink is the append-only document output. It is closed exactly once; the
// first failed write is kept and every later write is dropped.
type sink struct {
	w      *bufio.Writer
	err    error
	closed bool
}

func newSink(w io.Writer) *sink {
	return &sink{w: bufio.NewWriter(w)}
}

// line writes each argument followed by a newline.
func (s *sink) line(lines ...string) {
	if s.closed {
		if s.err == nil {
			s.err = ErrSinkClosed
		}

		return
	}

	for _, l := range lines {
		if s.err != nil {
			return
		}

		if _, err := s.w.WriteString(l); err != nil {
			s.err = err

			return
		}

		s.err = s.w.WriteByte('\n')
	}
}

// close flushes buffered output and returns the first error.
func (s *sink) close() error {
	if s.closed {
		return ErrSinkClosed
	}

	s.closed = true

	if s.err != nil {
		return s.err
	}

	s.err = s.w.Flush()

	return s.err
}
