package espdump

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// FormatLine renders up to BytesPerLine bytes as one dump line, including
// the trailing newline. Short chunks are padded so the ASCII column lines up.
func FormatLine(tick uint64, tag string, address uint64, chunk []byte) []byte {
	if len(chunk) > BytesPerLine {
		chunk = chunk[:BytesPerLine]
	}
	out := fmt.Appendf(nil, "D (%d) %s: 0x%08x ", tick, tag, address)
	for i := 0; i < BytesPerLine; i++ {
		if i%8 == 0 {
			out = append(out, ' ')
		}
		if i < len(chunk) {
			out = fmt.Appendf(out, " %02x", chunk[i])
		} else {
			out = append(out, "   "...)
		}
	}
	out = append(out, "  |"...)
	for _, b := range chunk {
		if b >= 0x20 && b <= 0x7e {
			out = append(out, b)
		} else {
			out = append(out, '.')
		}
	}
	out = append(out, "|\n"...)
	return out
}

// Writer renders a payload as consecutive dump lines. The address advances
// by the number of bytes on each line and the tick by one.
// Close must be called to flush a trailing partial line.
type Writer struct {
	w       io.Writer
	tag     string
	tick    uint64
	address uint64
	pending []byte
	err     error
}

var _ io.WriteCloser = &Writer{}

// NewWriter creates a Writer that starts at the given tick and address.
func NewWriter(w io.Writer, tag string, tick, address uint64) *Writer {
	return &Writer{
		w:       w,
		tag:     tag,
		tick:    tick,
		address: address,
	}
}

func (dw *Writer) Write(p []byte) (n int, err error) {
	if dw.err != nil {
		return 0, dw.err
	}
	dw.pending = append(dw.pending, p...)
	for len(dw.pending) >= BytesPerLine {
		if err := dw.emit(dw.pending[:BytesPerLine]); err != nil {
			return 0, err
		}
		dw.pending = dw.pending[BytesPerLine:]
	}
	return len(p), nil
}

// Close writes any buffered partial line. It does not close the underlying
// io.Writer.
func (dw *Writer) Close() error {
	if dw.err != nil {
		return dw.err
	}
	if len(dw.pending) > 0 {
		if err := dw.emit(dw.pending); err != nil {
			return err
		}
		dw.pending = nil
	}
	return nil
}

func (dw *Writer) emit(chunk []byte) error {
	if _, err := dw.w.Write(FormatLine(dw.tick, dw.tag, dw.address, chunk)); err != nil {
		dw.err = errors.Wrap(err, "writing dump line")
		return dw.err
	}
	dw.tick++
	dw.address += uint64(len(chunk))
	return nil
}
