package espdump

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Options controls which lines contribute to the payload.
type Options struct {
	// Strict requires exactly BytesPerLine byte tokens per line.
	Strict bool

	// Tag restricts extraction to lines with this tag. Empty accepts all tags.
	Tag string
}

// Result is the outcome of one extraction run.
type Result struct {
	Data         []byte   // Concatenated payload, in input order
	Lines        int      // Number of lines that contributed
	Tags         []string // Distinct tags of contributing lines, in order of first appearance
	FirstAddress uint64
	LastAddress  uint64
}

// Extract reads dump lines from r and returns the concatenated payload.
// Lines that are not dump lines are skipped. A matched line that cannot be
// decoded aborts the run with a *DecodeError.
func Extract(r io.Reader, opts Options) (*Result, error) {
	result := &Result{Data: []byte{}}
	br := bufio.NewReader(r)

	lineNo := 0
	for {
		text, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.Wrap(readErr, "reading dump")
		}
		if len(text) == 0 && readErr == io.EOF {
			break
		}
		lineNo++

		line, ok, err := ParseLine(text, opts.Strict)
		if err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				decodeErr.Line = lineNo
			}
			return nil, err
		}
		if ok && (opts.Tag == "" || line.Tag == opts.Tag) {
			result.add(line)
		}

		if readErr == io.EOF {
			break
		}
	}

	return result, nil
}

func (r *Result) add(line Line) {
	if r.Lines == 0 {
		r.FirstAddress = line.Address
	}
	r.LastAddress = line.Address
	r.Lines++
	r.Data = append(r.Data, line.Data...)
	for _, tag := range r.Tags {
		if tag == line.Tag {
			return
		}
	}
	r.Tags = append(r.Tags, line.Tag)
}
