package espdump

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// BytesPerLine is the number of bytes the device emits per dump line.
const BytesPerLine = 16

var (
	tagPattern = regexp.MustCompile(`^\w+$`)

	// laxPattern accepts any number of byte tokens before the delimiter.
	laxPattern = regexp.MustCompile(`^D\s\((\d+)\)\s(\w+):\s(0x[0-9a-f]+)\s+((?:[0-9a-f]{2}\s+)+)\|`)

	// strictPattern requires exactly BytesPerLine byte tokens.
	strictPattern = regexp.MustCompile(`^D\s\((\d+)\)\s(\w+):\s(0x[0-9a-f]+)\s+((?:[0-9a-f]{2}\s+){16})\|`)
)

// Line is one decoded dump line.
type Line struct {
	Tick    uint64
	Tag     string
	Address uint64
	Data    []byte
}

// DecodeError is returned when a matched byte run is not valid hex.
type DecodeError struct {
	Line int // 1-based line number in the input, 0 if unknown
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decoding dump line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("decoding dump line: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ParseLine matches s against the dump line format. ok is false if the line
// is not a dump line. err is only set for a line that matched but whose byte
// run could not be decoded.
func ParseLine(s string, strict bool) (line Line, ok bool, err error) {
	pattern := laxPattern
	if strict {
		pattern = strictPattern
	}
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Line{}, false, nil
	}

	// The pattern guarantees digits, so the only failure is overflow, where
	// ParseUint saturates. The bytes still count.
	tick, _ := strconv.ParseUint(m[1], 10, 64)
	address, _ := strconv.ParseUint(strings.TrimPrefix(m[3], "0x"), 16, 64)

	// Unreachable with the current patterns, which only capture [0-9a-f]{2}
	// tokens. Kept so a looser pattern cannot turn bad hex into silent loss.
	data, err := decodeTokens(m[4])
	if err != nil {
		return Line{}, true, &DecodeError{Err: err}
	}

	return Line{
		Tick:    tick,
		Tag:     m[2],
		Address: address,
		Data:    data,
	}, true, nil
}

// ValidTag reports whether tag can appear in a dump line.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag)
}

// decodeTokens strips all whitespace from a byte run and hex-decodes the rest.
func decodeTokens(run string) ([]byte, error) {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, run)
	data, err := hex.DecodeString(stripped)
	if err != nil {
		return nil, errors.Wrapf(err, "hex run %q", stripped)
	}
	return data, nil
}
