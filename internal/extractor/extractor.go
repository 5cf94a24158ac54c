package extractor

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"dumpextract/pkg/espdump"
	"dumpextract/pkg/payloadtype"

	"github.com/pkg/errors"
)

const (
	DefaultInput  = "a_dump.txt"
	DefaultOutput = "raw_dump.mp3"

	// StdioPath selects stdin for input and stdout for output.
	StdioPath = "-"
)

// Config holds the paths and options of one extraction run
type Config struct {
	Input  string
	Output string
	Tag    string
	Strict bool

	// Stdin and Stdout are used when a path is StdioPath.
	Stdin  io.Reader
	Stdout io.Writer
}

// ResolvePath returns path if set, otherwise the value of the environment
// variable envName, otherwise def.
func ResolvePath(path, envName, def string) string {
	if path != "" {
		return path
	}
	if fromEnv := os.Getenv(envName); fromEnv != "" {
		return fromEnv
	}
	return def
}

// ExtractFile reads the dump at path and returns the extracted payload.
func ExtractFile(path string, opts espdump.Options) (*espdump.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening dump")
	}
	defer f.Close()

	result, err := espdump.Extract(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "extracting %s", path)
	}
	return result, nil
}

// WriteOutput creates or truncates path and writes data to it in one call.
func WriteOutput(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "closing output")
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Run extracts cfg.Input and writes the payload to cfg.Output. Nothing is
// written if extraction fails.
func Run(cfg Config) (*espdump.Result, error) {
	opts := espdump.Options{Strict: cfg.Strict, Tag: cfg.Tag}

	var result *espdump.Result
	var err error
	if cfg.Input == StdioPath {
		result, err = espdump.Extract(cfg.Stdin, opts)
		if err != nil {
			err = errors.Wrap(err, "extracting stdin")
		}
	} else {
		result, err = ExtractFile(cfg.Input, opts)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Output == StdioPath {
		if _, err := cfg.Stdout.Write(result.Data); err != nil {
			return nil, errors.Wrap(err, "writing stdout")
		}
	} else if err := WriteOutput(cfg.Output, result.Data); err != nil {
		return nil, err
	}

	payloadType, reason := payloadtype.Detect(result.Data)
	slog.Info("Extracted dump",
		"input", cfg.Input,
		"output", cfg.Output,
		"bytes", len(result.Data),
		"lines", result.Lines,
		"tags", result.Tags,
		"payload", payloadType)
	slog.Debug("Dump details",
		"firstAddress", formatAddress(result.FirstAddress),
		"lastAddress", formatAddress(result.LastAddress),
		"strict", cfg.Strict,
		"reason", reason)

	return result, nil
}

func formatAddress(address uint64) string {
	return fmt.Sprintf("0x%08x", address)
}
