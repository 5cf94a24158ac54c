package extractor

import (
	"io"
	"log/slog"
	"os"

	"dumpextract/pkg/espdump"

	"github.com/pkg/errors"
)

// DumpConfig holds the paths and line parameters for rendering a binary
// file as dump lines
type DumpConfig struct {
	Input   string
	Output  string
	Tag     string
	Address uint64

	Stdin  io.Reader
	Stdout io.Writer
}

// RunDump renders cfg.Input as dump lines into cfg.Output.
func RunDump(cfg DumpConfig) (err error) {
	if !espdump.ValidTag(cfg.Tag) {
		return errors.Errorf("invalid tag %q: must be letters, digits or underscores", cfg.Tag)
	}

	var data []byte
	if cfg.Input == StdioPath {
		data, err = io.ReadAll(cfg.Stdin)
	} else {
		data, err = os.ReadFile(cfg.Input)
	}
	if err != nil {
		return errors.Wrap(err, "reading payload")
	}

	out := cfg.Stdout
	if cfg.Output != StdioPath {
		f, createErr := os.Create(cfg.Output)
		if createErr != nil {
			return errors.Wrap(createErr, "creating dump")
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = errors.Wrap(closeErr, "closing dump")
			}
		}()
		out = f
	}

	w := espdump.NewWriter(out, cfg.Tag, 0, cfg.Address)
	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	slog.Debug("Wrote dump", "input", cfg.Input, "output", cfg.Output, "bytes", len(data))
	return nil
}
