package export

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/seqtools/edl-agent/internal/timeline"
)

// Format names one of the two supported output formats.
type Format string

const (
	FormatVegas      Format = "vegas"
	FormatSamplitude Format = "samplitude"
)

// Ext returns the conventional file extension for the format.
func (f Format) Ext() string {
	if f == FormatVegas {
		return ".txt"
	}
	return ".edl"
}

// ParseFormat maps a caller-supplied string to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatVegas, FormatSamplitude:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// WriteFile exports p to path in the given format. A pre-existing file
// at path is deleted first and the new content written in place; there
// is no atomic rename, so a failure mid-write leaves a partial file the
// caller should discard.
func WriteFile(path string, format Format, p *timeline.Project, opts Options, logger *slog.Logger) error {
	return writeFile(path, func(w io.Writer) error {
		switch format {
		case FormatVegas:
			enc := NewVegasEncoder(w)
			enc.SetLogger(logger)
			return enc.Encode(p, opts)
		case FormatSamplitude:
			enc := NewSamplitudeEncoder(w)
			enc.SetLogger(logger)
			return enc.Encode(p, opts)
		}
		return fmt.Errorf("unknown export format %q", format)
	})
}

func writeFile(path string, encode func(io.Writer) error) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove existing file: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := encode(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
