package alerts

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/agentstation/pagetree/internal/cmd/output"
)

// FormatWriter writes alerts in the command's output format. JSON and YAML
// get a machine-readable record; table output gets a line per alert,
// coloured on terminals.
type FormatWriter struct {
	w      io.Writer
	format output.Format
	config WriterConfig
}

// WriterConfig controls the text rendering.
type WriterConfig struct {
	ShowTimestamp bool
	ShowDetails   bool
	UseColor      bool
}

// NewFormatWriter creates a writer with details shown and colour enabled
// when w is a terminal.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{
		w:      w,
		format: format,
		config: WriterConfig{ShowDetails: true, UseColor: isTerminal(w)},
	}
}

// WithConfig replaces the writer configuration.
func (fw *FormatWriter) WithConfig(config WriterConfig) *FormatWriter {
	fw.config = config
	return fw
}

// WriteAlert writes one alert.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	if fw.format == output.FormatJSON || fw.format == output.FormatYAML {
		return output.NewFormatter(fw.format).Format(fw.w, fw.record(alert))
	}

	line := alert.String()
	if fw.config.ShowTimestamp {
		line = alert.Timestamp.Format(time.TimeOnly) + " " + line
	}
	if fw.config.UseColor {
		c := alert.Level.Color()
		c.EnableColor()
		line = c.Sprint(line)
	}
	if _, err := fmt.Fprintln(fw.w, line); err != nil {
		return err
	}
	if !fw.config.ShowDetails {
		return nil
	}
	for _, d := range alert.Details {
		if _, err := fmt.Fprintln(fw.w, "   "+d); err != nil {
			return err
		}
	}
	return nil
}

// record is the structured form of an alert.
type record struct {
	Level     string   `json:"level" yaml:"level"`
	Message   string   `json:"message" yaml:"message"`
	Details   []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp string   `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

func (fw *FormatWriter) record(alert *Alert) record {
	r := record{Level: alert.Level.String(), Message: alert.Message, Details: alert.Details}
	if alert.Err != nil {
		r.Error = alert.Err.Error()
	}
	if fw.config.ShowTimestamp {
		r.Timestamp = alert.Timestamp.Format(time.RFC3339)
	}
	return r
}

// isTerminal reports whether w is a terminal and colour has not been
// turned off globally (--no-color, NO_COLOR).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
