package export

import (
	"context"
	"fmt"
	"runtime"
)

// Backend selects an export sink implementation.
type Backend string

const (
	BackendXlsx    Backend = "xlsx"
	BackendNumbers Backend = "numbers"
	BackendSheets  Backend = "sheets"
)

// DefaultBackend is Numbers on macOS (matching how the tool is normally
// run there) and the plain xlsx workbook everywhere else.
func DefaultBackend() Backend {
	if runtime.GOOS == "darwin" {
		return BackendNumbers
	}
	return BackendXlsx
}

// Options carries backend-specific settings.
type Options struct {
	// Filename is the workbook path for the xlsx and numbers backends.
	Filename string
	// CredentialsFile and SpreadsheetID configure the sheets backend.
	CredentialsFile string
	SpreadsheetID   string
}

// NewSink builds the configured export sink.
func NewSink(ctx context.Context, backend Backend, opts Options) (Sink, error) {
	switch backend {
	case BackendXlsx:
		return NewXlsxExporter(opts.Filename)
	case BackendNumbers:
		return NewNumbersExporter(opts.Filename), nil
	case BackendSheets:
		if opts.SpreadsheetID == "" {
			return nil, fmt.Errorf("sheets backend requires a spreadsheet ID")
		}
		return NewSheetsExporter(ctx, opts.CredentialsFile, opts.SpreadsheetID)
	default:
		return nil, fmt.Errorf("unknown export backend %q", backend)
	}
}
