package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/qstatic/qslice/internal/app"
	"github.com/qstatic/qslice/internal/slicing"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("qslice", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
qslice - dependency slicing over quantum circuit programs.

Usage:
  qslice [options] [IR_PATH]

Arguments:
  IR_PATH
    Path to the parser output (.json, .yaml or .yml).

Options:
`)
		flagSet.PrintDefaults()
	}

	irFlag := flagSet.String("ir", "", "Path to the IR document (parser output).")
	qubitFlag := flagSet.String("qubit", "", `Criterion qubit, e.g. "p[1]".`)
	lineFlag := flagSet.Int("line", 0, "Criterion source line number.")
	directionFlag := flagSet.String("direction", "backward", "Slice direction. Options: 'backward' or 'forward'.")
	outFlag := flagSet.String("out", "slice.json", "Output path for the slice result.")
	queriesFlag := flagSet.String("queries", "", "Path to an HCL query file or directory (batch mode).")
	exportQDGFlag := flagSet.Bool("export-qdg", false, "Export the full QDG as JSON.")
	qdgOutFlag := flagSet.String("qdg-out", "qdg.json", "Path for the QDG JSON export.")
	exportDOTFlag := flagSet.Bool("export-dot", false, "Export the QDG as Graphviz DOT.")
	dotOutFlag := flagSet.String("dot-out", "qdg.dot", "Path for the DOT export.")
	renderFlag := flagSet.Bool("render", false, "Print a terminal circuit view, slice highlighted.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *irFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		slog.Debug("No IR path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	direction, err := slicing.ParseDirection(strings.ToLower(*directionFlag))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		IRPath:      path,
		Qubit:       *qubitFlag,
		Line:        *lineFlag,
		Direction:   direction,
		OutPath:     *outFlag,
		QueriesPath: *queriesFlag,
		ExportQDG:   *exportQDGFlag,
		QDGOut:      *qdgOutFlag,
		ExportDOT:   *exportDOTFlag,
		DOTOut:      *dotOutFlag,
		Render:      *renderFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
