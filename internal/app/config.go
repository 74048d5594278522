package app

import (
	"errors"

	"github.com/qstatic/qslice/internal/slicing"
)

// Config holds everything one invocation needs.
type Config struct {
	IRPath string // parser output, .json or .yaml

	// Single-query mode. Qubit empty means no inline criterion.
	Qubit     string
	Line      int
	Direction slicing.Direction
	OutPath   string // slice result file

	// Batch mode: an HCL query file or directory. Mutually exclusive with
	// the inline criterion.
	QueriesPath string

	// Export toggles for the full graph.
	ExportQDG bool
	QDGOut    string
	ExportDOT bool
	DOTOut    string
	Render    bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills in derived defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.IRPath == "" {
		return nil, errors.New("IRPath is a required configuration field and cannot be empty")
	}
	if cfg.QueriesPath != "" && cfg.Qubit != "" {
		return nil, errors.New("an inline criterion and a queries path are mutually exclusive")
	}
	if cfg.Qubit != "" && cfg.Line <= 0 {
		return nil, errors.New("a criterion qubit requires a positive line number")
	}
	if cfg.Qubit == "" && cfg.Line > 0 {
		return nil, errors.New("a criterion line requires a qubit")
	}
	if cfg.Direction == "" {
		cfg.Direction = slicing.Backward
	}
	if cfg.OutPath == "" {
		cfg.OutPath = "slice.json"
	}
	if cfg.QDGOut == "" {
		cfg.QDGOut = "qdg.json"
	}
	if cfg.DOTOut == "" {
		cfg.DOTOut = "qdg.dot"
	}
	return &cfg, nil
}
