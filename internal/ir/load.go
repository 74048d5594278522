package ir

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qstatic/qslice/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape emitted by the external parser.
type document struct {
	Qubits []QubitDecl `json:"qubits" yaml:"qubits"`
	Ops    []opRecord  `json:"ops" yaml:"ops"`
}

// opRecord is a raw statement before validation and identity resolution.
type opRecord struct {
	Gate   string   `json:"gate" yaml:"gate"`
	Qubits []string `json:"qubits" yaml:"qubits"`
	Bit    string   `json:"bit,omitempty" yaml:"bit,omitempty"`
	Line   int      `json:"line" yaml:"line"`
}

// Load reads an IR document from disk. The format is chosen by file
// extension: .yaml/.yml decode as YAML, everything else as JSON.
func Load(ctx context.Context, path string) (*Program, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading IR document.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read IR document: %w", err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode YAML IR document %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON IR document %s: %w", path, err)
		}
	}

	prog, err := assemble(&doc)
	if err != nil {
		return nil, err
	}
	logger.Debug("IR document loaded.", "qubits", len(prog.Identities()), "ops", len(prog.Ops))
	return prog, nil
}

// ParseJSON decodes an in-memory JSON IR document. Used by tests and by
// callers that already hold the parser output.
func ParseJSON(data []byte) (*Program, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON IR document: %w", err)
	}
	return assemble(&doc)
}

// assemble validates the raw records, resolves every qubit reference to its
// canonical identity and assigns within-line ordinals in program order.
func assemble(doc *document) (*Program, error) {
	res, err := newResolver(doc.Qubits)
	if err != nil {
		return nil, err
	}

	prog := &Program{Qubits: doc.Qubits}
	perLine := make(map[int]int)

	for i, rec := range doc.Ops {
		if err := validateRecord(i, rec); err != nil {
			return nil, err
		}

		op := Operation{
			Gate:    rec.Gate,
			Bit:     rec.Bit,
			Line:    rec.Line,
			Ordinal: perLine[rec.Line],
		}
		perLine[rec.Line]++

		seen := make(map[string]bool, len(rec.Qubits))
		for _, ref := range rec.Qubits {
			id, err := res.resolve(ref, rec.Line)
			if err != nil {
				return nil, err
			}
			if seen[id] {
				return nil, &MalformedOperationError{
					Index:  i,
					Line:   rec.Line,
					Reason: fmt.Sprintf("duplicate qubit operand %q", id),
				}
			}
			seen[id] = true
			op.Qubits = append(op.Qubits, id)
		}

		prog.Ops = append(prog.Ops, op)
	}

	return prog, nil
}

// validateRecord enforces the required fields of the IR input contract.
func validateRecord(index int, rec opRecord) error {
	malformed := func(reason string) error {
		return &MalformedOperationError{Index: index, Line: rec.Line, Reason: reason}
	}

	if rec.Gate == "" {
		return malformed("missing gate name")
	}
	if len(rec.Qubits) == 0 {
		return malformed("missing qubit operands")
	}
	if rec.Line <= 0 {
		return malformed("missing source line")
	}
	if rec.Gate == GateMeasure && len(rec.Qubits) != 1 {
		return malformed(fmt.Sprintf("measurement takes exactly one qubit, got %d", len(rec.Qubits)))
	}
	if rec.Gate != GateMeasure && rec.Bit != "" {
		return malformed(fmt.Sprintf("gate %q cannot take a classical bit operand", rec.Gate))
	}
	return nil
}
