package queries

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/qstatic/qslice/internal/ctxlog"
	"github.com/qstatic/qslice/internal/fsutil"
	"github.com/qstatic/qslice/internal/slicing"
	"github.com/zclconf/go-cty/cty"
)

// Query is one resolved slice definition from a query file.
type Query struct {
	Name      string
	Criterion slicing.Criterion
	Direction slicing.Direction
	Export    ExportTargets
}

// ExportTargets holds the output paths a query asked for. Slice always has
// a value; Dot and Graph stay empty unless requested.
type ExportTargets struct {
	Slice string
	Dot   string
	Graph string
}

// fileRoot decodes the top-level blocks of one query file.
type fileRoot struct {
	Slices []*sliceBlock `hcl:"slice,block"`
}

type sliceBlock struct {
	Name      string       `hcl:"name,label"`
	Qubit     string       `hcl:"qubit"`
	Line      int          `hcl:"line"`
	Direction string       `hcl:"direction"`
	Export    *exportBlock `hcl:"export,block"`
}

type exportBlock struct {
	Slice string `hcl:"slice,optional"`
	Dot   string `hcl:"dot,optional"`
	Graph string `hcl:"graph,optional"`
}

// evalContext exposes the two direction keywords so query files can write
// `direction = backward` without quoting.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"backward": cty.StringVal(string(slicing.Backward)),
			"forward":  cty.StringVal(string(slicing.Forward)),
		},
	}
}

// Load reads every query file at the given path (a single .hcl file or a
// directory searched recursively) and returns the queries in file and
// block order.
func Load(ctx context.Context, path string) ([]Query, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Query loader started.", "path", path)

	files, err := findQueryFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl query files found at %s", path)
	}
	logger.Debug("Discovered query files.", "count", len(files))

	parser := hclparse.NewParser()
	seen := make(map[string]bool)
	var out []Query

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse query file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode query file %s: %w", file, diags)
		}

		for _, block := range root.Slices {
			q, err := translate(block)
			if err != nil {
				return nil, fmt.Errorf("invalid slice %q in %s: %w", block.Name, file, err)
			}
			if seen[q.Name] {
				return nil, fmt.Errorf("duplicate slice block %q in %s", q.Name, file)
			}
			seen[q.Name] = true
			out = append(out, q)
		}
	}

	logger.Debug("Query loading complete.", "query_count", len(out))
	return out, nil
}

// translate validates one decoded block and fills in defaults.
func translate(block *sliceBlock) (Query, error) {
	if block.Qubit == "" {
		return Query{}, fmt.Errorf("qubit must not be empty")
	}
	if block.Line <= 0 {
		return Query{}, fmt.Errorf("line must be positive, got %d", block.Line)
	}
	dir, err := slicing.ParseDirection(block.Direction)
	if err != nil {
		return Query{}, err
	}

	q := Query{
		Name:      block.Name,
		Criterion: slicing.Criterion{Qubit: block.Qubit, Line: block.Line},
		Direction: dir,
	}
	if block.Export != nil {
		q.Export = ExportTargets{
			Slice: block.Export.Slice,
			Dot:   block.Export.Dot,
			Graph: block.Export.Graph,
		}
	}
	if q.Export.Slice == "" {
		q.Export.Slice = block.Name + ".slice.json"
	}
	return q, nil
}

func findQueryFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat query path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, ".hcl")
}
