package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qstatic/qslice/internal/ctxlog"
	"github.com/qstatic/qslice/internal/export"
	"github.com/qstatic/qslice/internal/ir"
	"github.com/qstatic/qslice/internal/qdg"
	"github.com/qstatic/qslice/internal/queries"
	"github.com/qstatic/qslice/internal/render"
	"github.com/qstatic/qslice/internal/slicing"
)

// Run executes one invocation: load, build, query, export.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	prog, err := ir.Load(ctx, a.config.IRPath)
	if err != nil {
		return fmt.Errorf("failed to load IR document: %w", err)
	}

	graph, err := qdg.Build(ctx, prog)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Info("QDG built.", "nodes", graph.Len(), "edges", len(graph.Edges()))

	if a.config.QueriesPath != "" {
		return a.runQueryFile(ctx, graph)
	}
	return a.runSingle(ctx, graph)
}

// runSingle handles the inline-criterion mode, including the case where no
// criterion was given and only the graph exports are wanted.
func (a *App) runSingle(ctx context.Context, graph *qdg.Graph) error {
	var sl *slicing.Slice

	if a.config.Qubit != "" {
		criterion := slicing.Criterion{Qubit: a.config.Qubit, Line: a.config.Line}
		result, err := slicing.Run(graph, criterion, a.config.Direction)
		if err != nil {
			return err
		}
		sl = result
		a.logger.Info("Slice computed.",
			"qubit", criterion.Qubit, "line", criterion.Line,
			"direction", a.config.Direction, "members", sl.Len())

		if err := export.WriteSliceJSON(a.config.OutPath, sl); err != nil {
			return err
		}
		a.logger.Info("Slice result written.", "path", a.config.OutPath)
	}

	return a.writeGraphExports(graph, sl)
}

// runQueryFile handles batch mode: every slice block runs against the one
// shared graph. A failed query aborts the run; no partial result is left
// behind for it. Relative export paths resolve against the query file's
// directory.
func (a *App) runQueryFile(ctx context.Context, graph *qdg.Graph) error {
	qs, err := queries.Load(ctx, a.config.QueriesPath)
	if err != nil {
		return fmt.Errorf("failed to load queries: %w", err)
	}

	baseDir := a.config.QueriesPath
	if info, statErr := os.Stat(baseDir); statErr == nil && !info.IsDir() {
		baseDir = filepath.Dir(baseDir)
	}

	for _, q := range qs {
		sl, err := slicing.Run(graph, q.Criterion, q.Direction)
		if err != nil {
			return fmt.Errorf("query %q: %w", q.Name, err)
		}
		a.logger.Info("Slice computed.", "query", q.Name, "members", sl.Len())

		if err := export.WriteSliceJSON(resolvePath(baseDir, q.Export.Slice), sl); err != nil {
			return fmt.Errorf("query %q: %w", q.Name, err)
		}
		if q.Export.Dot != "" {
			if err := export.WriteDOT(resolvePath(baseDir, q.Export.Dot), graph, sl); err != nil {
				return fmt.Errorf("query %q: %w", q.Name, err)
			}
		}
		if q.Export.Graph != "" {
			if err := export.WriteGraphJSON(resolvePath(baseDir, q.Export.Graph), graph, sl); err != nil {
				return fmt.Errorf("query %q: %w", q.Name, err)
			}
		}
	}

	return a.writeGraphExports(graph, nil)
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// writeGraphExports handles the whole-graph outputs: qdg.json, qdg.dot and
// the terminal rendering, annotated with the slice when one was computed.
func (a *App) writeGraphExports(graph *qdg.Graph, sl *slicing.Slice) error {
	if a.config.ExportQDG {
		if err := export.WriteGraphJSON(a.config.QDGOut, graph, sl); err != nil {
			return err
		}
		a.logger.Info("QDG export written.", "path", a.config.QDGOut)
	}
	if a.config.ExportDOT {
		if err := export.WriteDOT(a.config.DOTOut, graph, sl); err != nil {
			return err
		}
		a.logger.Info("DOT export written.", "path", a.config.DOTOut)
	}
	if a.config.Render {
		fmt.Fprint(a.outW, render.Circuit(graph, sl))
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
