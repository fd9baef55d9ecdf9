// Package domain holds the mockhoist workflow: discovering test files,
// rewriting them with the hoist transform and reporting the outcome.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
	"mockhoist.dev/pkg/mockhoist/internal/domain/hoist"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

// Diagnostic kinds that do not come from the hoist transform.
const (
	KindSyntaxError = "SyntaxError"
	KindReadError   = "ReadError"
	KindInternal    = "InternalError"
)

// Transformer rewrites one source file in memory.
type Transformer interface {
	// Transform returns the report of source and, when the file changed,
	// the rewritten contents. Per-file problems are recorded in the report;
	// the error is reserved for cancellation.
	Transform(ctx context.Context, source m.Source) (m.Report, []byte, error)
}

type transformer struct {
	adapter.SourceFSAdapter
	adapter.JSFileAdapter
}

// NewTransformer creates a Transformer reading files through fsAdapter and
// parsing them with jsAdapter.
func NewTransformer(fsAdapter adapter.SourceFSAdapter, jsAdapter adapter.JSFileAdapter) Transformer {
	return &transformer{
		SourceFSAdapter: fsAdapter,
		JSFileAdapter:   jsAdapter,
	}
}

func (t *transformer) Transform(ctx context.Context, source m.Source) (m.Report, []byte, error) {
	if err := ctx.Err(); err != nil {
		return m.Report{}, nil, err
	}

	report := m.Report{Source: source}

	if source.Origin == nil {
		report.Status = m.StatusFailed
		report.Diagnostic = &m.Diagnostic{Kind: KindReadError, Message: "source has no file"}

		return report, nil, nil
	}

	path := source.Origin.FullPath

	src, err := t.ReadFile(path)
	if err != nil {
		slog.Error("failed to read source", "path", path, "error", err)

		report.Status = m.StatusFailed
		report.Diagnostic = &m.Diagnostic{Kind: KindReadError, Message: err.Error()}

		return report, nil, nil
	}

	prog, err := t.Parse(ctx, string(path), src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return m.Report{}, nil, ctxErr
		}

		slog.Debug("failed to parse source", "path", path, "error", err)

		report.Status = m.StatusFailed
		report.Diagnostic = t.syntaxDiagnostic(src, err)

		return report, nil, nil
	}

	result, err := hoist.Apply(prog, hoist.Options{Logger: slog.Default().With("path", path)})
	if err != nil {
		report.Status = m.StatusRejected
		report.Diagnostic = t.hoistDiagnostic(src, err)

		if report.Diagnostic.Kind == KindInternal {
			report.Status = m.StatusFailed
		}

		slog.Debug("rejected source", "path", path, "error", err)

		return report, nil, nil
	}

	report.Getter = result.Getter
	report.Rewritten = result.Rewritten
	report.HoistedCalls = result.HoistedCalls
	report.HoistedVars = result.HoistedVars

	if !result.Changed() {
		report.Status = m.StatusUnchanged
		return report, nil, nil
	}

	out, err := t.Print(prog)
	if err != nil {
		slog.Error("failed to print source", "path", path, "error", err)

		report.Status = m.StatusFailed
		report.Diagnostic = &m.Diagnostic{Kind: KindInternal, Message: err.Error()}

		return report, nil, nil
	}

	report.Status = m.StatusTransformed

	return report, out, nil
}

func (t *transformer) syntaxDiagnostic(src []byte, err error) *m.Diagnostic {
	perr, ok := adapter.SyntaxError(err)
	if !ok {
		return &m.Diagnostic{Kind: KindSyntaxError, Message: err.Error()}
	}

	return &m.Diagnostic{
		Kind:    KindSyntaxError,
		Line:    perr.Line,
		Column:  perr.Col,
		Message: perr.Msg,
		Frame:   t.CodeFrame(src, perr.Line, perr.Col),
	}
}

// hoistDiagnostic converts a transform error. Errors that are not a
// *hoist.Error are reported as KindInternal.
func (t *transformer) hoistDiagnostic(src []byte, err error) *m.Diagnostic {
	var herr *hoist.Error
	if !errors.As(err, &herr) {
		return &m.Diagnostic{Kind: KindInternal, Message: fmt.Sprintf("hoist: %v", err)}
	}

	d := &m.Diagnostic{
		Kind:    herr.Kind.String(),
		Name:    herr.Name,
		Message: herr.Message,
	}

	if herr.Pos.IsValid() {
		d.Line = herr.Pos.Line
		d.Column = herr.Pos.Col
		d.Frame = t.CodeFrame(src, herr.Pos.Line, herr.Pos.Col)
	}

	return d
}
