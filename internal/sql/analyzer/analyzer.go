// Package analyzer is the top-level entry for the SQL front end: one call
// runs lexer, parser, and validator and returns the combined result.
package analyzer

import (
	"log/slog"

	"github.com/lirlia/100day-challenge-backend-sub013/internal/catalog"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/ast"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/diag"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/lexer"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/parser"
	"github.com/lirlia/100day-challenge-backend-sub013/internal/sql/validator"
)

// Report is the result of analyzing one SQL input: the rendered tree plus
// the two diagnostic channels, syntax and semantic.
type Report struct {
	AST            string            `json:"ast,omitempty"`
	SyntaxErrors   []diag.Diagnostic `json:"syntax_errors,omitempty"`
	SemanticErrors []diag.Diagnostic `json:"semantic_errors,omitempty"`

	program *ast.Program
}

// Valid reports whether both diagnostic channels are empty.
func (r *Report) Valid() bool {
	return len(r.SyntaxErrors) == 0 && len(r.SemanticErrors) == 0
}

// Program returns the parsed tree, possibly partial when syntax errors were
// recorded.
func (r *Report) Program() *ast.Program {
	return r.program
}

type Analyzer struct {
	schema *catalog.Schema
}

func New(schema *catalog.Schema) *Analyzer {
	return &Analyzer{schema: schema}
}

// Analyze runs the full front end over sql. Validation runs even when the
// parse produced errors: a partial program still yields its semantic
// findings. Each call builds a fresh parser and validator, so one Analyzer
// is safe for concurrent use.
func (a *Analyzer) Analyze(sql string) *Report {
	p := parser.New(lexer.New(sql))
	program := p.ParseProgram()

	v := validator.New(a.schema)
	semantic := v.Validate(program)

	report := &Report{
		AST:            program.String(),
		SyntaxErrors:   p.Diagnostics(),
		SemanticErrors: semantic,
		program:        program,
	}

	slog.Debug("analyze sql",
		"statements", len(program.Statements),
		"syntax_errors", len(report.SyntaxErrors),
		"semantic_errors", len(report.SemanticErrors))

	return report
}
